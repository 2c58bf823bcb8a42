package middleware

import (
	"fmt"
	"net/http"

	"github.com/rentalhq/rental-backend/api/responses"
	pkgerrors "github.com/rentalhq/rental-backend/pkg/errors"
	"github.com/rentalhq/rental-backend/pkg/logger"
)

// Recoverer turns handler panics into 500 responses instead of
// dropping the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("panic: %v", rec), "handler panic")
					responses.WriteError(r.Context(), w, logg, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
