package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rentalhq/rental-backend/api/responses"
	"github.com/rentalhq/rental-backend/pkg/audit"
	pkgauth "github.com/rentalhq/rental-backend/pkg/auth"
	"github.com/rentalhq/rental-backend/pkg/auth/session"
	pkgerrors "github.com/rentalhq/rental-backend/pkg/errors"
	"github.com/rentalhq/rental-backend/pkg/logger"
)

type claimsKey struct{}

// Auth validates the bearer token and its live session, then seeds the
// claims and the audit principal into the request context.
func Auth(tokens *pkgauth.TokenManager, sessions *session.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				responses.WriteError(r.Context(), w, logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims, err := tokens.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				responses.WriteError(r.Context(), w, logg, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			active, err := sessions.IsActive(r.Context(), claims.ID)
			if err != nil {
				responses.WriteError(r.Context(), w, logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking session"))
				return
			}
			if !active {
				responses.WriteError(r.Context(), w, logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			if userID, err := uuid.Parse(claims.UserID); err == nil {
				ctx = audit.WithPrincipal(ctx, audit.Principal{UserID: userID, Username: claims.Email})
			}
			ctx = logg.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*pkgauth.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*pkgauth.AccessClaims)
	return claims, ok
}
