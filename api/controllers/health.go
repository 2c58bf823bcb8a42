package controllers

import (
	"context"
	"net/http"

	"github.com/rentalhq/rental-backend/api/responses"
	pkgerrors "github.com/rentalhq/rental-backend/pkg/errors"
	"github.com/rentalhq/rental-backend/pkg/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Readiness fails when either the database or redis is unreachable.
func Readiness(dbPinger, redisPinger Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := dbPinger.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), w, logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}
		if err := redisPinger.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), w, logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
			return
		}
		responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
