package controllers

import (
	"net/http"

	"github.com/calzalindo/catalog-backend/api/responses"
	"github.com/calzalindo/catalog-backend/pkg/config"
	"github.com/calzalindo/catalog-backend/pkg/db"
	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
	"github.com/calzalindo/catalog-backend/pkg/logger"
	"github.com/calzalindo/catalog-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Calzalindo-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the store and Redis both answer.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Calzalindo-Env", cfg.App.Env)

		if dbP == nil || redisP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "readiness dependencies not wired"))
			return
		}
		if err := dbP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not reachable"))
			return
		}
		if err := redisP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not reachable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
