package controllers

import (
	"net/http"

	"github.com/aurelia-jewels/storefront-gateway/api/responses"
	"github.com/aurelia-jewels/storefront-gateway/pkg/config"
	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
	"github.com/aurelia-jewels/storefront-gateway/pkg/redis"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady verifies the session store connection.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{
			"status": "ready",
			"env":    cfg.App.Env,
		})
	}
}
