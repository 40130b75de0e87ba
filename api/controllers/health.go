package controllers

import (
	"net/http"

	"github.com/kitboxworks/kitbox-backend/api/responses"
	"github.com/kitboxworks/kitbox-backend/pkg/config"
	"github.com/kitboxworks/kitbox-backend/pkg/db"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
	pkgredis "github.com/kitboxworks/kitbox-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kitbox-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores. Redis is optional wiring, so a nil
// client is reported as skipped rather than failing readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kitbox-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["db"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "health.db_ping_failed", err)
				}
			} else {
				checks["db"] = "up"
			}
		} else {
			checks["db"] = "skipped"
		}

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "health.redis_ping_failed", err)
				}
			} else {
				checks["redis"] = "up"
			}
		} else {
			checks["redis"] = "skipped"
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
