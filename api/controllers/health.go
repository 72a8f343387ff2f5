package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/profilespot-backend/api/responses"
	"github.com/angelmondragon/profilespot-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/profilespot-backend/pkg/errors"
	"github.com/angelmondragon/profilespot-backend/pkg/logger"
)

const (
	envHeader        = "X-ProfileSpot-Env"
	readinessTimeout = 2 * time.Second
)

// Pinger is any dependency that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every named dependency. A nil pinger is skipped, so
// optional dependencies such as redis can be left unset.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		failed := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(failed)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
