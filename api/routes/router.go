package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/profilespot-backend/api/controllers"
	"github.com/angelmondragon/profilespot-backend/api/middleware"
	"github.com/angelmondragon/profilespot-backend/internal/logins"
	"github.com/angelmondragon/profilespot-backend/internal/profiles"
	"github.com/angelmondragon/profilespot-backend/pkg/config"
	"github.com/angelmondragon/profilespot-backend/pkg/db"
	"github.com/angelmondragon/profilespot-backend/pkg/logger"
	"github.com/angelmondragon/profilespot-backend/pkg/metrics"
	"github.com/angelmondragon/profilespot-backend/pkg/redis"
)

// rateStore is the subset of the redis client used by both the login
// throttle and the readiness check.
type rateStore interface {
	controllers.Pinger
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	profileService profiles.Service,
	loginService logins.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	// A typed nil client must not reach the interfaces below as a non-nil value.
	var store rateStore
	if redisClient != nil {
		store = redisClient
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessDeps(dbP, store)))
	})

	if cfg.Metrics.Enabled && gatherer != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, metrics.Handler(gatherer))
	}

	r.With(middleware.AuthRateLimit(loginPolicy, store, logg)).Post("/api/login", controllers.Login(loginService, logg))

	users := func(r chi.Router) {
		r.Get("/", controllers.ListUsers(profileService, logg))
		r.Post("/", controllers.CreateUser(profileService, loginService, logg))
		r.Get("/lastname/{name}", controllers.GetUserByLastName(profileService, logg))
		r.Get("/{id}", controllers.GetUser(profileService, loginService, logg))
		r.Put("/{id}", controllers.UpdateUser(profileService, logg))
		r.Delete("/{id}", controllers.DeleteUser(profileService, loginService, logg))
	}
	r.Route("/api/user", users)
	r.Route("/api/User", users)

	if cfg.HTTP.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.HTTP.StaticDir)))
	}

	return r
}

func readinessDeps(dbP db.Pinger, store rateStore) map[string]controllers.Pinger {
	deps := map[string]controllers.Pinger{}
	if dbP != nil {
		deps["db"] = dbP
	}
	if store != nil {
		deps["redis"] = store
	}
	return deps
}
