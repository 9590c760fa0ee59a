package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/ong-backend/internal/api/handlers"
	"github.com/baharkarakas/ong-backend/internal/config"
	"github.com/baharkarakas/ong-backend/internal/metrics"
	"github.com/baharkarakas/ong-backend/internal/middleware"
)

type RouterDeps struct {
	Cfg         config.Config
	UserSvc     handlers.UserService
	ResourceSvc handlers.ResourceService
	Tokens      middleware.TokenVerifier
}

func NewRouter(d RouterDeps) http.Handler {
	authH := handlers.NewAuthHandler(d.UserSvc)
	resH := handlers.NewResourceHandler(d.ResourceSvc)
	authMw := middleware.NewAuthMiddleware(d.Tokens)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-Id"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// ---------- users ----------
	r.Get("/users", authH.ListUsers)
	r.Post("/login", authH.Login)
	r.Post("/register", authH.Register)

	// ---------- ongs ----------
	r.Route("/resources", func(r chi.Router) {
		r.Get("/", resH.List)
		r.Get("/{id}", resH.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMw.Auth)
			r.Post("/", resH.Create)
			r.Put("/{id}", resH.Update)
			r.Delete("/{id}", resH.Delete)
		})
	})

	return r
}
