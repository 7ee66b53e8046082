package main

import (
	"context"
	"net/http"
	"time"

	"cinemacompanion/internal/auth"
	"cinemacompanion/internal/config"
	"cinemacompanion/internal/content"
	"cinemacompanion/internal/documentary"
	"cinemacompanion/internal/httpx"
	"cinemacompanion/internal/recommend"
	"cinemacompanion/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// pinger reports whether the backing store can serve requests.
type pinger interface {
	Ping(ctx context.Context) error
}

type handlers struct {
	auth        *auth.HTTPHandler
	users       *user.HTTPHandler
	content     *content.HTTPHandler
	documentary *documentary.HTTPHandler
	recommend   *recommend.HTTPHandler
}

func newHandlers(users user.Repository, catalog content.Repository, source documentary.Source, cfg config.Config) handlers {
	userService := user.NewService(users, catalog)
	return handlers{
		auth:        auth.NewHTTPHandler(auth.NewService(userService, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)),
		users:       user.NewHTTPHandler(userService),
		content:     content.NewHTTPHandler(content.NewService(catalog)),
		documentary: documentary.NewHTTPHandler(documentary.NewService(source, catalog, cfg.IMDb.Count).WithFetchDeadline(cfg.IMDb.FetchDeadline)),
		recommend:   recommend.NewHTTPHandler(recommend.NewService(users, catalog)),
	}
}

func newRouter(cfg config.ServerConfig, jwtSecret string, h handlers, ready pinger, limiter *httpx.RateLimitMiddleware) http.Handler {
	r := chi.NewRouter()

	r.Use(httpx.RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(httpx.AccessLogMiddleware)
	r.Use(httpx.RecoveryMiddleware)
	r.Use(httpx.MetricsMiddleware)
	r.Use(httpx.SecurityHeadersMiddleware(cfg.EnableHSTS))
	r.Use(httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ready.Ping(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	requireAuth := httpx.AuthMiddleware(jwtSecret)

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		r.Post("/auth/register", h.users.Register)
		r.Post("/auth/login", h.auth.Login)
		r.With(requireAuth).Get("/me", h.users.Me)

		r.Get("/users/{userId}/favorites", h.users.Favorites)
		r.With(requireAuth).Post("/users/{userId}/favorites", h.users.SetFavorites)

		r.Get("/content", h.content.List)
		r.Get("/content/{id}", h.content.GetByID)
		r.Get("/documentaries", h.documentary.List)

		r.Get("/recommendations/{userId}", h.recommend.ForUser)
		r.Get("/recommendations/{userId}/scored", h.recommend.Scored)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "BAD_REQUEST", "method not allowed", nil)
	})

	return r
}
