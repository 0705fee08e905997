package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/roadboard/backend/internal/setup"
	mw "github.com/itchan-dev/roadboard/shared/middleware"
	"github.com/itchan-dev/roadboard/shared/middleware/metrics"
)

const requestTimeout = 30 * time.Second

// New builds the chi router with all routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(middleware.Timeout(requestTimeout))

		// anonymous reads fan out to the restaurant service, so they are limited per client ip
		v1.Group(func(public chi.Router) {
			public.Use(mw.RateLimit(deps.ReadLimiter, mw.GetIP))
			public.Get("/boards", h.GetBoards)
			public.Get("/boards/{board}", h.GetBoard)
		})

		v1.Group(func(loggedIn chi.Router) {
			loggedIn.Use(authMw.NeedAuth())

			loggedIn.Get("/me/boards", h.GetMyBoards)
			loggedIn.Get("/me/likes", h.GetMyLikes)
			loggedIn.Delete("/boards/{board}", h.DeleteBoard)

			// writes call the restaurant service, so they share one per-user budget
			loggedIn.Group(func(writes chi.Router) {
				writes.Use(mw.RateLimit(deps.WriteLimiter, mw.GetUserIdFromContext))
				writes.Post("/boards", h.CreateBoard)
				writes.Put("/boards/{board}", h.UpdateBoard)
				writes.Post("/boards/{board}/like", h.ToggleLike)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	return r
}
