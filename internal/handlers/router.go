package handlers

import (
	"net/http"

	"ledger/internal/config"
	"ledger/internal/middleware"
	"ledger/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	cfg      config.Config
	users    UserRegistry
	sessions SessionRegistry
	ledger   Ledger
	saver    Saver
	hub      *websocket.Hub
	limiter  *middleware.RateLimiter
	logger   *zap.Logger
}

func New(cfg config.Config, users UserRegistry, sessions SessionRegistry, ledger Ledger, saver Saver, hub *websocket.Hub, limiter *middleware.RateLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		users:    users,
		sessions: sessions,
		ledger:   ledger,
		saver:    saver,
		hub:      hub,
		limiter:  limiter,
		logger:   logger,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(h.logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		if h.limiter != nil {
			r.Use(h.limiter.Handler)
		}
		r.Get("/users", h.ListUsers)
		r.Post("/users/register", h.RegisterUser)
		r.Get("/users/phone/{phone}", h.GetUserByPhone)
		r.Get("/users/{id}", h.GetUser)
		r.Post("/users/{id}/balance", h.AdjustBalance)
		r.Patch("/users/{id}/status", h.SetUserStatus)
		r.Delete("/users/{id}", h.DeleteUser)
		r.Get("/stats", h.Stats)

		r.Post("/session", h.CreateSession)
		r.Get("/session/{id}", h.GetSession)
		r.Delete("/session/{id}", h.DeleteSession)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusNotFound, "Not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		})
	})

	router.Get("/ws/balances", h.WSBalances)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/admin", h.AdminPage)
	router.NotFound(h.Frontend)
	return router
}
