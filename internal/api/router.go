package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig wires the handler dependencies for serve mode
type RouterConfig struct {
	// Checker runs the DKIM key check pipeline
	Checker Checker
	// Notifier sends weak-key alerts, nil disables notifications
	Notifier Notifier
	// NotifyWeakKeys enables weak-key alerts when a Notifier is configured
	NotifyWeakKeys bool
	// MaxBodySize caps request body sizes in bytes, zero disables the cap
	MaxBodySize int64
	// CheckTimeout bounds request handling, zero disables the timeout middleware
	CheckTimeout time.Duration
}

// NewRouter creates a chi router with all endpoints and middleware
func NewRouter(cfg RouterConfig) http.Handler {
	h := NewHandler(cfg)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	if cfg.CheckTimeout > 0 {
		r.Use(middleware.Timeout(cfg.CheckTimeout))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Post("/check", h.handleCheck)
		r.Post("/probe", h.handleProbe)
	})

	return r
}
