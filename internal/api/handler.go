// Package api exposes the DKIM key check pipeline over HTTP for serve mode.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/theopenlane/dkimcheck/internal/dkim"
	"github.com/theopenlane/dkimcheck/internal/slack"
)

// Checker runs the DKIM key check pipeline
type Checker interface {
	Check(ctx context.Context, selector, domain string) (*dkim.Report, error)
	Probe(ctx context.Context, domain string, selectors []string) (*dkim.ProbeResult, error)
}

// Notifier sends weak-key alerts
type Notifier interface {
	Send(ctx context.Context, msg slack.Message) error
}

// Handler manages API endpoints
type Handler struct {
	checker        Checker
	notifier       Notifier
	notifyWeakKeys bool
	maxBodySize    int64
}

// NewHandler creates the API handler from router configuration
func NewHandler(cfg RouterConfig) *Handler {
	return &Handler{
		checker:        cfg.Checker,
		notifier:       cfg.Notifier,
		notifyWeakKeys: cfg.NotifyWeakKeys,
		maxBodySize:    cfg.MaxBodySize,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "dkimcheck",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
