package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/fashion-admin/internal/http/response"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
)

// Status is the liveness answer.
type Status struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

type Handler struct {
	log     *slog.Logger
	clock   clock.Clock
	started time.Time
}

func New(log *slog.Logger, clk clock.Clock) *Handler {
	return &Handler{
		log:     log,
		clock:   clk,
		started: clk.Now(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	response.OK(w, r, Status{
		Status:    "ok",
		Timestamp: now.Format(time.RFC3339),
		Uptime:    now.Sub(h.started).Truncate(time.Second).String(),
	})
}
