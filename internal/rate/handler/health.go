package handler

import (
	"net/http"
	"time"

	"fxcache/internal/queue"

	"github.com/go-chi/chi/v5/middleware"
)

type healthData struct {
	Status    string       `json:"status"`
	Redis     string       `json:"redis"`
	Queue     queue.Status `json:"queue"`
	Timestamp string       `json:"timestamp"`
}

// Health reports composite service health: store reachability plus queue state.
// A degraded store yields 503 but the process keeps serving.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	redisState := "CONNECTED"
	statusCode := http.StatusOK
	if err := h.health(r.Context()); err != nil {
		redisState = "DISCONNECTED"
		statusCode = http.StatusServiceUnavailable
	}

	data := healthData{
		Status:    "UP",
		Redis:     redisState,
		Queue:     h.queue.Status(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if statusCode != http.StatusOK {
		writeJSON(w, statusCode, apiResponse{
			Success:   false,
			Message:   "Service is unhealthy",
			Data:      data,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			RequestID: middleware.GetReqID(r.Context()),
		})
		return
	}
	writeSuccess(w, r, statusCode, "Service is healthy", data)
}
