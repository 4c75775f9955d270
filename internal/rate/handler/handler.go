package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fxcache/internal/domain"
	"fxcache/internal/queue"

	"github.com/go-chi/chi/v5/middleware"
)

type RateReader interface {
	GetLatest(ctx context.Context) (*domain.Snapshot, error)
	GetCurrencyRate(ctx context.Context, code string) (float64, error)
	GetAllRates(ctx context.Context) (map[string]float64, error)
	GetMetadata(ctx context.Context) (map[string]string, error)
}

type Orchestrator interface {
	Enqueue(name string) (queue.Job, error)
	Status() queue.Status
}

// HealthCheck round-trips the cache store connection.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	service RateReader
	queue   Orchestrator
	health  HealthCheck
}

func NewCurrencyHandler(service RateReader, orchestrator Orchestrator, health HealthCheck) *Handler {
	return &Handler{service: service, queue: orchestrator, health: health}
}

// apiResponse is the uniform envelope every endpoint returns, success or failure,
// so callers can branch on the success flag alone.
type apiResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Meta      any    `json:"meta,omitempty"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, res apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(res)
}

func writeSuccess(w http.ResponseWriter, r *http.Request, statusCode int, message string, data any) {
	writeJSON(w, statusCode, apiResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, message string, errMsg string) {
	writeJSON(w, statusCode, apiResponse{
		Success:   false,
		Message:   message,
		Error:     errMsg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: middleware.GetReqID(r.Context()),
	})
}
