package handler

import (
	"net/http"
)

func (h *Handler) QueueStatus(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, r, http.StatusOK, "Queue status retrieved successfully", h.queue.Status())
}
