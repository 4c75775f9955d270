package handler

import (
	"net/http"
	"time"
)

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, r, http.StatusOK, "Welcome to the Currency Exchange Cache API!", map[string]string{
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}
