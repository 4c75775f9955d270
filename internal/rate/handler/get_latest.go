package handler

import (
	"errors"
	"net/http"

	"fxcache/internal/domain"

	"github.com/sirupsen/logrus"
)

func (h *Handler) GetLatest(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.GetLatest(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "No exchange rates found. Please trigger a manual fetch.", "")
			return
		}
		msg := "Failed to retrieve exchange rates"
		logrus.WithError(err).WithField("handler", "GetLatest").Error(msg)
		writeError(w, r, http.StatusInternalServerError, msg, err.Error())
		return
	}

	writeSuccess(w, r, http.StatusOK, "Exchange rates retrieved successfully", snap)
}
