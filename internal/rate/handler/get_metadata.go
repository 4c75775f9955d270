package handler

import (
	"errors"
	"net/http"

	"fxcache/internal/domain"

	"github.com/sirupsen/logrus"
)

func (h *Handler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.GetMetadata(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "No metadata found", "")
			return
		}
		msg := "Failed to retrieve metadata"
		logrus.WithError(err).WithField("handler", "GetMetadata").Error(msg)
		writeError(w, r, http.StatusInternalServerError, msg, err.Error())
		return
	}

	writeSuccess(w, r, http.StatusOK, "Metadata retrieved successfully", meta)
}
