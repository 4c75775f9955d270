package handler

import (
	"errors"
	"net/http"
	"time"

	"fxcache/internal/domain"

	"github.com/sirupsen/logrus"
)

type ratesHashData struct {
	Rates     map[string]float64 `json:"rates"`
	Count     int                `json:"count"`
	Timestamp string             `json:"timestamp"`
}

func (h *Handler) GetRatesHash(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.GetAllRates(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "No exchange rates found in hash. Please trigger a manual fetch.", "")
			return
		}
		msg := "Failed to retrieve exchange rates from hash"
		logrus.WithError(err).WithField("handler", "GetRatesHash").Error(msg)
		writeError(w, r, http.StatusInternalServerError, msg, err.Error())
		return
	}

	writeSuccess(w, r, http.StatusOK, "Exchange rates retrieved successfully from hash", ratesHashData{
		Rates:     rates,
		Count:     len(rates),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
