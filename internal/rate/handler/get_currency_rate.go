package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fxcache/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type currencyRateData struct {
	Currency  string  `json:"currency"`
	Rate      float64 `json:"rate"`
	Timestamp string  `json:"timestamp"`
}

func (h *Handler) GetCurrencyRate(w http.ResponseWriter, r *http.Request) {
	currency := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "currency")))
	if currency == "" {
		writeError(w, r, http.StatusBadRequest, "Currency code is required", "")
		return
	}

	value, err := h.service.GetCurrencyRate(r.Context(), currency)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, fmt.Sprintf("Rate not found for currency: %s", currency), "")
			return
		}
		msg := "Failed to retrieve currency rate"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetCurrencyRate", "currency": currency}).Error(msg)
		writeError(w, r, http.StatusInternalServerError, msg, err.Error())
		return
	}

	writeSuccess(w, r, http.StatusOK, fmt.Sprintf("Rate for %s retrieved successfully", currency), currencyRateData{
		Currency:  currency,
		Rate:      value,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
