package handler

import (
	"net/http"
	"time"

	"fxcache/internal/rate"

	"github.com/sirupsen/logrus"
)

type triggerFetchData struct {
	JobID    string `json:"jobId"`
	JobName  string `json:"jobName"`
	QueuedAt string `json:"queuedAt"`
}

func (h *Handler) TriggerFetch(w http.ResponseWriter, r *http.Request) {
	job, err := h.queue.Enqueue(rate.ManualJobName)
	if err != nil {
		msg := "Failed to trigger manual fetch"
		logrus.WithError(err).WithField("handler", "TriggerFetch").Error(msg)
		writeError(w, r, http.StatusInternalServerError, msg, err.Error())
		return
	}

	writeSuccess(w, r, http.StatusOK, "Manual currency fetch triggered successfully", triggerFetchData{
		JobID:    job.ID,
		JobName:  job.Name,
		QueuedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
