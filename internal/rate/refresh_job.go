package rate

import (
	"context"
	"fmt"

	"fxcache/internal/adapters"

	"github.com/sirupsen/logrus"
)

// Queue wiring for the currency refresh workflow.
const (
	QueueName        = "currency-exchange-queue"
	ScheduleID       = "daily-currency-fetch"
	ScheduledJobName = "fetch-currency-rates"
	ManualJobName    = "manual-currency-fetch"

	// 06:00:00 UTC daily, cron-with-seconds.
	DailyCronPattern = "0 0 6 * * *"
)

// RefreshRates fetches the latest snapshot from the upstream API and persists it
// into the cache views. Both halves surface errors to the caller (the job queue),
// which owns retries; a fetch that fails validation writes nothing.
func RefreshRates(ctx context.Context, execID string, client adapters.RateClient, repo adapters.SnapshotRepository) error {
	snap, err := client.FetchLatest(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch exchange rates: %w", err)
	}

	logrus.Infof("Fetched %d rates for base %s; execID: %s", len(snap.ConversionRates), snap.BaseCode, execID)

	if err = repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to store exchange rates: %w", err)
	}

	logrus.Infof("✅ Stored %d rates for base %s; execID: %s", len(snap.ConversionRates), snap.BaseCode, execID)
	return nil
}
