package adapters

import (
	"context"

	"fxcache/internal/domain"
)

type RateClient interface {
	FetchLatest(ctx context.Context) (domain.Snapshot, error)
}

type SnapshotRepository interface {
	Save(ctx context.Context, snap domain.Snapshot) error
	Latest(ctx context.Context) (*domain.Snapshot, error)
	CurrencyRate(ctx context.Context, code string) (float64, error)
	AllRates(ctx context.Context) (map[string]float64, error)
	Metadata(ctx context.Context) (map[string]string, error)
}
