package rate

import (
	"context"

	"fxcache/internal/adapters"
	"fxcache/internal/domain"
)

// Service is the read side over the snapshot cache. All lookups return
// domain.ErrNotFound when the cache is empty, which is a normal state before
// the first successful fetch.
type Service struct {
	repo adapters.SnapshotRepository
}

func (s *Service) GetLatest(ctx context.Context) (*domain.Snapshot, error) {
	return s.repo.Latest(ctx)
}

func (s *Service) GetCurrencyRate(ctx context.Context, code string) (float64, error) {
	return s.repo.CurrencyRate(ctx, code)
}

func (s *Service) GetAllRates(ctx context.Context) (map[string]float64, error) {
	return s.repo.AllRates(ctx)
}

func (s *Service) GetMetadata(ctx context.Context) (map[string]string, error) {
	return s.repo.Metadata(ctx)
}

func NewService(repo adapters.SnapshotRepository) *Service {
	return &Service{repo: repo}
}
