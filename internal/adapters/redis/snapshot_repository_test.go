package redis

import (
	"context"
	"testing"
	"time"

	"fxcache/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*SnapshotRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSnapshotRepository(client), mr
}

func validSnapshot() domain.Snapshot {
	snap := domain.Snapshot{
		BaseCode:        "USD",
		ConversionRates: map[string]float64{"EUR": 0.9, "JPY": 150},
	}
	snap.StampFetchTime(time.Now())
	return snap
}

func TestSnapshotRepository_SaveThenLatest(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	snap := validSnapshot()
	require.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, snap.BaseCode, got.BaseCode)
	require.Equal(t, snap.ConversionRates, got.ConversionRates)
	require.Equal(t, snap.FetchedAt, got.FetchedAt)
}

func TestSnapshotRepository_Save_SetsRetention(t *testing.T) {
	repo, mr := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, validSnapshot()))

	require.Equal(t, domain.LatestTTL, mr.TTL(domain.KeyLatest))
	require.Equal(t, domain.HistoryTTL, mr.TTL(domain.HistoryKey(time.Now())))
	// hash views are overwritten each cycle, never expired
	require.Equal(t, time.Duration(0), mr.TTL(domain.KeyRatesHash))
	require.Equal(t, time.Duration(0), mr.TTL(domain.KeyMetadata))
}

func TestSnapshotRepository_CurrencyRate_CaseInsensitive(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, validSnapshot()))

	upper, err := repo.CurrencyRate(ctx, "EUR")
	require.NoError(t, err)
	lower, err := repo.CurrencyRate(ctx, "eur")
	require.NoError(t, err)
	require.Equal(t, upper, lower)
	require.InDelta(t, 0.9, lower, 1e-9)
}

func TestSnapshotRepository_CurrencyRate_UnknownCode(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, validSnapshot()))

	_, err := repo.CurrencyRate(ctx, "XXX")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotRepository_AllRates_ExcludesControlFields(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, validSnapshot()))

	rates, err := repo.AllRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	require.NotContains(t, rates, domain.HashFieldBase)
	require.NotContains(t, rates, domain.HashFieldTimestamp)
	require.InDelta(t, 0.9, rates["EUR"], 1e-9)
	require.InDelta(t, 150.0, rates["JPY"], 1e-9)
}

func TestSnapshotRepository_Metadata(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, validSnapshot()))

	meta, err := repo.Metadata(ctx)
	require.NoError(t, err)
	require.Equal(t, "2", meta[domain.MetaCurrencyCount])
	require.Equal(t, "USD", meta[domain.MetaBaseCurrency])
	require.NotEmpty(t, meta[domain.MetaLastUpdate])
	require.NotEmpty(t, meta[domain.MetaLastUpdateDate])
}

func TestSnapshotRepository_EmptyCache_AllReadsReturnNotFound(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Latest(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.CurrencyRate(ctx, "EUR")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.AllRates(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Metadata(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotRepository_AllRates_SkipsMalformedFields(t *testing.T) {
	repo, mr := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, validSnapshot()))
	mr.HSet(domain.KeyRatesHash, "BAD", "not-a-float")

	rates, err := repo.AllRates(ctx)
	require.NoError(t, err)
	require.NotContains(t, rates, "BAD")
	require.Len(t, rates, 2)
}

func TestSnapshotRepository_Save_OverwritesPreviousCycle(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, validSnapshot()))

	second := domain.Snapshot{
		BaseCode:        "USD",
		ConversionRates: map[string]float64{"EUR": 0.95, "JPY": 151, "GBP": 0.8},
	}
	second.StampFetchTime(time.Now())
	require.NoError(t, repo.Save(ctx, second))

	rate, err := repo.CurrencyRate(ctx, "eur")
	require.NoError(t, err)
	require.InDelta(t, 0.95, rate, 1e-9)

	meta, err := repo.Metadata(ctx)
	require.NoError(t, err)
	require.Equal(t, "3", meta[domain.MetaCurrencyCount])
}
