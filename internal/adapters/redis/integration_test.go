package redis_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	redisadapter "fxcache/internal/adapters/redis"
	"fxcache/internal/domain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

var (
	redisSetupOnce sync.Once

	redisContainer *tcredis.RedisContainer
	redisURL       string
)

func TestMain(m *testing.M) {
	code := m.Run()
	if redisContainer != nil {
		_ = redisContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupRedis(t *testing.T) *goredis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	redisSetupOnce.Do(func() {
		startRedis(t)
	})

	opts, err := goredis.ParseURL(redisURL)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.FlushAll(context.Background()).Err())
	return client
}

func startRedis(t *testing.T) {
	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	redisContainer = container

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	redisURL = url
}

func TestSnapshotRepository_Integration_FullCycle(t *testing.T) {
	client := setupRedis(t)
	repo := redisadapter.NewSnapshotRepository(client)
	ctx := context.Background()

	snap := domain.Snapshot{
		BaseCode:        "USD",
		ConversionRates: map[string]float64{"EUR": 0.9, "JPY": 150},
	}
	snap.StampFetchTime(time.Now())
	require.NoError(t, repo.Save(ctx, snap))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, "USD", latest.BaseCode)

	rate, err := repo.CurrencyRate(ctx, "eur")
	require.NoError(t, err)
	require.InDelta(t, 0.9, rate, 1e-9)

	rates, err := repo.AllRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 2)

	meta, err := repo.Metadata(ctx)
	require.NoError(t, err)
	require.Equal(t, "2", meta[domain.MetaCurrencyCount])

	ttl, err := client.TTL(ctx, domain.KeyLatest).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, 24*time.Hour)
}

func TestSnapshotRepository_Integration_EmptyCache(t *testing.T) {
	client := setupRedis(t)
	repo := redisadapter.NewSnapshotRepository(client)

	_, err := repo.Latest(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
