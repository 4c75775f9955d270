package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fxcache/internal/domain"

	"github.com/redis/go-redis/v9"
)

type SnapshotRepository struct {
	client *redis.Client
}

func NewSnapshotRepository(client *redis.Client) *SnapshotRepository {
	return &SnapshotRepository{client: client}
}

// Save persists the snapshot into its four cache views in sequence: latest blob,
// per-currency hash, day-keyed history blob, metadata. The sequence is not atomic;
// a failure mid-way leaves earlier views fresh and later ones stale, which readers
// tolerate. Jobs run one at a time, so writes from different jobs never interleave.
func (r *SnapshotRepository) Save(ctx context.Context, snap domain.Snapshot) error {
	blob, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err = r.client.Set(ctx, domain.KeyLatest, blob, domain.LatestTTL).Err(); err != nil {
		return fmt.Errorf("failed to write latest snapshot: %w", err)
	}

	if snap.Valid() {
		if snap.BaseCode != "" {
			if err = r.client.HSet(ctx, domain.KeyRatesHash, domain.HashFieldBase, snap.BaseCode).Err(); err != nil {
				return fmt.Errorf("failed to write base field: %w", err)
			}
		}
		if err = r.client.HSet(ctx, domain.KeyRatesHash, domain.HashFieldTimestamp, strconv.FormatInt(snap.FetchedAt, 10)).Err(); err != nil {
			return fmt.Errorf("failed to write timestamp field: %w", err)
		}
		for currency, rate := range snap.ConversionRates {
			if err = r.client.HSet(ctx, domain.KeyRatesHash, currency, strconv.FormatFloat(rate, 'f', -1, 64)).Err(); err != nil {
				return fmt.Errorf("failed to write rate for %q: %w", currency, err)
			}
		}
	}

	if err = r.client.Set(ctx, domain.HistoryKey(time.Now()), blob, domain.HistoryTTL).Err(); err != nil {
		return fmt.Errorf("failed to write history snapshot: %w", err)
	}

	meta := map[string]string{
		domain.MetaLastUpdate:     strconv.FormatInt(snap.FetchedAt, 10),
		domain.MetaLastUpdateDate: snap.FetchedDate,
		domain.MetaCurrencyCount:  strconv.Itoa(len(snap.ConversionRates)),
		domain.MetaBaseCurrency:   snap.BaseCode,
	}
	for field, value := range meta {
		if err = r.client.HSet(ctx, domain.KeyMetadata, field, value).Err(); err != nil {
			return fmt.Errorf("failed to write metadata field %q: %w", field, err)
		}
	}

	return nil
}

// Latest returns the most recent snapshot, or domain.ErrNotFound before the first
// successful fetch or after the latest blob expired.
func (r *SnapshotRepository) Latest(ctx context.Context) (*domain.Snapshot, error) {
	data, err := r.client.Get(ctx, domain.KeyLatest).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err = json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal latest snapshot: %w", err)
	}
	return &snap, nil
}

// CurrencyRate looks up a single rate by currency code, case-insensitively.
func (r *SnapshotRepository) CurrencyRate(ctx context.Context, code string) (float64, error) {
	field := strings.ToUpper(strings.TrimSpace(code))
	raw, err := r.client.HGet(ctx, domain.KeyRatesHash, field).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read rate for %q: %w", field, err)
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate for %q: %w", field, err)
	}
	return rate, nil
}

// AllRates returns the flattened per-currency view, excluding the hash control fields.
func (r *SnapshotRepository) AllRates(ctx context.Context) (map[string]float64, error) {
	fields, err := r.client.HGetAll(ctx, domain.KeyRatesHash).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read rates hash: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrNotFound
	}

	rates := make(map[string]float64, len(fields))
	for field, raw := range fields {
		if field == domain.HashFieldBase || field == domain.HashFieldTimestamp {
			continue
		}
		rate, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil {
			continue // a malformed field must not fail the whole read
		}
		rates[field] = rate
	}
	return rates, nil
}

// Metadata returns the summary hash written on each successful fetch.
func (r *SnapshotRepository) Metadata(ctx context.Context) (map[string]string, error) {
	meta, err := r.client.HGetAll(ctx, domain.KeyMetadata).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	if len(meta) == 0 {
		return nil, domain.ErrNotFound
	}
	return meta, nil
}
