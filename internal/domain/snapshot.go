package domain

import "time"

// Snapshot is one fetched set of conversion rates plus its fetch timestamp.
// JSON field names match the blob layout the upstream and the cache already use.
type Snapshot struct {
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	FetchedAt       int64              `json:"fetchedAt"`   // unix millis
	FetchedDate     string             `json:"fetchedDate"` // ISO-8601 mirror of FetchedAt
}

// Valid reports whether the snapshot carries at least one conversion rate.
// An empty rate map is treated as a failed fetch, never stored.
func (s Snapshot) Valid() bool {
	return len(s.ConversionRates) > 0
}

// StampFetchTime records the fetch completion time on the snapshot.
func (s *Snapshot) StampFetchTime(now time.Time) {
	s.FetchedAt = now.UnixMilli()
	s.FetchedDate = now.UTC().Format(time.RFC3339)
}
