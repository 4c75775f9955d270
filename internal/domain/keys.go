package domain

import "time"

// Cache key layout. Four views of the same snapshot, each with its own retention.
const (
	KeyLatest        = "exchange:rates:latest"
	KeyHistoryPrefix = "exchange:rates:history:" // + YYYY-MM-DD (UTC)
	KeyRatesHash     = "exchange:rates:hash"
	KeyMetadata      = "exchange:metadata"
)

// Control fields inside the rates hash, excluded from per-currency reads.
const (
	HashFieldBase      = "base"
	HashFieldTimestamp = "timestamp"
)

// Metadata hash fields.
const (
	MetaLastUpdate     = "lastUpdate"
	MetaLastUpdateDate = "lastUpdateDate"
	MetaCurrencyCount  = "currencyCount"
	MetaBaseCurrency   = "baseCurrency"
)

const (
	LatestTTL  = 25 * time.Hour
	HistoryTTL = 7 * 24 * time.Hour
)

// HistoryKey returns the day-scoped history key for the given wall-clock time.
func HistoryKey(t time.Time) string {
	return KeyHistoryPrefix + t.UTC().Format("2006-01-02")
}
