package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fxcache/internal/domain"
)

type ExchangeRateClient struct {
	http *http.Client
	url  string
}

type apiResponse struct {
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// FetchLatest calls the upstream exchange-rate API and returns a validated snapshot.
// Retrying a failed call is the job queue's responsibility, not this client's.
func (c *ExchangeRateClient) FetchLatest(ctx context.Context) (domain.Snapshot, error) {
	if c.url == "" {
		return domain.Snapshot{}, domain.ErrAPIURLNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to execute exchange rate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Snapshot{}, fmt.Errorf("unexpected status code %d from exchange rate api: %s", resp.StatusCode, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to decode exchange rate response: %w", err)
	}

	snap := domain.Snapshot{
		BaseCode:        body.BaseCode,
		ConversionRates: body.ConversionRates,
	}
	if !snap.Valid() {
		return domain.Snapshot{}, domain.ErrInvalidUpstreamResponse
	}
	snap.StampFetchTime(time.Now())

	return snap, nil
}

func NewExchangeRateClient(httpClient *http.Client, url string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, url: url}
}
