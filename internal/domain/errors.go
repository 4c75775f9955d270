package domain

import "errors"

var (
	ErrNotFound                = errors.New("exchange rates not found")
	ErrAPIURLNotConfigured     = errors.New("exchange rate api url is not configured")
	ErrInvalidUpstreamResponse = errors.New("invalid response from exchange rate api")
)
