package client

import (
	"errors"
	"net/http"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	ErrPositionNotFound  = errors.New("position not found")
	ErrLedgerUnavailable = errors.New("collateral ledger unavailable")
	ErrPriceUnavailable  = errors.New("price oracle unavailable")
)

type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

func NewRateLimitError(headers http.Header) *RateLimitError {
	return &RateLimitError{
		RetryAfter: ParseRetryAfter(headers),
	}
}
