package services

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/denmor86/cardcredit/internal/config"
)

func TestVerifier_Verify(t *testing.T) {
	config := config.DefaultConfig()
	verifier := NewVerifier(config.Processor)
	secret := []byte(config.Processor.WebhookSecret)

	receivedAt := time.Now()
	body := []byte(`{"type":"authorization.request","event_id":"evt-1"}`)
	timestamp := strconv.FormatInt(receivedAt.Unix(), 10)
	staleTimestamp := strconv.FormatInt(receivedAt.Add(-10*time.Minute).Unix(), 10)

	testCases := []struct {
		Name          string
		Body          []byte
		Signature     string
		Timestamp     string
		ExpectedError error
	}{
		{
			Name:          "Success. Valid signature #1",
			Body:          body,
			Signature:     Sign(secret, timestamp, body),
			Timestamp:     timestamp,
			ExpectedError: nil,
		},
		{
			Name:          "Error. Missing signature header #2",
			Body:          body,
			Signature:     "",
			Timestamp:     timestamp,
			ExpectedError: ErrMissingHeaders,
		},
		{
			Name:          "Error. Missing timestamp header #3",
			Body:          body,
			Signature:     Sign(secret, timestamp, body),
			Timestamp:     "",
			ExpectedError: ErrMissingHeaders,
		},
		{
			Name:          "Error. Signature over different body #4",
			Body:          body,
			Signature:     Sign(secret, timestamp, []byte(`{"event_id":"evt-2"}`)),
			Timestamp:     timestamp,
			ExpectedError: ErrInvalidSignature,
		},
		{
			Name:          "Error. Signature with wrong secret #5",
			Body:          body,
			Signature:     Sign([]byte("wrong-secret"), timestamp, body),
			Timestamp:     timestamp,
			ExpectedError: ErrInvalidSignature,
		},
		{
			Name:          "Error. Signature is not hex #6",
			Body:          body,
			Signature:     "not-a-hex-string",
			Timestamp:     timestamp,
			ExpectedError: ErrInvalidSignature,
		},
		{
			// повтор старого запроса отклоняется даже с корректной подписью
			Name:          "Error. Replayed request outside skew window #7",
			Body:          body,
			Signature:     Sign(secret, staleTimestamp, body),
			Timestamp:     staleTimestamp,
			ExpectedError: ErrStaleTimestamp,
		},
		{
			Name:          "Error. Timestamp is not a number #8",
			Body:          body,
			Signature:     Sign(secret, "garbage", body),
			Timestamp:     "garbage",
			ExpectedError: ErrStaleTimestamp,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			err := verifier.Verify(tc.Body, tc.Signature, tc.Timestamp, receivedAt)
			if !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error '%v', got: '%v'", tc.ExpectedError, err)
			}
		})
	}
}

func TestVerifier_VerifySkewBounds(t *testing.T) {
	config := config.DefaultConfig()
	verifier := NewVerifier(config.Processor)
	secret := []byte(config.Processor.WebhookSecret)

	receivedAt := time.Now()
	body := []byte(`{"event_id":"evt-1"}`)

	// метка в пределах окна принимается с обеих сторон
	for _, offset := range []time.Duration{-4 * time.Minute, 4 * time.Minute} {
		timestamp := strconv.FormatInt(receivedAt.Add(offset).Unix(), 10)
		err := verifier.Verify(body, Sign(secret, timestamp, body), timestamp, receivedAt)
		if err != nil {
			t.Errorf("Expected no error for offset %v, got: '%v'", offset, err)
		}
	}
}
