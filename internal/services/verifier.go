package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/denmor86/cardcredit/internal/config"
)

var (
	ErrMissingHeaders   = errors.New("missing signature headers")
	ErrStaleTimestamp   = errors.New("stale webhook timestamp")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

type VerifierService interface {
	Verify(body []byte, signature string, timestamp string, receivedAt time.Time) error
}

// Verifier - проверка подлинности вебхуков процессинга.
// Подпись - HMAC-SHA256 от timestamp || body на общем секрете.
type Verifier struct {
	Secret []byte
	Skew   time.Duration
}

// Создание сервиса
func NewVerifier(cfg config.ProcessorConfig) VerifierService {
	return &Verifier{Secret: []byte(cfg.WebhookSecret), Skew: cfg.SignatureSkew}
}

// Verify - проверка подписи и метки времени входящего запроса.
// Окно времени проверяется до подписи: повтор старого запроса
// отклоняется даже с математически корректной подписью.
func (v *Verifier) Verify(body []byte, signature string, timestamp string, receivedAt time.Time) error {
	if signature == "" || timestamp == "" {
		return ErrMissingHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrStaleTimestamp
	}
	sentAt := time.Unix(ts, 0)
	skew := receivedAt.Sub(sentAt)
	if skew < 0 {
		skew = -skew
	}
	if skew > v.Skew {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, v.Secret)
	mac.Write([]byte(timestamp))
	mac.Write(body)
	expected := mac.Sum(nil)

	got, err := hex.DecodeString(signature)
	// сравнение за константное время
	if err != nil || !hmac.Equal(got, expected) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign - вычисление подписи для timestamp и тела запроса.
// Используется в тестах и эмуляторе процессинга.
func Sign(secret []byte, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
