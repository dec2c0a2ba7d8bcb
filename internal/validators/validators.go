package validators

import (
	"errors"

	"github.com/denmor86/cardcredit/internal/models"
)

var (
	ErrMissingEventID = errors.New("missing event id")
	ErrMissingUser    = errors.New("missing card or user id")
	ErrInvalidAmount  = errors.New("invalid amount")
)

// CheckAuthorization проверяет обязательные поля события авторизации
// до передачи в движок решения
func CheckAuthorization(event models.WebhookEvent) error {
	if event.EventID == "" {
		return ErrMissingEventID
	}
	if event.Transaction.CardID == "" || event.Transaction.UserID == "" {
		return ErrMissingUser
	}
	if event.Transaction.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// CheckSettlement проверяет обязательные поля события расчёта
func CheckSettlement(event models.WebhookEvent) error {
	if event.EventID == "" {
		return ErrMissingEventID
	}
	if event.Transaction.UserID == "" {
		return ErrMissingUser
	}
	if event.Transaction.Amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}
