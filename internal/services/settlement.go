package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/denmor86/cardcredit/internal/storage"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

var ErrUnknownSettlementKind = errors.New("unknown settlement kind")

type SettlementService interface {
	Enqueue(ctx context.Context, event models.WebhookEvent) error
	ProcessBatch(ctx context.Context, count int) (int, error)
}

// Settlement - асинхронная сверка финальных состояний транзакций
// с резервами леджера. Работает вне бюджета задержки авторизации,
// сбои повторяются с backoff и не видны держателю карты.
type Settlement struct {
	Storage storage.SettlementsStorage
	Ledger  LedgerService
}

// Создание сервиса
func NewSettlement(settlements storage.SettlementsStorage, ledger LedgerService) SettlementService {
	return &Settlement{Storage: settlements, Ledger: ledger}
}

// Enqueue - постановка события расчёта или возврата в очередь.
// Повторная доставка события - no-op.
func (s *Settlement) Enqueue(ctx context.Context, event models.WebhookEvent) error {
	var kind string
	switch event.Type {
	case models.EventTypeSettlement:
		kind = models.SettlementKindCapture
	case models.EventTypeReversal:
		kind = models.SettlementKindReversal
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSettlementKind, event.Type)
	}

	authEventID := event.Transaction.AuthEventID
	if authEventID == "" {
		authEventID = event.EventID
	}

	err := s.Storage.AddSettlement(ctx, models.SettlementData{
		EventID:     event.EventID,
		AuthEventID: authEventID,
		UserID:      event.Transaction.UserID,
		Kind:        kind,
		Amount:      event.Transaction.Amount,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return nil
	}
	return err
}

// ProcessBatch - обработка пачки событий из очереди
func (s *Settlement) ProcessBatch(ctx context.Context, count int) (int, error) {
	settlements, err := s.Storage.ClaimSettlementsForProcessing(ctx, count)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, settlement := range settlements {
		if err := s.process(ctx, settlement); err != nil {
			logger.Error("Failed to process settlement:", zap.Error(err), "event_id", settlement.EventID)
			continue
		}
		processed++
	}
	return processed, nil
}

// process - применение одного события к леджеру с повторами
func (s *Settlement) process(ctx context.Context, settlement models.SettlementData) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.apply(ctx, settlement); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.Storage.MarkSettlementDone(ctx, settlement.EventID)
}

func (s *Settlement) apply(ctx context.Context, settlement models.SettlementData) error {
	switch settlement.Kind {
	case models.SettlementKindCapture:
		return s.Ledger.Settle(ctx, settlement.UserID, settlement.AuthEventID, settlement.Amount)
	case models.SettlementKindReversal:
		return s.Ledger.Release(ctx, settlement.UserID, settlement.AuthEventID)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSettlementKind, settlement.Kind)
	}
}
