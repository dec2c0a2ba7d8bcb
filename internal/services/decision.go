package services

import (
	"context"
	"errors"
	"time"

	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/denmor86/cardcredit/internal/storage"
	"go.uber.org/zap"
)

type DecisionService interface {
	Authorize(ctx context.Context, request models.AuthorizationRequest) models.DecisionData
	Summary(ctx context.Context, userID string) (*models.CreditSummary, error)
}

// Decision - движок решения по авторизации. Любой сбой на пути
// к решению разрешается в явный отказ: ошибочное одобрение создаёт
// необеспеченный долг, ошибочный отказ стоит только одной транзакции.
type Decision struct {
	Positions PositionService
	Oracle    PriceReader
	Risk      *Risk
	Ledger    LedgerService
	Params    *Params

	Symbol            string
	PositionStaleness time.Duration
}

// Создание сервиса
func NewDecision(cfg config.Config, positions PositionService, oracle PriceReader, risk *Risk, ledger LedgerService, params *Params) DecisionService {
	return &Decision{
		Positions:         positions,
		Oracle:            oracle,
		Risk:              risk,
		Ledger:            ledger,
		Params:            params,
		Symbol:            cfg.Oracle.AssetSymbol,
		PositionStaleness: cfg.Ledger.PositionStaleness,
	}
}

// Authorize - обработка одного запроса авторизации:
// Received → Verified → PositionFetched → RiskComputed → Decided.
// Повторная доставка event_id возвращает сохранённое решение,
// сумма резервов от дубля не меняется.
func (s *Decision) Authorize(ctx context.Context, request models.AuthorizationRequest) models.DecisionData {
	if decision, err := s.Ledger.GetDecision(ctx, request.EventID); err == nil {
		logger.Info("Duplicate delivery", "event_id", request.EventID)
		return *decision
	} else if !errors.Is(err, storage.ErrDecisionNotFound) {
		logger.Error("Failed to check idempotency:", zap.Error(err), "event_id", request.EventID)
		return s.decline(ctx, request, models.DeclineSystemError)
	}

	if s.Params.Paused() {
		logger.Warn("Authorizations paused, declining", "event_id", request.EventID)
		return s.decline(ctx, request, models.DeclineSystemError)
	}

	if limit := s.Params.MaxAmount(); limit > 0 && request.Amount > limit {
		return s.decline(ctx, request, models.DeclineAmountTooHigh)
	}

	position, err := s.Positions.Resolve(ctx, request.UserID)
	if err != nil {
		if errors.Is(err, ErrPositionNotFound) {
			return s.decline(ctx, request, models.DeclineNoPosition)
		}
		logger.Error("Failed to resolve position:", zap.Error(err), "user_id", request.UserID, "event_id", request.EventID)
		return s.decline(ctx, request, models.DeclineSystemError)
	}
	// срезу старше допустимого возраста доверять нельзя
	if time.Since(position.FetchedAt) > s.PositionStaleness {
		return s.decline(ctx, request, models.DeclineSystemError)
	}

	quote, err := s.Oracle.GetPrice(ctx, s.Symbol)
	if err != nil {
		logger.Error("Failed to get price:", zap.Error(err), "event_id", request.EventID)
		return s.decline(ctx, request, models.DeclinePriceUnavailable)
	}

	// резервы не вычитаются здесь: их актуальную сумму атомарно
	// вычтет леджер внутри критической секции пользователя
	available, err := s.Risk.AvailableCredit(position, quote, s.Params.LTVBps(), 0, time.Now())
	if err != nil {
		logger.Error("Failed to compute credit:", zap.Error(err), "event_id", request.EventID)
		return s.decline(ctx, request, models.DeclinePriceUnavailable)
	}

	// дедлайн ответа процессингу: не успели - детерминированный отказ
	if ctx.Err() != nil {
		logger.Error("Decision deadline exceeded", "event_id", request.EventID)
		return s.decline(context.WithoutCancel(ctx), request, models.DeclineSystemError)
	}

	outcome, decision, err := s.Ledger.TryReserve(ctx, request.UserID, request.EventID, request.Amount, available)
	if err != nil {
		logger.Error("Failed to reserve:", zap.Error(err), "user_id", request.UserID, "event_id", request.EventID)
		return s.decline(ctx, request, models.DeclineSystemError)
	}

	switch outcome {
	case OutcomeReserved:
		logger.Info("Authorization approved", "event_id", request.EventID, "user_id", request.UserID, "amount", request.Amount)
	case OutcomeAlreadyProcessed:
		logger.Info("Duplicate delivery", "event_id", request.EventID)
	case OutcomeInsufficientCredit:
		logger.Info("Authorization declined", "event_id", request.EventID, "reason", decision.DeclineReason)
	}
	return *decision
}

// decline - отказ с сохранением решения для идемпотентности.
// Если сохранить не удалось, процессинг всё равно получает отказ.
func (s *Decision) decline(ctx context.Context, request models.AuthorizationRequest, reason string) models.DecisionData {
	decision := models.DecisionData{
		EventID:       request.EventID,
		UserID:        request.UserID,
		Approved:      false,
		DeclineReason: reason,
		Amount:        request.Amount,
		DecidedAt:     time.Now(),
	}
	stored, err := s.Ledger.RecordDecision(ctx, decision)
	if err != nil {
		logger.Error("Failed to record decision:", zap.Error(err), "event_id", request.EventID)
		return decision
	}
	return *stored
}

// Summary - срез кредитного состояния пользователя для
// административного API
func (s *Decision) Summary(ctx context.Context, userID string) (*models.CreditSummary, error) {
	position, err := s.Positions.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	quote, err := s.Oracle.GetPrice(ctx, s.Symbol)
	if err != nil {
		return nil, err
	}
	reserved := s.Ledger.Reserved(userID)
	available, err := s.Risk.AvailableCredit(position, quote, s.Params.LTVBps(), reserved, time.Now())
	if err != nil {
		return nil, err
	}
	return &models.CreditSummary{
		UserID:     userID,
		Collateral: position.CollateralAmount,
		Debt:       position.DebtAmount,
		Reserved:   reserved,
		Available:  available,
	}, nil
}
