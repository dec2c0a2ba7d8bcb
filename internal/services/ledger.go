package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/denmor86/cardcredit/internal/storage"
	"go.uber.org/zap"
)

// ReserveOutcome - результат попытки резерва лимита
type ReserveOutcome int

const (
	OutcomeReserved ReserveOutcome = iota
	OutcomeAlreadyProcessed
	OutcomeInsufficientCredit
)

type LedgerService interface {
	TryReserve(ctx context.Context, userID string, eventID string, amount int64, available int64) (ReserveOutcome, *models.DecisionData, error)
	RecordDecision(ctx context.Context, decision models.DecisionData) (*models.DecisionData, error)
	GetDecision(ctx context.Context, eventID string) (*models.DecisionData, error)
	Release(ctx context.Context, userID string, eventID string) error
	Settle(ctx context.Context, userID string, eventID string, finalAmount int64) error
	ExpireHolds(ctx context.Context, now time.Time) (int, error)
	Restore(ctx context.Context) error
	Reserved(userID string) int64
}

// AuthLedger - единственный владелец кредитного состояния пользователей.
// Состояние одного пользователя изменяется только под его замком,
// запросы разных пользователей не конкурируют между собой.
// Решения и резервы пишутся в хранилище внутри критической секции,
// поэтому идемпотентность переживает рестарт процесса.
type AuthLedger struct {
	Storage storage.DecisionsStorage
	HoldTTL time.Duration

	mu    sync.Mutex
	users map[string]*userState

	decisions sync.Map // event_id -> *models.DecisionData
}

type userState struct {
	mu       sync.Mutex
	reserved int64
}

// Создание сервиса
func NewAuthLedger(cfg config.HoldConfig, decisions storage.DecisionsStorage) *AuthLedger {
	return &AuthLedger{
		Storage: decisions,
		HoldTTL: cfg.HoldTTL,
		users:   make(map[string]*userState),
	}
}

func (l *AuthLedger) state(userID string) *userState {
	l.mu.Lock()
	defer l.mu.Unlock()
	st, ok := l.users[userID]
	if !ok {
		st = &userState{}
		l.users[userID] = st
	}
	return st
}

// Reserved - текущая сумма активных резервов пользователя
func (l *AuthLedger) Reserved(userID string) int64 {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.reserved
}

// TryReserve - атомарная проверка и резерв лимита под авторизацию.
// available передаётся без вычета резервов: актуальная сумма резервов
// вычитается здесь, под замком пользователя, что исключает гонку
// одновременных авторизаций по одной карте.
func (l *AuthLedger) TryReserve(ctx context.Context, userID string, eventID string, amount int64, available int64) (ReserveOutcome, *models.DecisionData, error) {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if decision := l.cachedDecision(eventID); decision != nil {
		return OutcomeAlreadyProcessed, decision, nil
	}
	stored, err := l.Storage.GetDecision(ctx, eventID)
	if err == nil {
		l.decisions.Store(eventID, stored)
		return OutcomeAlreadyProcessed, stored, nil
	}
	if !errors.Is(err, storage.ErrDecisionNotFound) {
		return 0, nil, err
	}

	now := time.Now()

	if amount > available-st.reserved {
		decision := &models.DecisionData{
			EventID:       eventID,
			UserID:        userID,
			Approved:      false,
			DeclineReason: models.DeclineInsufficientCollateral,
			Amount:        amount,
			DecidedAt:     now,
		}
		stored, err := l.persistDecision(ctx, decision)
		if err != nil {
			return 0, nil, err
		}
		if stored != decision {
			return OutcomeAlreadyProcessed, stored, nil
		}
		return OutcomeInsufficientCredit, decision, nil
	}

	decision := &models.DecisionData{
		EventID:   eventID,
		UserID:    userID,
		Approved:  true,
		Amount:    amount,
		DecidedAt: now,
	}
	reservation := models.ReservationData{
		EventID:   eventID,
		UserID:    userID,
		Amount:    amount,
		Status:    models.ReservationStatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(l.HoldTTL),
	}
	if err := l.Storage.AddReservation(ctx, *decision, reservation); err != nil {
		// проигранная гонка вставки - повторная доставка
		if errors.Is(err, storage.ErrAlreadyExists) {
			stored, getErr := l.Storage.GetDecision(ctx, eventID)
			if getErr != nil {
				return 0, nil, getErr
			}
			l.decisions.Store(eventID, stored)
			return OutcomeAlreadyProcessed, stored, nil
		}
		return 0, nil, err
	}

	st.reserved += amount
	l.decisions.Store(eventID, decision)
	return OutcomeReserved, decision, nil
}

// RecordDecision - идемпотентное сохранение отказа, вынесенного
// до проверки лимита. Возвращает сохранённое решение: при повторной
// доставке это решение первой доставки.
func (l *AuthLedger) RecordDecision(ctx context.Context, decision models.DecisionData) (*models.DecisionData, error) {
	st := l.state(decision.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	return l.persistDecision(ctx, &decision)
}

func (l *AuthLedger) persistDecision(ctx context.Context, decision *models.DecisionData) (*models.DecisionData, error) {
	err := l.Storage.AddDecision(ctx, *decision)
	if err == nil {
		l.decisions.Store(decision.EventID, decision)
		return decision, nil
	}
	if errors.Is(err, storage.ErrAlreadyExists) {
		stored, getErr := l.Storage.GetDecision(ctx, decision.EventID)
		if getErr != nil {
			return nil, getErr
		}
		l.decisions.Store(decision.EventID, stored)
		return stored, nil
	}
	return nil, err
}

// GetDecision - поиск ранее вынесенного решения по event_id
func (l *AuthLedger) GetDecision(ctx context.Context, eventID string) (*models.DecisionData, error) {
	if decision := l.cachedDecision(eventID); decision != nil {
		return decision, nil
	}
	stored, err := l.Storage.GetDecision(ctx, eventID)
	if err != nil {
		return nil, err
	}
	l.decisions.Store(eventID, stored)
	return stored, nil
}

func (l *AuthLedger) cachedDecision(eventID string) *models.DecisionData {
	if value, ok := l.decisions.Load(eventID); ok {
		return value.(*models.DecisionData)
	}
	return nil
}

// Release - снятие резерва: отмена, возврат или истечение удержания.
// Отсутствующий или уже закрытый резерв не считается ошибкой.
func (l *AuthLedger) Release(ctx context.Context, userID string, eventID string) error {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	reservation, err := l.Storage.ReleaseReservation(ctx, eventID)
	if err != nil {
		return err
	}
	if reservation != nil {
		st.reserved -= reservation.Amount
		if st.reserved < 0 {
			st.reserved = 0
		}
	}
	return nil
}

// Settle - перевод резерва в рассчитанный долг. Частичное списание
// меньше резерва освобождает остаток, резерв закрывается целиком.
// Повторный расчёт или расчёт после снятия - no-op.
func (l *AuthLedger) Settle(ctx context.Context, userID string, eventID string, finalAmount int64) error {
	st := l.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	reservation, err := l.Storage.SettleReservation(ctx, eventID, finalAmount)
	if err != nil {
		return err
	}
	if reservation != nil {
		st.reserved -= reservation.Amount
		if st.reserved < 0 {
			st.reserved = 0
		}
	}
	return nil
}

// ExpireHolds - снятие резервов, по которым расчёт не пришёл
// за окно удержания
func (l *AuthLedger) ExpireHolds(ctx context.Context, now time.Time) (int, error) {
	expired, err := l.Storage.ExpireReservations(ctx, now)
	if err != nil {
		return 0, err
	}
	for _, reservation := range expired {
		st := l.state(reservation.UserID)
		st.mu.Lock()
		st.reserved -= reservation.Amount
		if st.reserved < 0 {
			st.reserved = 0
		}
		st.mu.Unlock()
		logger.Info("Hold expired", "event_id", reservation.EventID, "user_id", reservation.UserID, "amount", reservation.Amount)
	}
	return len(expired), nil
}

// Restore - восстановление сумм резервов из хранилища после рестарта
func (l *AuthLedger) Restore(ctx context.Context) error {
	active, err := l.Storage.GetActiveReservations(ctx)
	if err != nil {
		return err
	}
	for _, reservation := range active {
		st := l.state(reservation.UserID)
		st.mu.Lock()
		st.reserved += reservation.Amount
		st.mu.Unlock()
	}
	if len(active) > 0 {
		logger.Info("Restored active reservations:", zap.Int("count", len(active)))
	}
	return nil
}
