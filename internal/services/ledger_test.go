package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/denmor86/cardcredit/internal/storage"
	"github.com/denmor86/cardcredit/internal/storage/mocks"
	"go.uber.org/mock/gomock"
)

func TestAuthLedger_TryReserve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDecisions := mocks.NewMockDecisionsStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	stored := &models.DecisionData{EventID: "evt-1", UserID: "user-1", Approved: true, Amount: 100}

	testCases := []struct {
		Name            string
		Amount          int64
		Available       int64
		SetupMocks      func()
		ExpectedOutcome ReserveOutcome
		ExpectedError   error
	}{
		{
			Name:      "Success. Reservation created #1",
			Amount:    100,
			Available: 500,
			SetupMocks: func() {
				mockDecisions.EXPECT().GetDecision(gomock.Any(), "evt-1").Return(nil, storage.ErrDecisionNotFound)
				mockDecisions.EXPECT().AddReservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			ExpectedOutcome: OutcomeReserved,
		},
		{
			Name:      "Declined. Amount exceeds available #2",
			Amount:    600,
			Available: 500,
			SetupMocks: func() {
				mockDecisions.EXPECT().GetDecision(gomock.Any(), "evt-1").Return(nil, storage.ErrDecisionNotFound)
				mockDecisions.EXPECT().AddDecision(gomock.Any(), gomock.Any()).Return(nil)
			},
			ExpectedOutcome: OutcomeInsufficientCredit,
		},
		{
			Name:      "Duplicate. Decision found in storage #3",
			Amount:    100,
			Available: 500,
			SetupMocks: func() {
				mockDecisions.EXPECT().GetDecision(gomock.Any(), "evt-1").Return(stored, nil)
			},
			ExpectedOutcome: OutcomeAlreadyProcessed,
		},
		{
			// проигранная гонка вставки: решение достаётся из хранилища
			Name:      "Duplicate. Lost insert race #4",
			Amount:    100,
			Available: 500,
			SetupMocks: func() {
				mockDecisions.EXPECT().GetDecision(gomock.Any(), "evt-1").Return(nil, storage.ErrDecisionNotFound)
				mockDecisions.EXPECT().AddReservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)
				mockDecisions.EXPECT().GetDecision(gomock.Any(), "evt-1").Return(stored, nil)
			},
			ExpectedOutcome: OutcomeAlreadyProcessed,
		},
		{
			Name:      "Error. Storage failure #5",
			Amount:    100,
			Available: 500,
			SetupMocks: func() {
				mockDecisions.EXPECT().GetDecision(gomock.Any(), "evt-1").Return(nil, storage.ErrDecisionNotFound)
				mockDecisions.EXPECT().AddReservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection lost"))
			},
			ExpectedError: errors.New("connection lost"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tc.SetupMocks()

			ledger := NewAuthLedger(config.Hold, mockDecisions)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			outcome, decision, err := ledger.TryReserve(ctx, "user-1", "evt-1", tc.Amount, tc.Available)

			if err != nil && tc.ExpectedError == nil {
				t.Errorf("Expected no error, got: '%v'", err)
			} else if err == nil && tc.ExpectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && err.Error() != tc.ExpectedError.Error() {
				t.Errorf("Expected error '%v', got: '%v'", tc.ExpectedError, err)
			}
			if tc.ExpectedError != nil {
				return
			}
			if outcome != tc.ExpectedOutcome {
				t.Errorf("Expected outcome: '%v', got: '%v'", tc.ExpectedOutcome, outcome)
			}
			if decision == nil {
				t.Fatalf("Expected decision, got nil")
			}
			if outcome == OutcomeInsufficientCredit && decision.DeclineReason != models.DeclineInsufficientCollateral {
				t.Errorf("Expected decline reason '%s', got: '%s'", models.DeclineInsufficientCollateral, decision.DeclineReason)
			}
		})
	}
}

// Две последовательные авторизации по одной карте: вторая видит
// резерв первой и отклоняется, расчёт первой освобождает лимит.
func TestAuthLedger_SequentialAuthorizations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDecisions := mocks.NewMockDecisionsStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	ledger := NewAuthLedger(config.Hold, mockDecisions)
	ctx := context.Background()
	available := int64(500_000_000)

	mockDecisions.EXPECT().GetDecision(gomock.Any(), "evt-1").Return(nil, storage.ErrDecisionNotFound)
	mockDecisions.EXPECT().AddReservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	outcome, _, err := ledger.TryReserve(ctx, "user-1", "evt-1", 400_000_000, available)
	if err != nil || outcome != OutcomeReserved {
		t.Fatalf("Expected reservation, got outcome '%v', error '%v'", outcome, err)
	}
	if reserved := ledger.Reserved("user-1"); reserved != 400_000_000 {
		t.Errorf("Expected reserved 400000000, got: '%v'", reserved)
	}

	// доступно 500 - 400 = 100, запрос на 150 не проходит
	mockDecisions.EXPECT().GetDecision(gomock.Any(), "evt-2").Return(nil, storage.ErrDecisionNotFound)
	mockDecisions.EXPECT().AddDecision(gomock.Any(), gomock.Any()).Return(nil)

	outcome, decision, err := ledger.TryReserve(ctx, "user-1", "evt-2", 150_000_000, available)
	if err != nil || outcome != OutcomeInsufficientCredit {
		t.Fatalf("Expected decline, got outcome '%v', error '%v'", outcome, err)
	}
	if decision.DeclineReason != models.DeclineInsufficientCollateral {
		t.Errorf("Expected decline reason '%s', got: '%s'", models.DeclineInsufficientCollateral, decision.DeclineReason)
	}

	// расчёт первой авторизации закрывает резерв целиком
	mockDecisions.EXPECT().SettleReservation(gomock.Any(), "evt-1", int64(380_000_000)).
		Return(&models.ReservationData{EventID: "evt-1", UserID: "user-1", Amount: 400_000_000}, nil)

	if err := ledger.Settle(ctx, "user-1", "evt-1", 380_000_000); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if reserved := ledger.Reserved("user-1"); reserved != 0 {
		t.Errorf("Expected reserved 0 after settlement, got: '%v'", reserved)
	}
}

// Повторная доставка события возвращает сохранённое решение,
// сумма резервов не меняется.
func TestAuthLedger_DuplicateDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDecisions := mocks.NewMockDecisionsStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	ledger := NewAuthLedger(config.Hold, mockDecisions)
	ctx := context.Background()

	mockDecisions.EXPECT().GetDecision(gomock.Any(), "evt-1").Return(nil, storage.ErrDecisionNotFound)
	mockDecisions.EXPECT().AddReservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	outcome, first, err := ledger.TryReserve(ctx, "user-1", "evt-1", 100, 500)
	if err != nil || outcome != OutcomeReserved {
		t.Fatalf("Expected reservation, got outcome '%v', error '%v'", outcome, err)
	}

	// второй вызов обслуживается из кэша решений, хранилище не трогается
	outcome, second, err := ledger.TryReserve(ctx, "user-1", "evt-1", 100, 500)
	if err != nil || outcome != OutcomeAlreadyProcessed {
		t.Fatalf("Expected duplicate, got outcome '%v', error '%v'", outcome, err)
	}
	if second.EventID != first.EventID || second.Approved != first.Approved {
		t.Errorf("Expected same decision, got: '%+v' and '%+v'", first, second)
	}
	if reserved := ledger.Reserved("user-1"); reserved != 100 {
		t.Errorf("Expected reserved 100, got: '%v'", reserved)
	}
}

// Конкурентные авторизации по одной карте не резервируют больше лимита.
func TestAuthLedger_ConcurrentReservations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDecisions := mocks.NewMockDecisionsStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	mockDecisions.EXPECT().GetDecision(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDecisionNotFound).AnyTimes()
	mockDecisions.EXPECT().AddReservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockDecisions.EXPECT().AddDecision(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ledger := NewAuthLedger(config.Hold, mockDecisions)
	ctx := context.Background()

	const (
		available = int64(500)
		amount    = int64(100)
		requests  = 20
	)

	var wg sync.WaitGroup
	outcomes := make(chan ReserveOutcome, requests)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			outcome, _, err := ledger.TryReserve(ctx, "user-1", fmt.Sprintf("evt-%d", n), amount, available)
			if err != nil {
				t.Errorf("Expected no error, got: '%v'", err)
				return
			}
			outcomes <- outcome
		}(i)
	}
	wg.Wait()
	close(outcomes)

	approved := int64(0)
	for outcome := range outcomes {
		if outcome == OutcomeReserved {
			approved++
		}
	}

	if approved*amount > available {
		t.Errorf("Reserved %d over available %d", approved*amount, available)
	}
	if approved != available/amount {
		t.Errorf("Expected %d approvals, got: %d", available/amount, approved)
	}
	if reserved := ledger.Reserved("user-1"); reserved != approved*amount {
		t.Errorf("Expected reserved %d, got: %d", approved*amount, reserved)
	}
}

// Снятие и расчёт закрытого резерва - no-op, сумма резервов
// не уходит в минус.
func TestAuthLedger_ReleaseAndSettleIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDecisions := mocks.NewMockDecisionsStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	ledger := NewAuthLedger(config.Hold, mockDecisions)
	ctx := context.Background()

	mockDecisions.EXPECT().GetDecision(gomock.Any(), "evt-1").Return(nil, storage.ErrDecisionNotFound)
	mockDecisions.EXPECT().AddReservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	if _, _, err := ledger.TryReserve(ctx, "user-1", "evt-1", 100, 500); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	mockDecisions.EXPECT().ReleaseReservation(gomock.Any(), "evt-1").
		Return(&models.ReservationData{EventID: "evt-1", UserID: "user-1", Amount: 100}, nil)

	if err := ledger.Release(ctx, "user-1", "evt-1"); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if reserved := ledger.Reserved("user-1"); reserved != 0 {
		t.Errorf("Expected reserved 0, got: '%v'", reserved)
	}

	// резерв уже закрыт: хранилище возвращает пустой результат
	mockDecisions.EXPECT().ReleaseReservation(gomock.Any(), "evt-1").Return(nil, nil)
	mockDecisions.EXPECT().SettleReservation(gomock.Any(), "evt-1", int64(100)).Return(nil, nil)

	if err := ledger.Release(ctx, "user-1", "evt-1"); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if err := ledger.Settle(ctx, "user-1", "evt-1", 100); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if reserved := ledger.Reserved("user-1"); reserved != 0 {
		t.Errorf("Expected reserved 0, got: '%v'", reserved)
	}
}

func TestAuthLedger_RestoreAndExpire(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockDecisions := mocks.NewMockDecisionsStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	ledger := NewAuthLedger(config.Hold, mockDecisions)
	ctx := context.Background()
	now := time.Now()

	mockDecisions.EXPECT().GetActiveReservations(gomock.Any()).Return([]models.ReservationData{
		{EventID: "evt-1", UserID: "user-1", Amount: 100},
		{EventID: "evt-2", UserID: "user-1", Amount: 50},
		{EventID: "evt-3", UserID: "user-2", Amount: 70},
	}, nil)

	if err := ledger.Restore(ctx); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if reserved := ledger.Reserved("user-1"); reserved != 150 {
		t.Errorf("Expected reserved 150, got: '%v'", reserved)
	}
	if reserved := ledger.Reserved("user-2"); reserved != 70 {
		t.Errorf("Expected reserved 70, got: '%v'", reserved)
	}

	mockDecisions.EXPECT().ExpireReservations(gomock.Any(), now).Return([]models.ReservationData{
		{EventID: "evt-2", UserID: "user-1", Amount: 50},
	}, nil)

	expired, err := ledger.ExpireHolds(ctx, now)
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if expired != 1 {
		t.Errorf("Expected 1 expired hold, got: '%v'", expired)
	}
	if reserved := ledger.Reserved("user-1"); reserved != 100 {
		t.Errorf("Expected reserved 100, got: '%v'", reserved)
	}
}
