package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/denmor86/cardcredit/internal/client"
	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/denmor86/cardcredit/internal/services"
	"github.com/denmor86/cardcredit/internal/services/mocks"
	"go.uber.org/mock/gomock"
)

func TestPositionResolver_Resolve(t *testing.T) {
	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	testCases := []struct {
		Name          string
		SetupMocks    func(*mocks.MockLedgerReader)
		ExpectedError error
	}{
		{
			Name: "Success. Position read #1",
			SetupMocks: func(mockReader *mocks.MockLedgerReader) {
				mockReader.EXPECT().GetPosition(gomock.Any(), "user-1").Return(&models.PositionResponse{
					UserID:           "user-1",
					CollateralAmount: 5_000_000_000,
					DebtAmount:       100_000_000,
				}, nil)
			},
			ExpectedError: nil,
		},
		{
			Name: "Error. Account does not exist #2",
			SetupMocks: func(mockReader *mocks.MockLedgerReader) {
				mockReader.EXPECT().GetPosition(gomock.Any(), "user-1").Return(nil, client.ErrPositionNotFound)
			},
			ExpectedError: services.ErrPositionNotFound,
		},
		{
			Name: "Error. Ledger failure #3",
			SetupMocks: func(mockReader *mocks.MockLedgerReader) {
				mockReader.EXPECT().GetPosition(gomock.Any(), "user-1").Return(nil, client.ErrLedgerUnavailable)
			},
			ExpectedError: services.ErrLedgerUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockReader := mocks.NewMockLedgerReader(ctrl)
			tc.SetupMocks(mockReader)

			resolver := services.NewPositionResolverWithReader(config.Ledger, mockReader)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			position, err := resolver.Resolve(ctx, "user-1")
			if !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error '%v', got: '%v'", tc.ExpectedError, err)
			}
			if tc.ExpectedError == nil {
				if position == nil {
					t.Fatalf("Expected position, got nil")
				}
				if position.CollateralAmount != 5_000_000_000 || position.DebtAmount != 100_000_000 {
					t.Errorf("Unexpected position: '%+v'", position)
				}
				if position.FetchedAt.IsZero() {
					t.Errorf("Expected FetchedAt to be set")
				}
			}
		})
	}
}

// Повторное чтение в пределах TTL обслуживается из кэша,
// леджер вызывается один раз.
func TestPositionResolver_Cache(t *testing.T) {
	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockReader := mocks.NewMockLedgerReader(ctrl)

	mockReader.EXPECT().GetPosition(gomock.Any(), "user-1").Return(&models.PositionResponse{
		UserID:           "user-1",
		CollateralAmount: 5_000_000_000,
	}, nil).Times(1)

	resolver := services.NewPositionResolverWithReader(config.Ledger, mockReader)
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	second, err := resolver.Resolve(ctx, "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if first != second {
		t.Errorf("Expected cached snapshot on second read")
	}
}

// После серии сбоев breaker открывается и запросы к леджеру
// не выполняются до истечения таймаута.
func TestPositionResolver_BreakerOpens(t *testing.T) {
	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockReader := mocks.NewMockLedgerReader(ctrl)

	// breaker размыкается после пяти подряд сбоев
	mockReader.EXPECT().GetPosition(gomock.Any(), "user-1").
		Return(nil, client.ErrLedgerUnavailable).Times(5)

	resolver := services.NewPositionResolverWithReader(config.Ledger, mockReader)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_, err := resolver.Resolve(ctx, "user-1")
		if !errors.Is(err, services.ErrLedgerUnavailable) {
			t.Errorf("Expected ErrLedgerUnavailable on attempt %d, got: '%v'", i, err)
		}
	}
}
