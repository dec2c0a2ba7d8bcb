package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/denmor86/cardcredit/internal/client"
	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/sony/gobreaker"
)

var (
	ErrPositionNotFound  = errors.New("position not found")
	ErrLedgerUnavailable = errors.New("collateral ledger unavailable")
)

// LedgerReader - контракт чтения позиций из внешнего леджера
type LedgerReader interface {
	GetPosition(ctx context.Context, userID string) (*models.PositionResponse, error)
}

type PositionService interface {
	Resolve(ctx context.Context, userID string) (*models.CollateralPosition, error)
}

func InitLedgerBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "collateral-ledger",
		Timeout: 30 * time.Second, // через 30 сек пробуем подключиться
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 5 попыток достучатся до леджера
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Circuit Breaker '%s': %s → %s", name, from, to)
		},
	})
}

// PositionResolver - чтение позиции с ограничением по времени.
// Короткоживущий кэш гасит всплески дублей вебхуков по одному
// пользователю, каждая новая авторизация читает свежий срез.
type PositionResolver struct {
	Reader   LedgerReader
	Breaker  *gobreaker.CircuitBreaker
	Timeout  time.Duration
	CacheTTL time.Duration

	mu    sync.Mutex
	cache map[string]*models.CollateralPosition
}

// Создание сервиса
func NewPositionResolver(cfg config.LedgerConfig) PositionService {
	return &PositionResolver{
		Reader:   client.NewLedgerClient(cfg.LedgerAddr, &http.Client{}),
		Breaker:  InitLedgerBreaker(),
		Timeout:  cfg.RequestTimeout,
		CacheTTL: cfg.CacheTTL,
		cache:    make(map[string]*models.CollateralPosition),
	}
}

// NewPositionResolverWithReader - конструктор для тестов
func NewPositionResolverWithReader(cfg config.LedgerConfig, reader LedgerReader) *PositionResolver {
	return &PositionResolver{
		Reader:   reader,
		Breaker:  InitLedgerBreaker(),
		Timeout:  cfg.RequestTimeout,
		CacheTTL: cfg.CacheTTL,
		cache:    make(map[string]*models.CollateralPosition),
	}
}

// readResult - обёртка ответа леджера для circuit breaker:
// отсутствие аккаунта - валидный ответ, а не сбой леджера
type readResult struct {
	position *models.PositionResponse
	found    bool
}

// Resolve - получение среза позиции пользователя
func (s *PositionResolver) Resolve(ctx context.Context, userID string) (*models.CollateralPosition, error) {
	if position := s.cached(userID); position != nil {
		return position, nil
	}

	readCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	result, err := s.Breaker.Execute(func() (interface{}, error) {
		response, err := s.Reader.GetPosition(readCtx, userID)
		if err != nil {
			if errors.Is(err, client.ErrPositionNotFound) {
				return readResult{found: false}, nil
			}
			return nil, err
		}
		return readResult{position: response, found: true}, nil
	})
	if err != nil {
		// открытый breaker и сбой чтения неразличимы для решения:
		// обеспечение нельзя подтвердить
		return nil, ErrLedgerUnavailable
	}

	read := result.(readResult)
	if !read.found {
		return nil, ErrPositionNotFound
	}

	position := &models.CollateralPosition{
		CollateralAmount: read.position.CollateralAmount,
		DebtAmount:       read.position.DebtAmount,
		FetchedAt:        time.Now(),
	}
	s.store(userID, position)
	return position, nil
}

func (s *PositionResolver) cached(userID string) *models.CollateralPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	position, ok := s.cache[userID]
	if !ok || time.Since(position.FetchedAt) > s.CacheTTL {
		return nil
	}
	return position
}

func (s *PositionResolver) store(userID string, position *models.CollateralPosition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[userID] = position
}
