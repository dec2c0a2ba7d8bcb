package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/denmor86/cardcredit/internal/client"
	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
)

// PriceReader - контракт запроса котировки у оракула
type PriceReader interface {
	GetPrice(ctx context.Context, symbol string) (*models.PriceQuote, error)
}

type OracleService struct {
	Client  PriceReader
	Limiter *client.RateLimiter
}

// Создание сервиса
func NewOracleService(cfg config.OracleConfig) *OracleService {
	return &OracleService{
		Client:  client.NewOracleClient(cfg.OracleAddr, &http.Client{}),
		Limiter: client.NewRateLimiter(),
	}
}

// GetPrice - котировка актива с учётом ограничений частоты запросов
func (s *OracleService) GetPrice(ctx context.Context, symbol string) (*models.PriceQuote, error) {
	if err := s.Limiter.Wait(ctx); err != nil {
		return nil, client.ErrPriceUnavailable
	}

	quote, err := s.Client.GetPrice(ctx, symbol)
	if err != nil {
		// проверка большого количества запросов
		var rateLimitErr *client.RateLimitError
		if errors.As(err, &rateLimitErr) {
			logger.Warn("Too many requests to price oracle:", symbol)
			s.Limiter.BlockFor(rateLimitErr.RetryAfter)
		}
		return nil, client.ErrPriceUnavailable
	}
	return quote, nil
}
