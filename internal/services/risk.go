package services

import (
	"errors"
	"time"

	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("invalid or stale oracle price")

const (
	// BpsPrecision - точность базисных пунктов
	BpsPrecision = 10000
	// CollateralDecimals - знаков в базовых единицах актива обеспечения
	CollateralDecimals = 9
	// CreditDecimals - знаков в минорных единицах валюты кредита
	CreditDecimals = 6
)

// Risk - расчёт доступного кредита по позиции, цене и LTV-политике.
// Вся арифметика ведётся в целых/фиксированных числах: плавающая точка
// не участвует в границе одобрения.
type Risk struct {
	PriceStaleness time.Duration
}

// Создание сервиса
func NewRisk(cfg config.OracleConfig) *Risk {
	return &Risk{PriceStaleness: cfg.PriceStaleness}
}

// AvailableCredit - чистая функция доступного кредита:
// available = max(0, value(collateral, price) * LTV - debt - reserved).
// Цена с нулём или истёкшим сроком годности отклоняется.
func (r *Risk) AvailableCredit(position *models.CollateralPosition, quote *models.PriceQuote, ltvBps int64, reserved int64, now time.Time) (int64, error) {
	if quote == nil || !quote.Price.IsPositive() {
		return 0, ErrInvalidPrice
	}
	if now.Sub(quote.AsOf) > r.PriceStaleness {
		return 0, ErrInvalidPrice
	}

	// стоимость обеспечения в минорных единицах валюты кредита:
	// collateral (10^-9 единиц актива) * price (USD за единицу) * 10^6
	collateralValue := quote.Price.
		Mul(decimal.New(position.CollateralAmount, -CollateralDecimals)).
		Shift(CreditDecimals)

	// лимит по LTV, умножение на ltv*10^-4 в decimal точное
	maxCredit := collateralValue.Mul(decimal.New(ltvBps, -4)).Truncate(0).IntPart()

	available := maxCredit - position.DebtAmount - reserved
	if available < 0 {
		available = 0
	}
	return available, nil
}
