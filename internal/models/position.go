package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollateralPosition - срез позиции пользователя из внешнего леджера.
// Значения принадлежат леджеру, сервис читает только копию.
type CollateralPosition struct {
	CollateralAmount int64     // базовые единицы актива (9 знаков)
	DebtAmount       int64     // долг в минорных единицах валюты кредита
	FetchedAt        time.Time // момент чтения среза
}

// PositionResponse - модель ответа леджера на запрос позиции
type PositionResponse struct {
	UserID           string `json:"user_id"`
	CollateralAmount int64  `json:"collateral_amount"`
	DebtAmount       int64  `json:"debt_amount"`
}

// PriceQuote - котировка актива от оракула цен
type PriceQuote struct {
	Symbol string
	Price  decimal.Decimal // USD за единицу актива
	AsOf   time.Time
}

// PriceResponse - модель ответа оракула, цена передаётся строкой
type PriceResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	AsOf   string `json:"as_of"`
}
