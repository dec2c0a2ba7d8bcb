package models

import "time"

// Причины отказа в авторизации
const (
	DeclineNoPosition             = "NO_POSITION"
	DeclineInsufficientCollateral = "INSUFFICIENT_COLLATERAL"
	DeclinePriceUnavailable       = "PRICE_UNAVAILABLE"
	DeclineSystemError            = "SYSTEM_ERROR"
	DeclineAmountTooHigh          = "AMOUNT_TOO_HIGH"
)

// Статусы резервов
const (
	ReservationStatusActive   = "ACTIVE"
	ReservationStatusSettled  = "SETTLED"
	ReservationStatusReleased = "RELEASED"
	ReservationStatusExpired  = "EXPIRED"
)

// Статусы событий расчёта в очереди обработки
const (
	SettlementStatusNew        = "NEW"
	SettlementStatusProcessing = "PROCESSING"
	SettlementStatusDone       = "DONE"
)

// Виды событий расчёта
const (
	SettlementKindCapture  = "CAPTURE"
	SettlementKindReversal = "REVERSAL"
)

// DecisionData - результат обработки одного события авторизации.
// Для одного event_id решение вычисляется ровно один раз,
// повторные доставки получают сохранённое решение.
type DecisionData struct {
	EventID       string
	UserID        string
	Approved      bool
	DeclineReason string
	Amount        int64
	DecidedAt     time.Time
}

// ReservationData - модель резерва кредитного лимита под авторизацию
type ReservationData struct {
	EventID   string
	UserID    string
	Amount    int64
	Status    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SettlementData - модель события расчёта из очереди обработки
type SettlementData struct {
	EventID     string
	AuthEventID string
	UserID      string
	Kind        string
	Amount      int64
	RetryCount  int
}

// CreditSummary - срез кредитного состояния пользователя для выдачи
type CreditSummary struct {
	UserID     string `json:"user_id"`
	Collateral int64  `json:"collateral_amount"`
	Debt       int64  `json:"debt_amount"`
	Reserved   int64  `json:"reserved_amount"`
	Available  int64  `json:"available_credit"`
}
