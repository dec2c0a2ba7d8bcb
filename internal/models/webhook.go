package models

import "time"

// Типы событий вебхука процессинга
const (
	EventTypeAuthorization = "authorization.request"
	EventTypeSettlement    = "transaction.settlement"
	EventTypeReversal      = "transaction.reversal"
)

// MerchantData - описание мерчанта, в решении не участвует
type MerchantData struct {
	Name string `json:"name,omitempty"`
	MCC  string `json:"mcc,omitempty"`
	City string `json:"city,omitempty"`
}

// TransactionData - данные транзакции из вебхука
type TransactionData struct {
	CardID      string       `json:"card_id"`
	UserID      string       `json:"user_id"`
	Amount      int64        `json:"amount"`
	AuthEventID string       `json:"auth_event_id,omitempty"`
	Merchant    MerchantData `json:"merchant"`
}

// WebhookEvent - модель входящего события от процессинга
type WebhookEvent struct {
	Type        string          `json:"type"`
	EventID     string          `json:"event_id"`
	Transaction TransactionData `json:"transaction"`
}

// AuthorizationRequest - модель запроса авторизации после разбора вебхука.
// Amount задаётся в минорных единицах валюты кредита.
type AuthorizationRequest struct {
	EventID    string
	CardID     string
	UserID     string
	Amount     int64
	ReceivedAt time.Time
}

// DecisionResponse - модель ответа процессингу на запрос авторизации
type DecisionResponse struct {
	EventID       string `json:"event_id"`
	Approved      bool   `json:"approved"`
	DeclineReason string `json:"decline_reason,omitempty"`
}

// AckResponse - модель подтверждения приёма события без решения
type AckResponse struct {
	Acknowledged bool `json:"acknowledged"`
}
