package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/denmor86/cardcredit/internal/models"
)

// LedgerClient - клиент чтения позиций из внешней программы обеспечения
type LedgerClient struct {
	baseURL    string
	httpClient HTTPClient
}

func NewLedgerClient(baseURL string, client HTTPClient) *LedgerClient {
	return &LedgerClient{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// GetPosition - чтение среза позиции пользователя по ключу аккаунта.
// Отсутствие аккаунта отличается от сетевой ошибки или таймаута.
func (c *LedgerClient) GetPosition(ctx context.Context, userID string) (*models.PositionResponse, error) {
	url := c.baseURL + "/api/positions/" + userID
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrLedgerUnavailable
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrPositionNotFound
	default:
		return nil, ErrLedgerUnavailable
	}

	var result models.PositionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, ErrLedgerUnavailable
	}

	return &result, nil
}
