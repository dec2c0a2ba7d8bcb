package client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/denmor86/cardcredit/internal/models"
	"github.com/shopspring/decimal"
)

// OracleClient - клиент оракула цен обеспечения
type OracleClient struct {
	baseURL    string
	httpClient HTTPClient
}

func NewOracleClient(baseURL string, client HTTPClient) *OracleClient {
	return &OracleClient{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// GetPrice - запрос котировки актива. Цена приходит строкой
// и разбирается в decimal без плавающей точки.
func (c *OracleClient) GetPrice(ctx context.Context, symbol string) (*models.PriceQuote, error) {
	url := c.baseURL + "/api/price/" + symbol
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrPriceUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, NewRateLimitError(resp.Header)
		}
		return nil, ErrPriceUnavailable
	}

	var result models.PriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, ErrPriceUnavailable
	}

	price, err := decimal.NewFromString(result.Price)
	if err != nil {
		return nil, ErrPriceUnavailable
	}
	asOf, err := time.Parse(time.RFC3339, result.AsOf)
	if err != nil {
		return nil, ErrPriceUnavailable
	}

	return &models.PriceQuote{
		Symbol: result.Symbol,
		Price:  price,
		AsOf:   asOf,
	}, nil
}
