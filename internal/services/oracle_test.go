package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/denmor86/cardcredit/internal/client"
	mocks "github.com/denmor86/cardcredit/internal/client/mocks"
	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"go.uber.org/mock/gomock"
)

func TestOracleService_GetPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}
	defer logger.Sync()

	asOf := time.Now().UTC().Format(time.RFC3339)
	validBody := fmt.Sprintf(`{"symbol":"SOL","price":"199.95","as_of":"%s"}`, asOf)

	testCases := []struct {
		TestName      string
		SetupMocks    func()
		ExpectedPrice string
		ExpectedError error
	}{
		{
			TestName: "Success. Quote parsed #1",
			SetupMocks: func() {
				mockHTTPClient.EXPECT().Do(gomock.Any()).Return(&http.Response{
					Status:     "200 OK",
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(validBody)),
					Header:     make(http.Header),
				}, nil)
			},
			ExpectedPrice: "199.95",
			ExpectedError: nil,
		},
		{
			TestName: "Error. Oracle error #2",
			SetupMocks: func() {
				mockHTTPClient.EXPECT().Do(gomock.Any()).Return(&http.Response{
					Status:     "500",
					StatusCode: http.StatusInternalServerError,
					Body:       io.NopCloser(bytes.NewBufferString("")),
					Header:     make(http.Header),
				}, nil)
			},
			ExpectedError: client.ErrPriceUnavailable,
		},
		{
			TestName: "Error. Malformed price #3",
			SetupMocks: func() {
				mockHTTPClient.EXPECT().Do(gomock.Any()).Return(&http.Response{
					Status:     "200 OK",
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"symbol":"SOL","price":"not-a-number","as_of":"2026-01-01T00:00:00Z"}`)),
					Header:     make(http.Header),
				}, nil)
			},
			ExpectedError: client.ErrPriceUnavailable,
		},
		{
			TestName: "Error. Network failure #4",
			SetupMocks: func() {
				mockHTTPClient.EXPECT().Do(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			ExpectedError: client.ErrPriceUnavailable,
		},
		{
			TestName: "Error. Too many requests #5",
			SetupMocks: func() {
				mockHTTPClient.EXPECT().Do(gomock.Any()).Return(&http.Response{
					Status:     "429 Too Many Requests",
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(bytes.NewBufferString("")),
					Header: http.Header{
						"Retry-After": []string{"120"},
					},
				}, nil)
			},
			ExpectedError: client.ErrPriceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			service := &OracleService{
				Client:  client.NewOracleClient("", mockHTTPClient),
				Limiter: client.NewRateLimiter(),
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			quote, err := service.GetPrice(ctx, "SOL")

			if !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error '%v', got: '%v'", tc.ExpectedError, err)
			}
			if tc.ExpectedError != nil {
				return
			}
			if quote == nil {
				t.Fatalf("Expected quote, got nil")
			}
			if quote.Price.String() != tc.ExpectedPrice {
				t.Errorf("Expected price: '%v', got: '%v'", tc.ExpectedPrice, quote.Price.String())
			}
		})
	}
}
