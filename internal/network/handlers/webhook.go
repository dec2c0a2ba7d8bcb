package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/denmor86/cardcredit/internal/services"
	"github.com/denmor86/cardcredit/internal/validators"
	"go.uber.org/zap"
)

// Заголовки подписи вебхука процессинга
const (
	SignatureHeader = "X-Signature"
	TimestampHeader = "X-Timestamp"
)

// WebhookHandler — приём событий процессинга карт.
// Неподписанные и устаревшие запросы отклоняются на транспортном
// уровне и не доходят до движка решения.
func WebhookHandler(cfg config.ProcessorConfig, verifier services.VerifierService, decision services.DecisionService, settlements services.SettlementService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAt := time.Now()

		body, err := io.ReadAll(r.Body)
		if err != nil || len(body) == 0 {
			logger.Warn("Invalid body:", zap.Error(err))
			http.Error(w, "Invalid body format", http.StatusBadRequest)
			return
		}
		defer func() {
			if err := r.Body.Close(); err != nil {
				logger.Error("Error to close body:", zap.Error(err))
			}
		}()

		err = verifier.Verify(body, r.Header.Get(SignatureHeader), r.Header.Get(TimestampHeader), receivedAt)
		if err != nil {
			// транспортный отказ, не бизнес-решение
			logger.Warn("Webhook verification failed:", zap.Error(err))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var event models.WebhookEvent
		if err := json.Unmarshal(body, &event); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		switch event.Type {
		case models.EventTypeAuthorization:
			if err := validators.CheckAuthorization(event); err != nil {
				logger.Warn("Invalid authorization event:", zap.Error(err))
				http.Error(w, "Invalid authorization event", http.StatusUnprocessableEntity)
				return
			}

			// жёсткий дедлайн ответа процессингу
			ctx, cancel := context.WithTimeout(r.Context(), cfg.DecisionTimeout)
			defer cancel()

			result := decision.Authorize(ctx, models.AuthorizationRequest{
				EventID:    event.EventID,
				CardID:     event.Transaction.CardID,
				UserID:     event.Transaction.UserID,
				Amount:     event.Transaction.Amount,
				ReceivedAt: receivedAt,
			})

			// единственная точка ответа: решение сериализуется один раз
			writeJSON(w, models.DecisionResponse{
				EventID:       result.EventID,
				Approved:      result.Approved,
				DeclineReason: result.DeclineReason,
			})

		case models.EventTypeSettlement, models.EventTypeReversal:
			if err := validators.CheckSettlement(event); err != nil {
				logger.Warn("Invalid settlement event:", zap.Error(err))
				http.Error(w, "Invalid settlement event", http.StatusUnprocessableEntity)
				return
			}
			if err := settlements.Enqueue(r.Context(), event); err != nil {
				// процессинг доставит событие повторно
				logger.Error("Failed to enqueue settlement:", zap.Error(err), "event_id", event.EventID)
				http.Error(w, "Server Error", http.StatusInternalServerError)
				return
			}
			writeJSON(w, models.AckResponse{Acknowledged: true})

		default:
			// незнакомые типы подтверждаются без решения
			writeJSON(w, models.AckResponse{Acknowledged: true})
		}
	})
}

func writeJSON(w http.ResponseWriter, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode JSON response:", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
