package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/denmor86/cardcredit/internal/helpers"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/denmor86/cardcredit/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreditSummaryHandler — текущее кредитное состояние пользователя
func CreditSummaryHandler(decision services.DecisionService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		if userID == "" {
			http.Error(w, "Missing user id", http.StatusBadRequest)
			return
		}

		summary, err := decision.Summary(r.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrPositionNotFound) {
				http.Error(w, "Position not found", http.StatusNotFound)
				return
			}
			logger.Error("Failed to get credit summary:", zap.Error(err), "user_id", userID)
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// UpdateParamsHandler — изменение параметров риск-политики на лету
func UpdateParamsHandler(params *services.Params) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := helpers.GetUsername(r.Context())
		if err != nil {
			logger.Warn("Failed to get username:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		var request models.ParamsRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		if err := params.SetParams(request.LTVBps, request.MaxAmount); err != nil {
			logger.Warn("Invalid risk parameters", "ltv_bps", request.LTVBps, "max_amount", request.MaxAmount)
			http.Error(w, "Invalid risk parameters", http.StatusUnprocessableEntity)
			return
		}

		logger.Info("Risk parameters updated", "by", username, "ltv_bps", request.LTVBps, "max_amount", request.MaxAmount)
		w.WriteHeader(http.StatusOK)
	})
}

// PauseHandler — остановка и возобновление авторизаций
func PauseHandler(params *services.Params) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := helpers.GetUsername(r.Context())
		if err != nil {
			logger.Warn("Failed to get username:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		var request models.PauseRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		params.SetPaused(request.Paused)
		logger.Info("Authorization pause updated", "by", username, "paused", request.Paused)
		w.WriteHeader(http.StatusOK)
	})
}
