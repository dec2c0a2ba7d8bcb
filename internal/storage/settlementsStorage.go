package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/denmor86/cardcredit/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	InsertSettlement = `INSERT INTO SETTLEMENTS (event_id, auth_event_id, user_id, kind, amount, status, retry_count, created_at, updated_at)
							VALUES ($1, $2, $3, $4, $5, 'NEW', 0, NOW(), NOW())
							ON CONFLICT (event_id) DO NOTHING
							RETURNING event_id;`
	ClaimSettlementsForProcessing = `UPDATE SETTLEMENTS
										SET status = 'PROCESSING',
										    retry_count = retry_count + 1,
										    updated_at = NOW()
										WHERE event_id IN (
										    SELECT event_id FROM SETTLEMENTS
										    WHERE status = 'NEW' OR (status = 'PROCESSING' AND retry_count < 3)
										    ORDER BY created_at
										    LIMIT $1
										    FOR UPDATE SKIP LOCKED
										)
										RETURNING event_id, auth_event_id, user_id, kind, amount, retry_count;`
	MarkSettlementDone = `UPDATE SETTLEMENTS
							SET status = 'DONE', updated_at = NOW()
							WHERE event_id = $1;`
)

type SettlementDatabase struct {
	DB *Database
}

// Создание хранилища
func NewSettlementsStorage(db *Database) SettlementsStorage {
	return &SettlementDatabase{DB: db}
}

// AddSettlement — постановка события расчёта в очередь обработки.
// Повторная доставка того же event_id не создаёт дубликат.
func (s *SettlementDatabase) AddSettlement(ctx context.Context, settlement models.SettlementData) error {
	var prevEvent string
	err := s.DB.Pool.QueryRow(ctx, InsertSettlement,
		settlement.EventID,
		settlement.AuthEventID,
		settlement.UserID,
		settlement.Kind,
		settlement.Amount,
	).Scan(&prevEvent)

	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAlreadyExists
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}

	return fmt.Errorf("failed to add settlement: %w", err)
}

func (s *SettlementDatabase) ClaimSettlementsForProcessing(ctx context.Context, count int) ([]models.SettlementData, error) {
	var settlements []models.SettlementData
	rows, err := s.DB.Pool.Query(ctx, ClaimSettlementsForProcessing, count)
	if err != nil {
		return nil, fmt.Errorf("failed to get processing settlements: %w", err)
	}
	for rows.Next() {
		var (
			eventID     string
			authEventID string
			userID      string
			kind        string
			amount      int64
			retryCount  int
		)
		err := rows.Scan(
			&eventID,
			&authEventID,
			&userID,
			&kind,
			&amount,
			&retryCount,
		)
		if err != nil {
			return settlements, fmt.Errorf("failed scan settlement data: %w", err)
		}
		settlements = append(settlements, models.SettlementData{
			EventID:     eventID,
			AuthEventID: authEventID,
			UserID:      userID,
			Kind:        kind,
			Amount:      amount,
			RetryCount:  retryCount,
		})
	}
	return settlements, err
}

func (s *SettlementDatabase) MarkSettlementDone(ctx context.Context, eventID string) error {
	if _, err := s.DB.Pool.Exec(ctx, MarkSettlementDone, eventID); err != nil {
		return fmt.Errorf("failed to mark settlement done: %w", err)
	}
	return nil
}
