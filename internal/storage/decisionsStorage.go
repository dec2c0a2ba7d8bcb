package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	InsertDecision = `INSERT INTO DECISIONS (event_id, user_id, approved, decline_reason, amount, decided_at)
						VALUES ($1, $2, $3, $4, $5, $6)
						ON CONFLICT (event_id) DO NOTHING
						RETURNING event_id;`
	GetDecisionByEvent = `SELECT event_id, user_id, approved, decline_reason, amount, decided_at FROM DECISIONS WHERE event_id=$1;`

	InsertReservation = `INSERT INTO RESERVATIONS (event_id, user_id, amount, status, created_at, expires_at)
							VALUES ($1, $2, $3, $4, $5, $6);`
	ReleaseReservation = `UPDATE RESERVATIONS
							SET status = 'RELEASED', updated_at = NOW()
							WHERE event_id = $1 AND status = 'ACTIVE'
							RETURNING event_id, user_id, amount, created_at, expires_at;`
	SettleReservation = `UPDATE RESERVATIONS
							SET status = 'SETTLED', settled_amount = $2, updated_at = NOW()
							WHERE event_id = $1 AND status = 'ACTIVE'
							RETURNING event_id, user_id, amount, created_at, expires_at;`
	ExpireReservations = `UPDATE RESERVATIONS
							SET status = 'EXPIRED', updated_at = NOW()
							WHERE status = 'ACTIVE' AND expires_at <= $1
							RETURNING event_id, user_id, amount, created_at, expires_at;`
	GetActiveReservations = `SELECT event_id, user_id, amount, created_at, expires_at FROM RESERVATIONS WHERE status = 'ACTIVE';`
)

type DecisionDatabase struct {
	DB *Database
}

// Создание хранилища
func NewDecisionsStorage(db *Database) DecisionsStorage {
	return &DecisionDatabase{DB: db}
}

// AddDecision — сохранение решения без резерва (отказ до проверки лимита).
// Повторная вставка того же event_id возвращает ErrAlreadyExists.
func (s *DecisionDatabase) AddDecision(ctx context.Context, decision models.DecisionData) error {
	var prevEvent string
	err := s.DB.Pool.QueryRow(ctx, InsertDecision,
		decision.EventID,
		decision.UserID,
		decision.Approved,
		decision.DeclineReason,
		decision.Amount,
		decision.DecidedAt,
	).Scan(&prevEvent)

	if err == nil {
		return nil
	}
	// ON CONFLICT DO NOTHING не возвращает строку при дубликате
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAlreadyExists
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}

	return fmt.Errorf("insert decision: %w", err)
}

// AddReservation — сохранение решения и резерва лимита в одной транзакции
func (s *DecisionDatabase) AddReservation(ctx context.Context, decision models.DecisionData, reservation models.ReservationData) error {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Гарантированный откат при ошибке
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("Reservation. Rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	// 1. Сохраняем решение, дубликат event_id означает повторную доставку
	var prevEvent string
	err = tx.QueryRow(ctx, InsertDecision,
		decision.EventID,
		decision.UserID,
		decision.Approved,
		decision.DeclineReason,
		decision.Amount,
		decision.DecidedAt,
	).Scan(&prevEvent)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAlreadyExists
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert decision: %w", err)
	}

	// 2. Сохраняем резерв
	_, err = tx.Exec(ctx, InsertReservation,
		reservation.EventID,
		reservation.UserID,
		reservation.Amount,
		models.ReservationStatusActive,
		reservation.CreatedAt,
		reservation.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

func (s *DecisionDatabase) GetDecision(ctx context.Context, eventID string) (*models.DecisionData, error) {
	var (
		event         string
		userID        string
		approved      bool
		declineReason string
		amount        int64
		decidedAt     time.Time
	)
	err := s.DB.Pool.QueryRow(ctx, GetDecisionByEvent, eventID).Scan(
		&event,
		&userID,
		&approved,
		&declineReason,
		&amount,
		&decidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDecisionNotFound
		}
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}

	return &models.DecisionData{
		EventID:       event,
		UserID:        userID,
		Approved:      approved,
		DeclineReason: declineReason,
		Amount:        amount,
		DecidedAt:     decidedAt,
	}, nil
}

// ReleaseReservation — снятие активного резерва.
// Отсутствие активного резерва не является ошибкой, возвращается nil.
func (s *DecisionDatabase) ReleaseReservation(ctx context.Context, eventID string) (*models.ReservationData, error) {
	return s.closeReservation(ctx, ReleaseReservation, eventID, models.ReservationStatusReleased, 0)
}

// SettleReservation — перевод резерва в рассчитанный долг.
// Частичное списание меньше резерва освобождает остаток.
func (s *DecisionDatabase) SettleReservation(ctx context.Context, eventID string, finalAmount int64) (*models.ReservationData, error) {
	return s.closeReservation(ctx, SettleReservation, eventID, models.ReservationStatusSettled, finalAmount)
}

func (s *DecisionDatabase) closeReservation(ctx context.Context, query string, eventID string, status string, finalAmount int64) (*models.ReservationData, error) {
	var (
		event     string
		userID    string
		amount    int64
		createdAt time.Time
		expiresAt time.Time
	)
	args := []interface{}{eventID}
	if status == models.ReservationStatusSettled {
		args = append(args, finalAmount)
	}
	err := s.DB.Pool.QueryRow(ctx, query, args...).Scan(
		&event,
		&userID,
		&amount,
		&createdAt,
		&expiresAt,
	)
	if err != nil {
		// резерв уже закрыт или не существовал
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to close reservation: %w", err)
	}

	return &models.ReservationData{
		EventID:   event,
		UserID:    userID,
		Amount:    amount,
		Status:    status,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

// ExpireReservations — снятие резервов с истёкшим сроком удержания
func (s *DecisionDatabase) ExpireReservations(ctx context.Context, now time.Time) ([]models.ReservationData, error) {
	return s.scanReservations(ctx, ExpireReservations, models.ReservationStatusExpired, now)
}

// GetActiveReservations — все активные резервы, используется при восстановлении после рестарта
func (s *DecisionDatabase) GetActiveReservations(ctx context.Context) ([]models.ReservationData, error) {
	return s.scanReservations(ctx, GetActiveReservations, models.ReservationStatusActive)
}

func (s *DecisionDatabase) scanReservations(ctx context.Context, query string, status string, args ...interface{}) ([]models.ReservationData, error) {
	var reservations []models.ReservationData
	rows, err := s.DB.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}
	for rows.Next() {
		var (
			event     string
			userID    string
			amount    int64
			createdAt time.Time
			expiresAt time.Time
		)
		err := rows.Scan(
			&event,
			&userID,
			&amount,
			&createdAt,
			&expiresAt,
		)
		if err != nil {
			return reservations, fmt.Errorf("failed scan reservation data: %w", err)
		}
		reservations = append(reservations, models.ReservationData{
			EventID:   event,
			UserID:    userID,
			Amount:    amount,
			Status:    status,
			CreatedAt: createdAt,
			ExpiresAt: expiresAt,
		})
	}
	return reservations, err
}
