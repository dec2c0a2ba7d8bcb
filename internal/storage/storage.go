package storage

import (
	"context"
	"errors"
	"time"

	"github.com/denmor86/cardcredit/internal/models"
)

type UsersStorage interface {
	AddUser(ctx context.Context, login string, password string) error
	GetUser(ctx context.Context, login string) (*models.UserData, error)
}

type DecisionsStorage interface {
	AddDecision(ctx context.Context, decision models.DecisionData) error
	AddReservation(ctx context.Context, decision models.DecisionData, reservation models.ReservationData) error
	GetDecision(ctx context.Context, eventID string) (*models.DecisionData, error)
	ReleaseReservation(ctx context.Context, eventID string) (*models.ReservationData, error)
	SettleReservation(ctx context.Context, eventID string, finalAmount int64) (*models.ReservationData, error)
	ExpireReservations(ctx context.Context, now time.Time) ([]models.ReservationData, error)
	GetActiveReservations(ctx context.Context) ([]models.ReservationData, error)
}

type SettlementsStorage interface {
	AddSettlement(ctx context.Context, settlement models.SettlementData) error
	ClaimSettlementsForProcessing(ctx context.Context, count int) ([]models.SettlementData, error)
	MarkSettlementDone(ctx context.Context, eventID string) error
}

type Storage struct {
	Users       UsersStorage
	Decisions   DecisionsStorage
	Settlements SettlementsStorage
}

// Создание хранилища
func NewStorage(db *Database) Storage {
	return Storage{Users: NewUsersStorage(db), Decisions: NewDecisionsStorage(db), Settlements: NewSettlementsStorage(db)}
}

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDecisionNotFound = errors.New("decision not found")

	ErrAlreadyExists = errors.New("already exists")
)
