package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/denmor86/cardcredit/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	InsertUser = `INSERT INTO USERS (id, login, password)
						VALUES ($1, $2, $3)
						ON CONFLICT (login) DO NOTHING
						RETURNING login;`
	GetUser = `SELECT id, password, login FROM USERS WHERE login=$1;`
)

type UserDatabase struct {
	DB *Database
}

// Создание хранилища
func NewUsersStorage(db *Database) UsersStorage {
	return &UserDatabase{DB: db}
}

func (s *UserDatabase) GetUser(ctx context.Context, login string) (*models.UserData, error) {
	var (
		userID   string
		password string
		dbLogin  string
	)
	err := s.DB.Pool.QueryRow(ctx, GetUser, login).Scan(&userID, &password, &dbLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &models.UserData{
		UserID:       userID,
		Login:        dbLogin,
		PasswordHash: password,
	}, nil
}

func (s *UserDatabase) AddUser(ctx context.Context, login string, password string) error {
	var prevLogin string
	userID := uuid.New().String()

	err := s.DB.Pool.QueryRow(ctx, InsertUser, userID, login, password).Scan(&prevLogin)

	// Успешное добавление
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAlreadyExists
	}

	// Проверяем именно нарушение уникальности (код 23505)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}

	// Все остальные ошибки
	return fmt.Errorf("failed to add user: %w", err)
}
