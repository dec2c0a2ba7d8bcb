package services

import (
	"context"
	"errors"
	"time"

	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/denmor86/cardcredit/internal/storage"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type IdentityService interface {
	RegisterUser(ctx context.Context, user models.UserRequest) error
	AuthenticateUser(ctx context.Context, user models.UserRequest) (bool, error)
	GenerateJWT(username string) (string, error)
	GetTokenAuth() *jwtauth.JWTAuth
}

// Identity - регистрация и аутентификация администраторов сервиса
type Identity struct {
	JWTAuth *jwtauth.JWTAuth
	Storage storage.UsersStorage
}

var (
	ErrUserAlreadyExists = errors.New("user already exists")
)

const (
	TokenSecterAlgo     = "HS256"
	TokenExpirationTime = 24 * time.Hour
)

// Создание сервиса
func NewIdentity(cfg config.Config, users storage.UsersStorage) IdentityService {
	tokenAuth := jwtauth.New(TokenSecterAlgo, []byte(cfg.Server.JWTSecret), nil)
	return &Identity{JWTAuth: tokenAuth, Storage: users}
}

// Регистрация нового администратора.
func (i *Identity) RegisterUser(ctx context.Context, user models.UserRequest) error {
	logger.Info("Register user:", user.Login)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Error generating password hash", err)
		return err
	}

	err = i.Storage.AddUser(ctx, user.Login, string(hashedPassword))
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			logger.Warn("User already exist", user.Login)
			return ErrUserAlreadyExists
		}
		logger.Error("Error registering user", user.Login, err)
		return err
	}
	return nil
}

// Аутентификация администратора
func (i *Identity) AuthenticateUser(ctx context.Context, user models.UserRequest) (bool, error) {
	logger.Info("Authenticate user", user.Login)

	stored, err := i.Storage.GetUser(ctx, user.Login)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("User not found", user.Login)
			return false, nil
		}
		logger.Error("Error getting user", err)
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(user.Password))
	if err != nil {
		logger.Warn("Invalid password", user.Login)
		return false, nil
	}

	logger.Info("User authenticated", user.Login)
	return true, nil
}

// Создание строки JWT токена
func (i *Identity) GenerateJWT(username string) (string, error) {
	expirationTime := time.Now().Add(TokenExpirationTime)

	_, tokenString, err := i.JWTAuth.Encode(map[string]interface{}{
		"username": username,
		"exp":      expirationTime,
	})
	return tokenString, err
}

// Возвращаем указатель на JWTAuth (chi)
func (i *Identity) GetTokenAuth() *jwtauth.JWTAuth {
	return i.JWTAuth
}
