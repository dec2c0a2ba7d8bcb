package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/denmor86/cardcredit/internal/config"
	"github.com/denmor86/cardcredit/internal/logger"
	"github.com/denmor86/cardcredit/internal/models"
	"github.com/denmor86/cardcredit/internal/storage"
	"github.com/denmor86/cardcredit/internal/storage/mocks"
	"golang.org/x/crypto/bcrypt"

	"go.uber.org/mock/gomock"
)

func TestNewIdentityService(t *testing.T) {
	t.Run("Identity_CreatesService", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockUsers := mocks.NewMockUsersStorage(ctrl)

		config := config.DefaultConfig()
		identity := NewIdentity(config, mockUsers)
		baseService, ok := identity.(*Identity)
		if !ok {
			t.Fatalf("Expected *Identity, got: '%T'", identity)
		}
		if baseService == nil || baseService.JWTAuth == nil {
			t.Errorf("Expected Identity to be initialized with JWTAuth")
		}
		if baseService.Storage != mockUsers {
			t.Errorf("Expected Identity to be initialized with provided storage")
		}
	})
}

func TestRegisterUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockUsers := mocks.NewMockUsersStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	testCases := []struct {
		name          string
		setupMocks    func()
		expectedError error
		user          models.UserRequest
	}{
		{
			name: "Register User: Success #1",
			setupMocks: func() {
				mockUsers.EXPECT().AddUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedError: nil,
			user:          models.UserRequest{Login: "mda", Password: "test_pass"},
		},
		{
			name: "Register User: ErrUserAlreadyExists #2",
			setupMocks: func() {
				mockUsers.EXPECT().AddUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)
			},
			expectedError: ErrUserAlreadyExists,
			user:          models.UserRequest{Login: "mda", Password: "test_pass"},
		},
		{
			name: "Register User: Undefined error #3",
			setupMocks: func() {
				mockUsers.EXPECT().AddUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("failed to add user"))
			},
			expectedError: errors.New("failed to add user"),
			user:          models.UserRequest{Login: "mda", Password: "test_pass"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			identity := NewIdentity(config, mockUsers)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			err := identity.RegisterUser(ctx, tc.user)

			if err != nil && tc.expectedError == nil {
				t.Errorf("Expected no error, got: '%v'", err)
			} else if err == nil && tc.expectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && err.Error() != tc.expectedError.Error() {
				t.Errorf("Expected error: '%v', got: '%v'", tc.expectedError, err)
			}
		})
	}
}

func TestAuthenticateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockUsers := mocks.NewMockUsersStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}
	passwordHash, _ := bcrypt.GenerateFromPassword([]byte("test_pass"), bcrypt.DefaultCost)

	testCases := []struct {
		name          string
		mockReturn    func(ctx context.Context, login string) (*models.UserData, error)
		user          models.UserRequest
		expectedAuth  bool
		expectedError error
	}{
		{
			name: "AuthenticateUser Success #1",
			mockReturn: func(ctx context.Context, login string) (*models.UserData, error) {
				return &models.UserData{UserID: "1", Login: "mda", PasswordHash: string(passwordHash)}, nil
			},
			user:          models.UserRequest{Login: "mda", Password: "test_pass"},
			expectedAuth:  true,
			expectedError: nil,
		},
		{
			name: "AuthenticateUser UserNotFound #2",
			mockReturn: func(ctx context.Context, login string) (*models.UserData, error) {
				return nil, storage.ErrUserNotFound
			},
			user:          models.UserRequest{Login: "mda", Password: "test_pass"},
			expectedAuth:  false,
			expectedError: nil,
		},
		{
			name: "AuthenticateUser InvalidPassword #3",
			mockReturn: func(ctx context.Context, login string) (*models.UserData, error) {
				return &models.UserData{UserID: "1", Login: "mda", PasswordHash: string("test_pass")}, nil
			},
			user:          models.UserRequest{Login: "mda", Password: "test_pass"},
			expectedAuth:  false,
			expectedError: nil,
		},
		{
			name: "AuthenticateUser StorageError #4",
			mockReturn: func(ctx context.Context, login string) (*models.UserData, error) {
				return nil, errors.New("connection lost")
			},
			user:          models.UserRequest{Login: "mda", Password: "test_pass"},
			expectedAuth:  false,
			expectedError: errors.New("connection lost"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockUsers.EXPECT().GetUser(gomock.Any(), gomock.Any()).DoAndReturn(tc.mockReturn)

			identity := NewIdentity(config, mockUsers)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			authenticated, err := identity.AuthenticateUser(ctx, tc.user)

			if authenticated != tc.expectedAuth {
				t.Errorf("Expected authenticated %v, got %v", tc.expectedAuth, authenticated)
			}

			if err != nil && tc.expectedError == nil {
				t.Errorf("Expected no error, got: '%v'", err)
			} else if err == nil && tc.expectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && err.Error() != tc.expectedError.Error() {
				t.Errorf("Expected error: '%v', got: '%v'", tc.expectedError, err)
			}
		})
	}
}
