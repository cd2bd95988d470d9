package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/auth"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/cart"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAccounts(users *MockUserRepository) (*AccountService, *auth.Tokens, *cart.Store) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	store := cart.NewStore(100)
	return NewAccountService(tokens, store).WithUserRepo(users), tokens, store
}

func TestAccountService_SignUp(t *testing.T) {
	req := &model.SignUp{
		Email:    " Alice@Example.com ",
		Password: "password123",
		Name:     "Alice",
		Phone:    "9876543210",
		College:  "PSG Tech",
	}

	tests := []struct {
		name          string
		setupMocks    func(*MockUserRepository)
		expectedError ErrorCode
	}{
		{
			name: "success: account created and signed in",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("Create", mock.Anything, mock.MatchedBy(func(u *repository.User) bool {
					return u.Email == "alice@example.com" &&
						u.ID != "" &&
						auth.CheckPassword(u.PasswordHash, "password123") == nil
				})).Return(nil)
			},
		},
		{
			name: "failure: email already registered",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("Create", mock.Anything, mock.Anything).Return(repository.ErrAlreadyExists)
			},
			expectedError: ErrorCodeEmailTaken,
		},
		{
			name: "failure: repository error",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("Create", mock.Anything, mock.Anything).Return(errors.New("db error"))
			},
			expectedError: ErrorCodeUnspecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMocks(users)
			svc, tokens, store := newTestAccounts(users)

			sess, err := svc.SignUp(context.Background(), req)

			if tt.expectedError != "" {
				require.NotNil(t, err)
				assert.Equal(t, tt.expectedError, err.Code)
				assert.Equal(t, 0, store.Len())
			} else {
				require.Nil(t, err)
				assert.Equal(t, "alice@example.com", sess.Profile.Email)

				claims, verr := tokens.Verify(sess.Token)
				require.NoError(t, verr)
				assert.Equal(t, auth.TokenTypeParticipant, claims.Type)
				assert.Equal(t, sess.Profile.ID, claims.UserID())

				cartSession, ok := store.Get(claims.SessionID())
				require.True(t, ok)
				assert.Equal(t, sess.Profile.ID, cartSession.UserID)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAccountService_SignIn(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &repository.User{ID: "u1", Email: "alice@example.com", PasswordHash: hash, Name: "Alice"}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*MockUserRepository)
		expectedError ErrorCode
	}{
		{
			name:     "success: correct password",
			email:    "ALICE@example.com",
			password: "password123",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)
			},
		},
		{
			name:     "failure: wrong password",
			email:    "alice@example.com",
			password: "nope",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)
			},
			expectedError: ErrorCodeUnauthorized,
		},
		{
			name:     "failure: unknown email",
			email:    "bob@example.com",
			password: "password123",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmail", mock.Anything, "bob@example.com").Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrorCodeUnauthorized,
		},
		{
			name:     "failure: repository error",
			email:    "alice@example.com",
			password: "password123",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, errors.New("db error"))
			},
			expectedError: ErrorCodeUnspecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMocks(users)
			svc, _, store := newTestAccounts(users)

			sess, err := svc.SignIn(context.Background(), tt.email, tt.password)

			if tt.expectedError != "" {
				require.NotNil(t, err)
				assert.Equal(t, tt.expectedError, err.Code)
				assert.Nil(t, sess)
			} else {
				require.Nil(t, err)
				assert.NotEmpty(t, sess.Token)
				assert.Equal(t, "u1", sess.Profile.ID)
				assert.Equal(t, 1, store.Len())
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAccountService_SignOut(t *testing.T) {
	hash, _ := auth.HashPassword("password123")
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&repository.User{ID: "u1", Email: "alice@example.com", PasswordHash: hash}, nil)

	svc, tokens, store := newTestAccounts(users)

	sess, err := svc.SignIn(context.Background(), "alice@example.com", "password123")
	require.Nil(t, err)

	claims, verr := tokens.Verify(sess.Token)
	require.NoError(t, verr)

	svc.SignOut(context.Background(), claims.SessionID())

	_, ok := store.Get(claims.SessionID())
	assert.False(t, ok)
}

func TestAccountService_AdminSignIn(t *testing.T) {
	hash, err := auth.HashPassword("admin-pass")
	require.NoError(t, err)

	tests := []struct {
		name          string
		configuredFor string
		configHash    string
		username      string
		password      string
		expectedError ErrorCode
	}{
		{
			name:          "success: configured credentials",
			configuredFor: "techxaura_admin",
			configHash:    hash,
			username:      "techxaura_admin",
			password:      "admin-pass",
		},
		{
			name:          "failure: wrong password",
			configuredFor: "techxaura_admin",
			configHash:    hash,
			username:      "techxaura_admin",
			password:      "admin",
			expectedError: ErrorCodeUnauthorized,
		},
		{
			name:          "failure: wrong username",
			configuredFor: "techxaura_admin",
			configHash:    hash,
			username:      "root",
			password:      "admin-pass",
			expectedError: ErrorCodeUnauthorized,
		},
		{
			name:          "failure: no hash configured",
			configuredFor: "techxaura_admin",
			username:      "techxaura_admin",
			password:      "",
			expectedError: ErrorCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, tokens, _ := newTestAccounts(new(MockUserRepository))
			svc.WithAdminCredentials(tt.configuredFor, tt.configHash)

			sess, err := svc.AdminSignIn(context.Background(), tt.username, tt.password)

			if tt.expectedError != "" {
				require.NotNil(t, err)
				assert.Equal(t, tt.expectedError, err.Code)
				return
			}
			require.Nil(t, err)
			claims, verr := tokens.Verify(sess.Token)
			require.NoError(t, verr)
			assert.Equal(t, auth.TokenTypeAdmin, claims.Type)
			assert.Equal(t, "techxaura_admin", claims.UserID())
		})
	}
}

func TestAccountService_AcceptRules(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*MockUserRepository)
		expectedError ErrorCode
	}{
		{
			name: "success",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("Patch", mock.Anything, mock.MatchedBy(func(p *repository.UserPatch) bool {
					return p.ID == "u1" && p.RulesAccepted != nil && *p.RulesAccepted
				})).Return(&repository.User{ID: "u1", RulesAccepted: true}, nil)
			},
		},
		{
			name: "failure: user not found",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("Patch", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrorCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMocks(users)
			svc, _, _ := newTestAccounts(users)

			profile, err := svc.AcceptRules(context.Background(), "u1")

			if tt.expectedError != "" {
				require.NotNil(t, err)
				assert.Equal(t, tt.expectedError, err.Code)
			} else {
				require.Nil(t, err)
				assert.True(t, profile.RulesAccepted)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAccountService_Profile(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Get", mock.Anything, "u1").Return(&repository.User{ID: "u1", Name: "Alice", College: "PSG Tech"}, nil)
	users.On("Get", mock.Anything, "u2").Return(nil, repository.ErrNotFound)

	svc, _, _ := newTestAccounts(users)

	profile, err := svc.Profile(context.Background(), "u1")
	require.Nil(t, err)
	assert.Equal(t, "PSG Tech", profile.College)

	_, err = svc.Profile(context.Background(), "u2")
	require.NotNil(t, err)
	assert.Equal(t, ErrorCodeNotFound, err.Code)
}
