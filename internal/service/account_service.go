package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/auth"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/cart"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/repository"
	"github.com/Gaut2812/TECHXAURA-2K26-main/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService struct {
	tokens   *auth.Tokens
	sessions *cart.Store

	users repository.UserRepository

	adminUsername     string
	adminPasswordHash string

	now func() time.Time
}

func NewAccountService(tokens *auth.Tokens, sessions *cart.Store) *AccountService {
	return &AccountService{tokens: tokens, sessions: sessions, now: time.Now}
}

// SignUp creates the participant account and signs it in.
func (a *AccountService) SignUp(ctx context.Context, req *model.SignUp) (*model.Session, *Error) {
	l := logger.FromContext(ctx)

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to create account")
	}

	user := &repository.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		College:      strings.TrimSpace(req.College),
		Department:   strings.TrimSpace(req.Department),
		CreatedAt:    a.now(),
	}

	err = a.users.Create(ctx, user)
	switch {
	case errors.Is(err, repository.ErrAlreadyExists):
		return nil, NewError(ErrorCodeEmailTaken, "an account with this email already exists")
	case err != nil:
		l.Error("failed to create user", zap.String("email", user.Email), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to create account")
	}

	return a.openSession(ctx, user)
}

func (a *AccountService) SignIn(ctx context.Context, email, password string) (*model.Session, *Error) {
	l := logger.FromContext(ctx)

	user, err := a.users.GetByEmail(ctx, normalizeEmail(email))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, NewError(ErrorCodeUnauthorized, "invalid email or password")
	case err != nil:
		l.Error("failed to get user", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to sign in")
	}

	err = auth.CheckPassword(user.PasswordHash, password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return nil, NewError(ErrorCodeUnauthorized, "invalid email or password")
	case err != nil:
		l.Error("failed to check password", zap.String("user_id", user.ID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to sign in")
	}

	return a.openSession(ctx, user)
}

// SignOut tears the checkout session down; its cart is discarded.
func (a *AccountService) SignOut(ctx context.Context, sessionID string) {
	a.sessions.Close(sessionID)
	logger.FromContext(ctx).Info("session closed", zap.String("session_id", sessionID))
}

func (a *AccountService) AdminSignIn(ctx context.Context, username, password string) (*model.Session, *Error) {
	if a.adminUsername == "" || username != a.adminUsername {
		return nil, NewError(ErrorCodeUnauthorized, "invalid admin credentials")
	}

	err := auth.CheckPassword(a.adminPasswordHash, password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return nil, NewError(ErrorCodeUnauthorized, "invalid admin credentials")
	case err != nil:
		logger.FromContext(ctx).Error("failed to check admin password", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to sign in")
	}

	token, err := a.tokens.Generate(auth.TokenTypeAdmin, username, uuid.NewString())
	if err != nil {
		logger.FromContext(ctx).Error("failed to generate admin token", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to sign in")
	}

	return &model.Session{Token: token}, nil
}

func (a *AccountService) Profile(ctx context.Context, userID string) (*model.UserProfile, *Error) {
	user, err := a.users.Get(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, NewError(ErrorCodeNotFound, "user not found")
	case err != nil:
		logger.FromContext(ctx).Error("failed to get user", zap.String("user_id", userID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get profile")
	}
	return toProfile(user), nil
}

func (a *AccountService) AcceptRules(ctx context.Context, userID string) (*model.UserProfile, *Error) {
	accepted := true
	user, err := a.users.Patch(ctx, &repository.UserPatch{
		ID:            userID,
		RulesAccepted: &accepted,
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, NewError(ErrorCodeNotFound, "user not found")
	case err != nil:
		logger.FromContext(ctx).Error("failed to accept rules", zap.String("user_id", userID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to update profile")
	}
	return toProfile(user), nil
}

// openSession issues a participant token whose id keys a fresh checkout session.
func (a *AccountService) openSession(ctx context.Context, user *repository.User) (*model.Session, *Error) {
	sessionID := uuid.NewString()

	token, err := a.tokens.Generate(auth.TokenTypeParticipant, user.ID, sessionID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to generate token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to sign in")
	}

	a.sessions.Open(sessionID, user.ID)

	logger.FromContext(ctx).Info("session opened",
		zap.String("user_id", user.ID),
		zap.String("session_id", sessionID))

	return &model.Session{Token: token, Profile: toProfile(user)}, nil
}

func (a *AccountService) WithUserRepo(r repository.UserRepository) *AccountService {
	a.users = r
	return a
}

func (a *AccountService) WithAdminCredentials(username, passwordHash string) *AccountService {
	a.adminUsername = username
	a.adminPasswordHash = passwordHash
	return a
}

func toProfile(u *repository.User) *model.UserProfile {
	return &model.UserProfile{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Phone:         u.Phone,
		College:       u.College,
		Department:    u.Department,
		RulesAccepted: u.RulesAccepted,
		CreatedAt:     u.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
