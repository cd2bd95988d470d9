package api

import (
	"net/http"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/Gaut2812/TECHXAURA-2K26-main/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type adminCredentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) SignUp(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req model.SignUp
	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("signing up", zap.String("email", req.Email))

	sess, err := h.accounts.SignUp(e.Request().Context(), &req)
	if err != nil {
		l.Error("failed to sign up", zap.String("email", req.Email), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, sess)
}

func (h *Handler) SignIn(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req credentials
	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	sess, err := h.accounts.SignIn(e.Request().Context(), req.Email, req.Password)
	if err != nil {
		l.Warn("failed to sign in", zap.String("email", req.Email), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, sess)
}

func (h *Handler) SignOut(e echo.Context) error {
	h.accounts.SignOut(e.Request().Context(), claimsFrom(e).SessionID())
	return e.NoContent(http.StatusNoContent)
}

func (h *Handler) AdminSignIn(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req adminCredentials
	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	sess, err := h.accounts.AdminSignIn(e.Request().Context(), req.Username, req.Password)
	if err != nil {
		l.Warn("failed admin sign in", zap.String("username", req.Username), zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("admin signed in", zap.String("username", req.Username))
	return e.JSON(http.StatusOK, sess)
}

func (h *Handler) GetProfile(e echo.Context) error {
	profile, err := h.accounts.Profile(e.Request().Context(), claimsFrom(e).UserID())
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, profile)
}

func (h *Handler) AcceptRules(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	userID := claimsFrom(e).UserID()

	profile, err := h.accounts.AcceptRules(e.Request().Context(), userID)
	if err != nil {
		l.Error("failed to accept rules", zap.String("user_id", userID), zap.Any("error", err))
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, profile)
}
