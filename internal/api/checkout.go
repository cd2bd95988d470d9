package api

import (
	"net/http"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/cart"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/service"
	"github.com/Gaut2812/TECHXAURA-2K26-main/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type addToCartRequest struct {
	EventID string `json:"event_id" validate:"required"`
}

type setTeamRequest struct {
	TeamMembers []model.TeamMember `json:"team_members" validate:"dive"`
}

// session resolves the checkout session of the authenticated participant.
func (h *Handler) session(e echo.Context) (*cart.Session, *service.Error) {
	claims := claimsFrom(e)
	return h.checkout.Session(claims.SessionID(), claims.UserID())
}

func (h *Handler) GetCart(e echo.Context) error {
	sess, err := h.session(e)
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, h.checkout.Cart(sess))
}

func (h *Handler) AddToCart(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	sess, err := h.session(e)
	if err != nil {
		return h.transportError(e, err)
	}

	var req addToCartRequest
	if err = decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	view, err := h.checkout.AddToCart(e.Request().Context(), sess, req.EventID)
	if err != nil {
		l.Warn("failed to add to cart", zap.String("event_id", req.EventID), zap.Any("error", err))
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, view)
}

func (h *Handler) RemoveFromCart(e echo.Context) error {
	sess, err := h.session(e)
	if err != nil {
		return h.transportError(e, err)
	}

	view, err := h.checkout.RemoveFromCart(e.Request().Context(), sess, e.Param("event_id"))
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, view)
}

func (h *Handler) SetTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	sess, err := h.session(e)
	if err != nil {
		return h.transportError(e, err)
	}

	var req setTeamRequest
	if err = decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	eventID := e.Param("event_id")

	view, err := h.checkout.SetTeam(e.Request().Context(), sess, eventID, req.TeamMembers)
	if err != nil {
		l.Warn("failed to set team", zap.String("event_id", eventID), zap.Any("error", err))
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, view)
}

func (h *Handler) GetConflicts(e echo.Context) error {
	sess, err := h.session(e)
	if err != nil {
		return h.transportError(e, err)
	}

	conflicts, err := h.checkout.Conflicts(sess, e.Param("event_id"))
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, conflicts)
}

func (h *Handler) ResetCart(e echo.Context) error {
	sess, err := h.session(e)
	if err != nil {
		return h.transportError(e, err)
	}
	view, err := h.checkout.ResetCart(e.Request().Context(), sess)
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, view)
}

func (h *Handler) ProceedToPayment(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	sess, err := h.session(e)
	if err != nil {
		return h.transportError(e, err)
	}

	view, err := h.checkout.ProceedToPayment(e.Request().Context(), sess)
	if err != nil {
		l.Warn("cannot proceed to payment", zap.String("session_id", sess.ID), zap.Any("error", err))
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, view)
}

func (h *Handler) BackToReview(e echo.Context) error {
	sess, err := h.session(e)
	if err != nil {
		return h.transportError(e, err)
	}

	view, err := h.checkout.BackToReview(sess)
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, view)
}

// UploadScreenshot expects a multipart form with the image in the "file" field.
func (h *Handler) UploadScreenshot(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	sess, serr := h.session(e)
	if serr != nil {
		return h.transportError(e, serr)
	}

	fh, err := e.FormFile("file")
	if err != nil {
		l.Warn("missing upload", zap.Error(err))
		return h.transportError(e, service.NewError(service.ErrorCodeInvalidFile, "file field is required"))
	}

	f, err := fh.Open()
	if err != nil {
		l.Error("failed to open upload", zap.Error(err))
		return h.transportError(e, service.NewError(service.ErrorCodeInvalidFile, "failed to read file"))
	}
	defer f.Close()

	url, serr := h.checkout.UploadPaymentProof(e.Request().Context(), sess, fh.Filename, f)
	if serr != nil {
		l.Warn("failed to upload screenshot", zap.String("session_id", sess.ID), zap.Any("error", serr))
		return h.transportError(e, serr)
	}

	return e.JSON(http.StatusOK, map[string]string{"payment_screenshot": url})
}

func (h *Handler) Submit(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	sess, err := h.session(e)
	if err != nil {
		return h.transportError(e, err)
	}

	reg, err := h.checkout.Submit(e.Request().Context(), sess)
	if err != nil {
		l.Warn("registration not submitted", zap.String("session_id", sess.ID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, reg)
}
