package api

import (
	"net/http"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/service"
	"github.com/Gaut2812/TECHXAURA-2K26-main/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type setStatusRequest struct {
	Status model.PaymentStatus `json:"status" validate:"required,oneof=verified rejected"`
}

func (h *Handler) ListRegistrations(e echo.Context) error {
	regs, err := h.admin.ListRegistrations(e.Request().Context())
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, regs)
}

func (h *Handler) GetStats(e echo.Context) error {
	stats, err := h.admin.Stats(e.Request().Context())
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, stats)
}

func (h *Handler) SetPaymentStatus(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req setStatusRequest
	if err := decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	id := e.Param("id")

	l.Info("setting payment status", zap.String("registration_id", id), zap.String("status", string(req.Status)))

	reg, err := h.admin.SetPaymentStatus(e.Request().Context(), id, req.Status)
	if err != nil {
		l.Error("failed to set payment status", zap.String("registration_id", id), zap.Any("error", err))
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, reg)
}

func (h *Handler) ExportRegistrations(e echo.Context) error {
	file, err := h.admin.ExportRegistrations(e.Request().Context())
	if err != nil {
		return h.transportError(e, err)
	}
	return h.attachment(e, file)
}

func (h *Handler) ExportTeamMembers(e echo.Context) error {
	file, err := h.admin.ExportTeamMembers(e.Request().Context())
	if err != nil {
		return h.transportError(e, err)
	}
	return h.attachment(e, file)
}

func (h *Handler) PublishSheets(e echo.Context) error {
	if err := h.admin.PublishSheets(e.Request().Context()); err != nil {
		logger.FromContext(e.Request().Context()).Error("failed to publish sheets", zap.Any("error", err))
		return h.transportError(e, err)
	}
	return e.NoContent(http.StatusNoContent)
}

func (h *Handler) attachment(e echo.Context, file *service.ExportFile) error {
	e.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
	return e.Blob(http.StatusOK, file.ContentType, file.Data)
}
