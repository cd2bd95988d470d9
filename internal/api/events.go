package api

import (
	"net/http"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/service"
	"github.com/labstack/echo/v4"
)

// ListEvents filters the catalog by the optional category and q query parameters.
func (h *Handler) ListEvents(e echo.Context) error {
	events := h.catalog.Find(e.QueryParam("category"), e.QueryParam("q"))
	return e.JSON(http.StatusOK, events)
}

func (h *Handler) GetEvent(e echo.Context) error {
	event, ok := h.catalog.Get(e.Param("id"))
	if !ok {
		return h.transportError(e, service.NewError(service.ErrorCodeEventNotFound, "event not found"))
	}
	return e.JSON(http.StatusOK, event)
}
