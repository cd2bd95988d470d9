package api

import (
	"net/http"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/auth"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/catalog"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// multipart request cap for the screenshot route
const uploadBodyLimit = "8M"

type Handler struct {
	accounts *service.AccountService
	checkout *service.CheckoutService
	admin    *service.AdminService
	catalog  *catalog.Catalog
	tokens   *auth.Tokens

	healthChecker HealthChecker

	logger *zap.Logger
}

type errorResponse struct {
	Error *service.Error `json:"error"`
}

func NewHandler(logger *zap.Logger, tokens *auth.Tokens) *Handler {
	return &Handler{
		logger: logger,
		tokens: tokens,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithAccountService(s *service.AccountService) *Handler {
	h.accounts = s
	return h
}

func (h *Handler) WithCheckoutService(s *service.CheckoutService) *Handler {
	h.checkout = s
	return h
}

func (h *Handler) WithAdminService(s *service.AdminService) *Handler {
	h.admin = s
	return h
}

func (h *Handler) WithCatalog(c *catalog.Catalog) *Handler {
	h.catalog = c
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestID())
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if h.healthChecker != nil {
		e.GET("/health", h.healthChecker.HealthCheck())
	}

	e.POST("/auth/signup", h.SignUp)
	e.POST("/auth/login", h.SignIn)
	e.POST("/admin/login", h.AdminSignIn)

	e.GET("/events", h.ListEvents)
	e.GET("/events/:id", h.GetEvent)

	participant := e.Group("", AuthMiddleware(h.tokens, auth.TokenTypeParticipant))

	participant.POST("/auth/logout", h.SignOut)
	participant.GET("/profile", h.GetProfile)
	participant.POST("/profile/rules", h.AcceptRules)

	participant.GET("/cart", h.GetCart)
	participant.POST("/cart/items", h.AddToCart)
	participant.DELETE("/cart/items/:event_id", h.RemoveFromCart)
	participant.PUT("/cart/items/:event_id/team", h.SetTeam)
	participant.GET("/cart/conflicts/:event_id", h.GetConflicts)
	participant.DELETE("/cart", h.ResetCart)

	participant.POST("/checkout/payment", h.ProceedToPayment)
	participant.POST("/checkout/review", h.BackToReview)
	participant.POST("/checkout/screenshot", h.UploadScreenshot, middleware.BodyLimit(uploadBodyLimit))
	participant.POST("/checkout/submit", h.Submit)

	admin := e.Group("/admin", AuthMiddleware(h.tokens, auth.TokenTypeAdmin))

	admin.GET("/registrations", h.ListRegistrations)
	admin.GET("/stats", h.GetStats)
	admin.POST("/registrations/:id/status", h.SetPaymentStatus)
	admin.GET("/export/registrations", h.ExportRegistrations)
	admin.GET("/export/team-members", h.ExportTeamMembers)
	admin.POST("/export/sheets", h.PublishSheets)
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	response := errorResponse{Error: err}

	switch err.Code {
	case service.ErrorCodeNotFound, service.ErrorCodeEventNotFound, service.ErrorCodeEventNotInCart:
		return e.JSON(http.StatusNotFound, response)
	case service.ErrorCodeInvalidBody, service.ErrorCodeInvalidFile, service.ErrorCodeTeamSize,
		service.ErrorCodePaymentProof, service.ErrorCodeCartEmpty:
		return e.JSON(http.StatusBadRequest, response)
	case service.ErrorCodeUnauthorized:
		return e.JSON(http.StatusUnauthorized, response)
	case service.ErrorCodeEmailTaken, service.ErrorCodeParticipantClash, service.ErrorCodeInvalidStep,
		service.ErrorCodeSubmissionInFlight, service.ErrorCodeInvalidTransition:
		return e.JSON(http.StatusConflict, response)
	default:
		return e.JSON(http.StatusInternalServerError, response)
	}
}
