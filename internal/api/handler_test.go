package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/auth"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/cart"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/catalog"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/repository"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	echo   *echo.Echo
	tokens *auth.Tokens
	store  *cart.Store
	users  *service.MockUserRepository
	regs   *service.MockRegistrationRepository
}

func newTestServer() *testServer {
	tokens := auth.NewTokens("test-secret", time.Hour)
	store := cart.NewStore(100)
	events := catalog.Default()
	tx := new(service.MockTransactor)

	users := new(service.MockUserRepository)
	regs := new(service.MockRegistrationRepository)

	accounts := service.NewAccountService(tokens, store).WithUserRepo(users)
	checkout := service.NewCheckoutService(tx, events, store).WithUserRepo(users).WithRegistrationRepo(regs)
	admin := service.NewAdminService(tx, 100).WithRegistrationRepo(regs)

	e := echo.New()
	NewHandler(zap.NewNop(), tokens).
		WithCatalog(events).
		WithAccountService(accounts).
		WithCheckoutService(checkout).
		WithAdminService(admin).
		RegisterRoutes(e)

	return &testServer{echo: e, tokens: tokens, store: store, users: users, regs: regs}
}

func (s *testServer) participant(t *testing.T) string {
	t.Helper()
	s.store.Open("s1", "u1")
	token, err := s.tokens.Generate(auth.TokenTypeParticipant, "u1", "s1")
	require.NoError(t, err)
	return token
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	token, err := s.tokens.Generate(auth.TokenTypeAdmin, "techxaura_admin", "a1")
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) service.ErrorCode {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer()
	participant := s.participant(t)
	admin := s.adminToken(t)
	expired, _ := auth.NewTokens("test-secret", -time.Hour).Generate(auth.TokenTypeParticipant, "u1", "s1")
	foreign, _ := auth.NewTokens("other-secret", time.Hour).Generate(auth.TokenTypeParticipant, "u1", "s1")

	tests := []struct {
		name           string
		target         string
		token          string
		expectedStatus int
	}{
		{name: "success: participant reads cart", target: "/cart", token: participant, expectedStatus: http.StatusOK},
		{name: "failure: no token", target: "/cart", expectedStatus: http.StatusUnauthorized},
		{name: "failure: expired token", target: "/cart", token: expired, expectedStatus: http.StatusUnauthorized},
		{name: "failure: foreign signature", target: "/cart", token: foreign, expectedStatus: http.StatusUnauthorized},
		{name: "failure: admin token on participant route", target: "/cart", token: admin, expectedStatus: http.StatusForbidden},
		{name: "failure: participant token on admin route", target: "/admin/stats", token: participant, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodGet, tt.target, tt.token, "")
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestHandler_ClosedSession(t *testing.T) {
	s := newTestServer()
	token := s.participant(t)

	rec := s.do(http.MethodPost, "/auth/logout", token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/cart", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.ErrorCodeUnauthorized, decodeError(t, rec))
}

func TestHandler_Events(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodGet, "/events?category=Breakout", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var events []*model.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Len(t, events, 2)

	rec = s.do(http.MethodGet, "/events/esports", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/events/hackathon", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.ErrorCodeEventNotFound, decodeError(t, rec))
}

func TestHandler_CartFlow(t *testing.T) {
	s := newTestServer()
	token := s.participant(t)

	steps := []struct {
		name           string
		method         string
		target         string
		body           string
		expectedStatus int
		expectedCode   service.ErrorCode
	}{
		{
			name:           "add first event",
			method:         http.MethodPost,
			target:         "/cart/items",
			body:           `{"event_id":"mindsparkx"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "add event missing id",
			method:         http.MethodPost,
			target:         "/cart/items",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrorCodeInvalidBody,
		},
		{
			name:           "add same slot event",
			method:         http.MethodPost,
			target:         "/cart/items",
			body:           `{"event_id":"paperpresentation"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "team member without name",
			method:         http.MethodPut,
			target:         "/cart/items/mindsparkx/team",
			body:           `{"team_members":[{"email":"a@b.co"}]}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrorCodeInvalidBody,
		},
		{
			name:           "team too large",
			method:         http.MethodPut,
			target:         "/cart/items/paperpresentation/team",
			body:           `{"team_members":[{"name":"A"},{"name":"B"},{"name":"C"}]}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrorCodeTeamSize,
		},
		{
			name:           "set first roster",
			method:         http.MethodPut,
			target:         "/cart/items/mindsparkx/team",
			body:           `{"team_members":[{"name":"Alice"},{"name":"bob "}]}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "set second roster",
			method:         http.MethodPut,
			target:         "/cart/items/paperpresentation/team",
			body:           `{"team_members":[{"name":"BOB"}]}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "submit on review step",
			method:         http.MethodPost,
			target:         "/checkout/submit",
			expectedStatus: http.StatusConflict,
			expectedCode:   service.ErrorCodeInvalidStep,
		},
		{
			name:           "proceed to payment",
			method:         http.MethodPost,
			target:         "/checkout/payment",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "submit with participant clash",
			method:         http.MethodPost,
			target:         "/checkout/submit",
			expectedStatus: http.StatusConflict,
			expectedCode:   service.ErrorCodeParticipantClash,
		},
		{
			name:           "back to review",
			method:         http.MethodPost,
			target:         "/checkout/review",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "remove clashing event",
			method:         http.MethodDelete,
			target:         "/cart/items/paperpresentation",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "proceed again",
			method:         http.MethodPost,
			target:         "/checkout/payment",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "submit without screenshot",
			method:         http.MethodPost,
			target:         "/checkout/submit",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrorCodePaymentProof,
		},
		{
			name:           "reset cart",
			method:         http.MethodDelete,
			target:         "/cart",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "proceed with empty cart",
			method:         http.MethodPost,
			target:         "/checkout/payment",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrorCodeCartEmpty,
		},
	}

	for _, step := range steps {
		rec := s.do(step.method, step.target, token, step.body)
		require.Equal(t, step.expectedStatus, rec.Code, "%s: %s", step.name, rec.Body.String())
		if step.expectedCode != "" {
			assert.Equal(t, step.expectedCode, decodeError(t, rec), step.name)
		}
	}
}

func TestHandler_GetCart(t *testing.T) {
	s := newTestServer()
	token := s.participant(t)

	s.do(http.MethodPost, "/cart/items", token, `{"event_id":"esports"}`)
	s.do(http.MethodPost, "/cart/items", token, `{"event_id":"boxcricket"}`)

	rec := s.do(http.MethodGet, "/cart", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view model.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Items, 2)
	assert.Equal(t, 100, view.Total)
	assert.Equal(t, "review", view.Step)
	assert.Equal(t, []string{"boxcricket"}, view.Items[0].Conflicts)

	rec = s.do(http.MethodGet, "/cart/conflicts/mindsparkx", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_SetPaymentStatus(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*service.MockRegistrationRepository)
		expectedStatus int
		expectedCode   service.ErrorCode
	}{
		{
			name: "success: verify",
			body: `{"status":"verified"}`,
			setupMocks: func(rr *service.MockRegistrationRepository) {
				rr.On("Get", mock.Anything, "r1").
					Return(&repository.Registration{ID: "r1", PaymentStatus: model.PaymentStatusPending}, nil)
				rr.On("UpdateStatus", mock.Anything, "r1", model.PaymentStatusVerified).
					Return(&repository.Registration{ID: "r1", PaymentStatus: model.PaymentStatusVerified}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "failure: unknown status",
			body:           `{"status":"refunded"}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrorCodeInvalidBody,
		},
		{
			name: "failure: already reviewed",
			body: `{"status":"rejected"}`,
			setupMocks: func(rr *service.MockRegistrationRepository) {
				rr.On("Get", mock.Anything, "r1").
					Return(&repository.Registration{ID: "r1", PaymentStatus: model.PaymentStatusVerified}, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   service.ErrorCodeInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			if tt.setupMocks != nil {
				tt.setupMocks(s.regs)
			}

			rec := s.do(http.MethodPost, "/admin/registrations/r1/status", s.adminToken(t), tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rec))
			}
			s.regs.AssertExpectations(t)
		})
	}
}

func TestHandler_ExportRegistrations(t *testing.T) {
	s := newTestServer()
	s.regs.On("List", mock.Anything).Return([]*repository.Registration{
		{ID: "r1", UserName: "Alice", PaymentStatus: model.PaymentStatusPending, CreatedAt: time.Now()},
	}, nil)

	rec := s.do(http.MethodGet, "/admin/export/registrations", s.adminToken(t), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "TECHXAURA_Registrations_")
	assert.NotZero(t, rec.Body.Len())
}
