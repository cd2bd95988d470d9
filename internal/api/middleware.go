package api

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/auth"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/service"
	"github.com/Gaut2812/TECHXAURA-2K26-main/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const claimsKey = "claims"

func ZapLoggerMiddleware(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			requestID := res.Header().Get(echo.HeaderXRequestID)

			reqLogger := l.With(
				zap.String("request_id", requestID),
			)

			ctx := logger.WithLogger(req.Context(), reqLogger)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes_in", req.ContentLength),
				zap.Int64("bytes_out", res.Size),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				reqLogger.Error("request failed", fields...)
			} else {
				reqLogger.Info("request completed", fields...)
			}

			return err
		}
	}
}

// AuthMiddleware accepts bearer tokens of the given types and stores their claims in the context.
func AuthMiddleware(tokens *auth.Tokens, allowed ...auth.TokenType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return unauthorized(c, "missing bearer token")
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				logger.FromContext(c.Request().Context()).Debug("token rejected", zap.Error(err))
				return unauthorized(c, "invalid or expired token")
			}

			if !slices.Contains(allowed, claims.Type) {
				return c.JSON(http.StatusForbidden, errorResponse{
					Error: service.NewError(service.ErrorCodeUnauthorized, "access denied"),
				})
			}

			c.Set(claimsKey, claims)

			l := logger.FromContext(c.Request().Context()).With(zap.String("subject", claims.UserID()))
			c.SetRequest(c.Request().WithContext(logger.WithLogger(c.Request().Context(), l)))

			return next(c)
		}
	}
}

func claimsFrom(c echo.Context) *auth.TokenClaims {
	claims, _ := c.Get(claimsKey).(*auth.TokenClaims)
	return claims
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{
		Error: service.NewError(service.ErrorCodeUnauthorized, msg),
	})
}
