package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/api"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/auth"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/cart"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/catalog"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/config"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/db"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/export"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/notify"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/repository"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/service"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/storage"
	"github.com/Gaut2812/TECHXAURA-2K26-main/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logger.WithLogger(ctx, log)

	log.Info("starting application", zap.String("version", version), zap.String("env", cfg.Env))

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	log.Info("database connection established")

	transactor := db.NewPgxTransactor(pool)

	userRepo := repository.NewPgxUserRepository(pool)
	registrationRepo := repository.NewPgxRegistrationRepository(pool)
	teamMemberRepo := repository.NewPgxTeamMemberRepository(pool)

	objects, err := storage.NewGCS(ctx, cfg.StorageBucket, cfg.GoogleCredentialsFile)
	if err != nil {
		log.Fatal("failed to create object storage", zap.Error(err))
	}

	publisher := notify.NewNopPublisher()
	if cfg.RabbitURL != "" {
		rabbit, err := notify.NewRabbitClient(cfg.RabbitURL, cfg.RabbitExchange, cfg.RabbitQueue, log)
		if err != nil {
			log.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		defer rabbit.Close()
		publisher = rabbit
	} else {
		log.Warn("RABBITMQ_URL is empty, notifications are disabled")
	}

	tokens := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL)
	sessions := cart.NewStore(cfg.TeamFee)
	events := catalog.Default()

	go sweepSessions(ctx, sessions, cfg.SessionIdle, log)

	accounts := service.NewAccountService(tokens, sessions).
		WithUserRepo(userRepo).
		WithAdminCredentials(cfg.AdminUsername, cfg.AdminPasswordHash)

	checkout := service.NewCheckoutService(transactor, events, sessions).
		WithUserRepo(userRepo).
		WithRegistrationRepo(registrationRepo).
		WithTeamMemberRepo(teamMemberRepo).
		WithStorage(objects).
		WithPublisher(publisher).
		WithMaxUploadBytes(cfg.MaxUploadBytes)

	admin := service.NewAdminService(transactor, cfg.TeamFee).
		WithRegistrationRepo(registrationRepo).
		WithTeamMemberRepo(teamMemberRepo).
		WithPublisher(publisher)

	if cfg.ExportSpreadsheetID != "" {
		sheets, err := export.NewSheetsPublisher(ctx, cfg.ExportSpreadsheetID, cfg.GoogleCredentialsFile)
		if err != nil {
			log.Fatal("failed to create sheets client", zap.Error(err))
		}
		admin.WithSheetsPublisher(sheets, cfg.ExportRegistrationsTab)
	}

	healthChecker, err := api.NewHealthChecker(version, db.HealthCheck(pool))
	if err != nil {
		log.Fatal("failed to create health checker", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true

	api.NewHandler(log, tokens).
		WithHealthChecker(healthChecker).
		WithCatalog(events).
		WithAccountService(accounts).
		WithCheckoutService(checkout).
		WithAdminService(admin).
		RegisterRoutes(e)

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return logger.NewDevelopmentLogger()
	}
	return logger.NewLogger()
}

// sweepSessions drops checkout sessions nobody touched for maxIdle.
func sweepSessions(ctx context.Context, sessions *cart.Store, maxIdle time.Duration, log *zap.Logger) {
	interval := maxIdle / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(maxIdle); n > 0 {
				log.Info("idle sessions removed", zap.Int("removed", n), zap.Int("active", sessions.Len()))
			}
		}
	}
}
