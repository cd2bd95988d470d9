package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/config"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/notify"
	"github.com/Gaut2812/TECHXAURA-2K26-main/pkg/logger"
	"go.uber.org/zap"
)

// The worker turns registration notifications into emails for the registrants.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.RabbitURL == "" {
		log.Fatal("RABBITMQ_URL is required for the notification worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rabbit, err := notify.NewRabbitClient(cfg.RabbitURL, cfg.RabbitExchange, cfg.RabbitQueue, log)
	if err != nil {
		log.Fatal("failed to connect to rabbitmq", zap.Error(err))
	}
	defer rabbit.Close()

	mailer := notify.NewMailer(cfg.SMTPAddr, cfg.SMTPHost, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)

	handle := func(ctx context.Context, msg *notify.Message) error {
		if err := mailer.Handle(ctx, msg); err != nil {
			return err
		}
		log.Info("notification sent",
			zap.String("type", string(msg.Type)),
			zap.String("registration_id", msg.RegistrationID))
		return nil
	}

	log.Info("notification worker started")

	if err = rabbit.Consume(ctx, handle); err != nil {
		log.Error("consumer stopped", zap.Error(err))
	}

	log.Info("notification worker stopped")
}
