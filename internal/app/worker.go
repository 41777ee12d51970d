package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go-staffhub/internal/config"
	"go-staffhub/internal/messaging/kafka"
	"go-staffhub/internal/messaging/kafka/producer"
	"go-staffhub/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunWorker starts the outbox relay and blocks until a shutdown signal.
func RunWorker(cfg *config.Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		5,
	)
	if err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Kafka.Brokers...),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outboxRepo := kafka.NewOutboxRepositoryWithBackoff(db,
		time.Duration(cfg.Kafka.RetryBackoffSec)*time.Second)
	producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		writer,
		zap.L(),
		time.Duration(cfg.Kafka.PollIntervalSec)*time.Second,
		cfg.Kafka.BatchSize,
	)

	return nil
}
