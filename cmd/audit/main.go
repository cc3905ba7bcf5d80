package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"gudlft/internal/bookings/events"
	"gudlft/pkg/config"
	"gudlft/pkg/kafka"
	kafka_config "gudlft/pkg/kafka/config"
	kafka_middleware "gudlft/pkg/kafka/middleware"

	"github.com/prometheus/client_golang/prometheus"
)

const ServiceName = "audit"

func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.BookingEventsTopic,
		cfg.AuditGroupID,
		cfg.BookingEventsDLQTopic,
		events.NewAuditHandler(events.LogSink(cfg.Log)),
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "topic", cfg.BookingEventsTopic, "error", err)
	}

	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(kafka_middleware.NewMetrics(prometheus.DefaultRegisterer).Consumer())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting booking audit consumer",
		"topic", cfg.BookingEventsTopic,
		"group_id", cfg.AuditGroupID,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Audit consumer stopped", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}
	cfg.Log.Info("Audit consumer stopped")
}
