package main

import (
	_ "time/tzdata"

	"gudlft/internal/bookings/events"
	"gudlft/internal/bookings/handler"
	"gudlft/internal/bookings/metrics"
	"gudlft/internal/bookings/repository"
	"gudlft/internal/bookings/service"
	"gudlft/internal/bookings/validator"
	"gudlft/internal/fixtures"
	"gudlft/pkg/app"
	"gudlft/pkg/config"
	"gudlft/pkg/kafka"
	kafka_config "gudlft/pkg/kafka/config"
	kafka_middleware "gudlft/pkg/kafka/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const ServiceName = "portal"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting GUDLFT portal")

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	registry := initRegistry(cfg, bookingValidator)
	publisher := initPublisher(cfg, promRegistry)

	bookingService := service.NewBookingService(
		registry,
		bookingValidator,
		cfg,
		service.WithPublisher(publisher),
		service.WithMetrics(metrics.New(promRegistry)),
	)
	cfg.Log.Info("Booking service initialized")

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewHealthHandler(registry, promRegistry, cfg.Log),
		handler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.OnShutdown(publisher.Close)
	serverApp.Run()
}

func initRegistry(cfg *config.Config, recordValidator fixtures.RecordValidator) *repository.InMemoryRegistry {
	loc, err := cfg.Location()
	if err != nil {
		cfg.Log.Fatal("Invalid timezone", "timezone", cfg.Timezone, "error", err)
	}

	loader := fixtures.NewLoader(cfg.Log, recordValidator, fixtures.WithLocation(loc))
	data, err := loader.Load(cfg.ClubsFile, cfg.CompetitionsFile)
	if err != nil {
		cfg.Log.Fatal("Failed to load fixtures",
			"clubs_file", cfg.ClubsFile,
			"competitions_file", cfg.CompetitionsFile,
			"error", err,
		)
	}

	for _, warning := range fixtures.Lint(data) {
		cfg.Log.Warn("Fixture warning", "warning", warning.String())
	}

	return repository.NewInMemoryRegistry(data.Clubs, data.Competitions)
}

func initPublisher(cfg *config.Config, reg prometheus.Registerer) events.Publisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return events.NoopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "topic", cfg.BookingEventsTopic, "error", err)
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.NewMetrics(reg).Producer())
	}

	cfg.Log.Info("Booking events enabled", "topic", cfg.BookingEventsTopic)
	return events.NewKafkaPublisher(producer, ServiceName)
}
