// Package testutil starts an in-process portal for integration tests.
package testutil

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"gudlft/internal/bookings/handler"
	"gudlft/internal/bookings/metrics"
	"gudlft/internal/bookings/repository"
	"gudlft/internal/bookings/service"
	"gudlft/internal/bookings/validator"
	datagen "gudlft/internal/testutil"
	"gudlft/pkg/app"
	"gudlft/pkg/client"
	"gudlft/pkg/config"
	"gudlft/pkg/logger"
	"gudlft/pkg/model"

	"github.com/prometheus/client_golang/prometheus"
)

// Now is the clock of every test portal.
var Now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

type TestEnv struct {
	Client   *client.PortalClient
	Registry *repository.InMemoryRegistry
	Events   *EventRecorder
	Metrics  *prometheus.Registry
}

type Option func(*options)

type options struct {
	clubs        []model.Club
	competitions []model.Competition
	cfg          *config.Config
}

func WithData(clubs []model.Club, competitions []model.Competition) Option {
	return func(o *options) {
		o.clubs = clubs
		o.competitions = competitions
	}
}

// WithRateLimit sets the purchase rate limit per club.
func WithRateLimit(requests int, window time.Duration, burst int) Option {
	return func(o *options) {
		o.cfg.RateLimitRequests = requests
		o.cfg.RateLimitWindow = window
		o.cfg.RateLimitBurst = burst
	}
}

func DefaultConfig() *config.Config {
	return &config.Config{
		Port:              "8080",
		RateLimitRequests: 10000,
		RateLimitWindow:   time.Second,
		RateLimitBurst:    10000,
		RequestTimeout:    5 * time.Second,
		IdempotencyTTL:    time.Minute,
		MaxRequestSize:    1 << 16,
		ShutdownTimeout:   time.Second,
		Log:               logger.Discard(),
	}
}

// Setup starts a portal loaded with the reference clubs and competitions
// unless WithData says otherwise.
func Setup(t *testing.T, opts ...Option) *TestEnv {
	t.Helper()

	o := &options{
		clubs:        datagen.ReferenceClubs(),
		competitions: datagen.ReferenceCompetitions(Now),
		cfg:          DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	cfg := o.cfg

	promRegistry := prometheus.NewRegistry()
	registry := repository.NewInMemoryRegistry(o.clubs, o.competitions)
	recorder := &EventRecorder{}

	svc := service.NewBookingService(
		registry,
		validator.NewBookingValidator(cfg.Log),
		cfg,
		service.WithClock(func() time.Time { return Now }),
		service.WithPublisher(recorder),
		service.WithMetrics(metrics.New(promRegistry)),
	)

	portal := app.NewApplication(cfg)
	portal.SetApp(
		handler.NewHealthHandler(registry, promRegistry, cfg.Log),
		handler.NewBookingHandler(svc, cfg.Log),
	)

	server := httptest.NewServer(portal.Handler())
	t.Cleanup(server.Close)

	httpClient := client.NewHttpClient(server.URL)
	httpClient.HTTPClient = server.Client()
	if err := httpClient.WaitForHealthy(context.Background(), 5*time.Second); err != nil {
		t.Fatalf("portal did not start: %v", err)
	}

	return &TestEnv{
		Client:   client.NewPortalClientWith(httpClient),
		Registry: registry,
		Events:   recorder,
		Metrics:  promRegistry,
	}
}

func (e *TestEnv) Club(t *testing.T, name string) model.Club {
	t.Helper()
	club, err := e.Registry.FindClubByName(context.Background(), name)
	if err != nil {
		t.Fatalf("club %q: %v", name, err)
	}
	return club
}

func (e *TestEnv) Competition(t *testing.T, name string) model.Competition {
	t.Helper()
	comp, err := e.Registry.FindCompetitionByName(context.Background(), name)
	if err != nil {
		t.Fatalf("competition %q: %v", name, err)
	}
	return comp
}

func AssertStatusCode(t *testing.T, resp *client.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, resp.StatusCode, resp.Body)
	}
}

// AssertError checks status, error code and message of an error response.
func AssertError(t *testing.T, resp *client.Response, status int, code, message string) {
	t.Helper()
	AssertStatusCode(t, resp, status)

	errResp, err := client.DecodeError(resp)
	if err != nil {
		t.Fatal(err)
	}
	if errResp.Code != code {
		t.Errorf("expected error code %s, got %s", code, errResp.Code)
	}
	if message != "" && errResp.Message != message {
		t.Errorf("expected message %q, got %q", message, errResp.Message)
	}
}
