package config

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"gudlft/pkg/logger"
)

func validConfig() *Config {
	return &Config{
		Port:              DefaultPort,
		ClubsFile:         DefaultClubsFile,
		CompetitionsFile:  DefaultCompetitionsFile,
		Timezone:          DefaultTimezone,
		RateLimitRequests: DefaultRateLimitRequests,
		RateLimitWindow:   DefaultRateLimitWindow,
		RateLimitBurst:    DefaultRateLimitBurst,
		RequestTimeout:    DefaultRequestTimeout,
		IdempotencyTTL:    DefaultIdempotencyTTL,
		MaxRequestSize:    DefaultMaxRequestSize,
		ReadTimeout:       DefaultReadTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
		Log:               logger.Discard(),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:      "port out of range",
			mutate:    func(c *Config) { c.Port = "70000" },
			wantError: "Port must be between 1 and 65535",
		},
		{
			name:      "empty clubs file",
			mutate:    func(c *Config) { c.ClubsFile = "  " },
			wantError: "ClubsFile cannot be empty",
		},
		{
			name:      "unknown timezone",
			mutate:    func(c *Config) { c.Timezone = "Mars/Olympus_Mons" },
			wantError: "Timezone must be a known IANA zone",
		},
		{
			name:      "zero burst",
			mutate:    func(c *Config) { c.RateLimitBurst = 0 },
			wantError: "RateLimitBurst must be positive",
		},
		{
			name:      "negative timeout",
			mutate:    func(c *Config) { c.RequestTimeout = -time.Second },
			wantError: "RequestTimeout must be positive",
		},
		{
			name: "events without topic",
			mutate: func(c *Config) {
				c.EventsEnabled = true
				c.BookingEventsTopic = ""
			},
			wantError: "BookingEventsTopic cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantError)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("expected error containing %q, got %q", tt.wantError, err.Error())
			}
		})
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.MaxRequestSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "1. ") || !strings.Contains(err.Error(), "2. ") {
		t.Errorf("expected numbered list of two errors, got %q", err.Error())
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvClubsFile, "testdata/clubs.yaml")
	t.Setenv(EnvRequestTimeout, "5s")
	t.Setenv(EnvEventsEnabled, "true")
	t.Setenv(EnvLogLevel, "error")

	cfg := Load("config-test")

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.ClubsFile != "testdata/clubs.yaml" {
		t.Errorf("expected clubs file from env, got %s", cfg.ClubsFile)
	}
	if cfg.CompetitionsFile != DefaultCompetitionsFile {
		t.Errorf("expected default competitions file, got %s", cfg.CompetitionsFile)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected 5s request timeout, got %s", cfg.RequestTimeout)
	}
	if !cfg.EventsEnabled {
		t.Error("expected events to be enabled")
	}
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv(EnvRateLimitRequests, "lots")
	t.Setenv(EnvLogLevel, "error")

	cfg := Load("config-test")
	if cfg.RateLimitRequests != DefaultRateLimitRequests {
		t.Errorf("expected fallback %d, got %d", DefaultRateLimitRequests, cfg.RateLimitRequests)
	}
}

func TestLoad_Timezone(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")

	cfg := Load("config-test")
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location() error = %v", err)
	}
	if loc != time.Local {
		t.Errorf("expected server local zone by default, got %s", loc)
	}

	t.Setenv(EnvTimezone, "America/New_York")
	cfg = Load("config-test")
	loc, err = cfg.Location()
	if err != nil {
		t.Fatalf("Location() error = %v", err)
	}
	if loc.String() != "America/New_York" {
		t.Errorf("expected America/New_York, got %s", loc)
	}
}
