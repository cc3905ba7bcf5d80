package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultClubsFile        = "clubs.json"
	DefaultCompetitionsFile = "competitions.json"
	DefaultTimezone         = "Local"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute
	DefaultRateLimitBurst    = 5

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultEventsEnabled         = false
	DefaultBookingEventsTopic    = "gudlft.bookings"
	DefaultBookingEventsDLQTopic = "gudlft.bookings.dlq"
	DefaultAuditGroupID          = "gudlft-audit"
)
