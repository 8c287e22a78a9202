package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Background job intervals
const (
	SessionCleanupInterval = 15 * time.Minute
	DeletionJobTimeout     = 5 * time.Minute
)

// Client-side session keeper defaults
const (
	SessionRefreshInterval = 30 * time.Minute
	SessionRefreshCooldown = 2 * time.Minute
	SessionCheckInterval   = 5 * time.Minute
)

// Per-IP login attempts per minute
const LoginRateLimitPerMin = 10

// Listing limits
const (
	SearchResultLimit = 20
	TopCategoryLimit  = 5
)
