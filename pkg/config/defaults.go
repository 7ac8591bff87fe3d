package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "voyago"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// A block holds the offer for 3 hours before payment; the hold
	// expires lazily on the next touch after the deadline.
	DefaultBlockHoldDuration = 3 * time.Hour

	// Advisory lock lifetime for the create path. Only needs to
	// outlive a single request.
	DefaultSlotLockTTL = 10 * time.Second

	DefaultPaginationLimit = 100
)
