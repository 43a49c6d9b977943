package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Config holds middleware configuration.
type Config struct {
	Logger *zap.Logger

	CORS *CORSConfig

	RateLimiter *RateLimiter

	RequestTimeout time.Duration
	// NoTimeout lists path prefixes served without a request deadline.
	NoTimeout []string
}

// Chain builds the router-level middleware stack, outermost first: access
// log, request id, recovery, CORS, rate limit, timeout.
func Chain(config *Config) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		h := handler

		h = Timeout(config.RequestTimeout, config.NoTimeout...)(h)

		if config.RateLimiter != nil {
			h = config.RateLimiter.Middleware()(h)
		}

		if config.CORS != nil {
			h = CORS(config.CORS)(h)
		}

		h = Recovery(config.Logger)(h)

		h = RequestID(h)

		h = Logger(config.Logger)(h)

		return h
	}
}
