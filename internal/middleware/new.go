package middleware

import (
	"bankbot/pkg/log"
)

// Middleware bundles the gin middlewares shared by all domains.
type Middleware struct {
	l          log.Logger
	adminToken string
	limiter    *rateLimiter
}

// New creates the shared middleware set. An empty adminToken disables every
// admin route.
func New(l log.Logger, adminToken string, requestsPerMin int) Middleware {
	return Middleware{
		l:          l,
		adminToken: adminToken,
		limiter:    newRateLimiter(requestsPerMin),
	}
}
