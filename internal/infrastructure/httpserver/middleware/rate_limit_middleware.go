package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles the public subscription endpoints per client
// IP. The store is in-memory; this is a single-process service.
type RateLimitMiddleware struct {
	perSecond float64
	burst     int
}

func NewRateLimitMiddleware(perSecond float64, burst int) *RateLimitMiddleware {
	return &RateLimitMiddleware{perSecond: perSecond, burst: burst}
}

func (m *RateLimitMiddleware) Handler() echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(m.perSecond),
		Burst:     m.burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{Store: store})
}
