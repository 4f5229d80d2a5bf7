package ratelimit

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halcyonworks/mission-control/errors"
	"github.com/halcyonworks/mission-control/log"
)

// Scope names for the routes that consult the limiter. Limits are
// per client IP per window.
const (
	ScopeCreateCompany       = "create-company"
	ScopeUpdateCompany       = "update-company"
	ScopeTaskMutate          = "task-mutate"
	ScopeAuditGenerate       = "audit-generate"
	ScopeProposalGenerate    = "proposal-generate"
	ScopeWebsiteScrape       = "website-scrape"
	ScopeLeadCapture         = "lead-capture"
	ScopeNewsletterSubscribe = "newsletter-subscribe"
	ScopeAuthCallback        = "auth-callback"
	ScopePortalAccess        = "portal-access"
)

// ClientIP derives the client identifier for rate limiting: the first
// entry of X-Forwarded-For, or "unknown" when absent.
//
// Known weakness: without a trusted reverse proxy stripping or
// overwriting X-Forwarded-For, this identifier is trivially spoofable.
func ClientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return "unknown"
	}
	first := strings.TrimSpace(strings.Split(xff, ",")[0])
	if first == "" {
		return "unknown"
	}
	return first
}

// Middleware gates a route group or single route on the limiter. It
// must be registered ahead of authentication and payload validation.
// On rejection it writes a 429 with a Retry-After header (seconds,
// rounded up, minimum 1) and returns without calling the next
// handler.
func Middleware(store *Store, logger log.Logger, scope string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := scope + ":" + ClientIP(c.Request())
			res := store.CheckAndConsume(key, window, limit)
			if res.Allowed {
				return next(c)
			}

			retryAfter := int(time.Until(res.ResetAt).Seconds() + 0.999)
			if retryAfter < 1 {
				retryAfter = 1
			}

			logger.Warn(c.Request().Context(), "rate limit exceeded", map[string]interface{}{
				"scope":               scope,
				"client":              ClientIP(c.Request()),
				"retry_after_seconds": retryAfter,
			})

			c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
			return c.JSON(http.StatusTooManyRequests, errors.NewRateLimited(retryAfter))
		}
	}
}
