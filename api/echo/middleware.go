package echo

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halcyonworks/mission-control/cache"
	"github.com/halcyonworks/mission-control/errors"
	"github.com/halcyonworks/mission-control/internal/identity"
)

// Context keys set by RequireSession.
const (
	ContextKeyUserID = "auth.userID"
	ContextKeyEmail  = "auth.email"
)

// sessionCacheTTL bounds how long a verified token is trusted without
// re-checking the identity provider.
const sessionCacheTTL = 5 * time.Minute

// RequireSession authenticates dashboard requests. It accepts a
// bearer token or the provider session cookie, consults the
// verification cache and falls back to the provider on a miss.
func (a *API) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := a.requestToken(c)
		if token == "" {
			return c.JSON(http.StatusUnauthorized, errors.NewUnauthorized("Sign in to access the dashboard."))
		}

		ctx := c.Request().Context()
		if cached, ok := a.sessions.Get(ctx, token); ok {
			c.Set(ContextKeyUserID, cached.UserID)
			c.Set(ContextKeyEmail, cached.Email)
			return next(c)
		}

		user, err := a.idp.GetUser(ctx, token)
		if err != nil {
			a.logger.Debug(ctx, "session verification failed", map[string]interface{}{
				"error": err.Error(),
			})
			return c.JSON(http.StatusUnauthorized, errors.NewUnauthorized("Session is invalid or expired."))
		}
		if a.cfg.AdminEmail != "" && !strings.EqualFold(strings.TrimSpace(user.Email), strings.TrimSpace(a.cfg.AdminEmail)) {
			return c.JSON(http.StatusForbidden, errors.NewForbidden("This account is not allowed to access the dashboard."))
		}

		session := &cache.VerifiedSession{
			UserID:    user.ID,
			Email:     user.Email,
			ExpiresAt: time.Now().UTC().Add(sessionCacheTTL),
		}
		if err := a.sessions.Set(ctx, token, session, sessionCacheTTL); err != nil {
			a.logger.Warn(ctx, "failed to cache verified session", map[string]interface{}{
				"error": err.Error(),
			})
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyEmail, user.Email)
		return next(c)
	}
}

func (a *API) requestToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	ck, err := c.Cookie(a.idp.SessionCookieName())
	if err != nil || ck.Value == "" {
		return ""
	}
	session, err := identity.SessionFromCookie(ck.Value)
	if err != nil {
		return ""
	}
	return session.AccessToken
}
