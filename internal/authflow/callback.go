// Package authflow completes the authorization-code OAuth flow
// against the identity provider: code exchange, cookie repair on PKCE
// verifier mismatches, the single-admin allowlist, and best-effort
// profile sync. Every failure path ends in a redirect to the login
// page with a short reason and a request id; nothing here is fatal to
// the process.
package authflow

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/halcyonworks/mission-control/domain"
	"github.com/halcyonworks/mission-control/internal/identity"
	"github.com/halcyonworks/mission-control/log"
)

// RequestIDHeader carries the request id on the success response for
// log correlation.
const RequestIDHeader = "x-auth-request-id"

const loginPath = "/login"

// Provider is the slice of the identity client the callback needs.
type Provider interface {
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*identity.Session, error)
	GetUser(ctx context.Context, accessToken string) (*identity.User, error)
	CodeVerifierCookieName() string
	SessionCookies(session *identity.Session, secure bool) []*http.Cookie
	ClearAuthCookies(r *http.Request, secure bool) []*http.Cookie
}

// ProfileEnsurer upserts the operator profile after login. It is
// advisory: the callback logs its errors and moves on.
type ProfileEnsurer interface {
	EnsureProfile(ctx context.Context, user *identity.User) error
}

// Handler serves GET /auth/callback.
type Handler struct {
	provider Provider
	profiles ProfileEnsurer
	logger   log.Logger

	// adminEmail, when non-empty, restricts sign-in to exactly one
	// account. Empty disables the allowlist.
	adminEmail string

	// devMode controls redirect host trust: in development the
	// request origin is used as-is; otherwise X-Forwarded-Host is
	// trusted when present.
	devMode bool
}

// NewHandler wires the callback handler.
func NewHandler(provider Provider, profiles ProfileEnsurer, logger log.Logger, adminEmail string, devMode bool) *Handler {
	return &Handler{
		provider:   provider,
		profiles:   profiles,
		logger:     logger,
		adminEmail: adminEmail,
		devMode:    devMode,
	}
}

// Callback runs the per-request state machine. State exists only
// within the single invocation; nothing is carried across calls.
func (h *Handler) Callback(c echo.Context) error {
	req := c.Request()
	ctx := req.Context()

	reqCtx := domain.NewAuthRequestContext(req, requestID(c))
	fields := reqCtx.LogFields()

	code := c.QueryParam("code")
	next := SanitizeNext(c.QueryParam("next"))

	if code == "" {
		providerErr := c.QueryParam("error")
		errorCode := c.QueryParam("error_code")
		msg := identity.FriendlyAuthMessage(errorCode, c.QueryParam("error_description"))

		h.logger.Warn(ctx, "auth.callback.missing_code", mergeFields(fields, map[string]interface{}{
			"provider_error": providerErr,
			"error_code":     errorCode,
		}))

		q := url.Values{}
		q.Set("error", msg)
		q.Set("request_id", reqCtx.RequestID)
		if errorCode != "" {
			q.Set("error_code", errorCode)
		}
		return c.Redirect(http.StatusFound, loginPath+"?"+q.Encode())
	}

	verifier := ""
	if ck, err := req.Cookie(h.provider.CodeVerifierCookieName()); err == nil {
		verifier = ck.Value
	}

	session, err := h.provider.ExchangeCode(ctx, code, verifier)
	if err != nil {
		return h.exchangeFailed(c, reqCtx, err)
	}

	user := session.User
	if user == nil {
		user, err = h.provider.GetUser(ctx, session.AccessToken)
		if err != nil {
			return h.exchangeFailed(c, reqCtx, err)
		}
	}

	if h.adminEmail != "" && !emailMatches(user.Email, h.adminEmail) {
		h.logger.Warn(ctx, "auth.callback.denied", mergeFields(fields, map[string]interface{}{
			"email": user.Email,
		}))
		q := url.Values{}
		q.Set("error", "Access is not enabled for this account.")
		q.Set("request_id", reqCtx.RequestID)
		return c.Redirect(http.StatusFound, loginPath+"?"+q.Encode())
	}

	// Profile sync is advisory: its errors are logged and swallowed
	// so they can never block a successful login.
	if h.profiles != nil {
		if err := h.profiles.EnsureProfile(ctx, user); err != nil {
			h.logger.Error(ctx, "auth.callback.profile_sync_failed", err, fields)
		}
	}

	// Pending cookie mutations from the exchange are applied exactly
	// once, here, to the final response.
	for _, ck := range h.provider.SessionCookies(session, !h.devMode) {
		c.SetCookie(ck)
	}

	c.Response().Header().Set(RequestIDHeader, reqCtx.RequestID)

	h.logger.Info(ctx, "auth.callback.success", mergeFields(fields, map[string]interface{}{
		"next": next,
	}))

	return c.Redirect(http.StatusFound, h.successTarget(req, next))
}

// exchangeFailed classifies a code-exchange failure. PKCE verifier
// mismatches get the cookie-repair treatment; everything else gets a
// generic redirect carrying the serialized error.
func (h *Handler) exchangeFailed(c echo.Context, reqCtx *domain.AuthRequestContext, err error) error {
	ctx := c.Request().Context()
	serialized := identity.Serialize(err)
	fields := mergeFields(reqCtx.LogFields(), map[string]interface{}{
		"error_name":   serialized.Name,
		"error_status": serialized.Status,
		"error_code":   serialized.Code,
	})

	q := url.Values{}
	q.Set("request_id", reqCtx.RequestID)
	if serialized.Code != "" {
		q.Set("error_code", serialized.Code)
	}
	if serialized.Status != 0 {
		q.Set("error_status", strconv.Itoa(serialized.Status))
	}
	if serialized.Message != "" {
		q.Set("error_description", serialized.Message)
	}

	if identity.IsPKCEMismatch(err) {
		for _, ck := range h.provider.ClearAuthCookies(c.Request(), !h.devMode) {
			c.SetCookie(ck)
		}
		h.logger.Warn(ctx, "auth.callback.pkce_repair", fields)
		q.Set("error", "Sign-in could not be completed (PKCE verifier mismatch). Your sign-in cookies were reset; please restart sign-in from this same address, without other sign-in tabs open.")
		return c.Redirect(http.StatusFound, loginPath+"?"+q.Encode())
	}

	h.logger.Error(ctx, "auth.callback.exchange_failed", err, fields)
	q.Set("error", "Could not complete sign-in. Please try again.")
	return c.Redirect(http.StatusFound, loginPath+"?"+q.Encode())
}

// successTarget resolves the absolute or relative redirect for a
// successful login. In development the original request origin is
// kept (a relative redirect). Behind a proxy in production,
// X-Forwarded-Host is trusted when present.
func (h *Handler) successTarget(req *http.Request, next string) string {
	if h.devMode {
		return next
	}
	if fwdHost := req.Header.Get("X-Forwarded-Host"); fwdHost != "" {
		return "https://" + fwdHost + next
	}
	return next
}

// requestID propagates the inbound request id (echo's request-id
// middleware validates and echoes it) or generates one.
func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return uuid.NewString()
}

func emailMatches(got, want string) bool {
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want))
}

func mergeFields(base, extra map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
