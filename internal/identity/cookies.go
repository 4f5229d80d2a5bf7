package identity

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// CookiePrefix is the provider's cookie namespace. Every cookie this
// system touches starts with it.
const CookiePrefix = "sb-"

const (
	authTokenSuffix    = "-auth-token"
	codeVerifierSuffix = "-auth-token-code-verifier"
)

// authTokenShardPattern matches sharded session cookies the provider
// splits when the payload exceeds the per-cookie size limit, e.g.
// "sb-<ref>-auth-token.0".
var authTokenShardPattern = regexp.MustCompile(`-auth-token\.\d+$`)

// SessionCookieName is the provider's primary session cookie for this
// project.
func (c *Client) SessionCookieName() string {
	return CookiePrefix + c.projectRef + authTokenSuffix
}

// CodeVerifierCookieName holds the PKCE verifier between the redirect
// to the provider and the callback.
func (c *Client) CodeVerifierCookieName() string {
	return CookiePrefix + c.projectRef + codeVerifierSuffix
}

// IsClearableAuthCookie reports whether name belongs to the narrow set
// of cookies the repair path may clear: provider-prefixed names ending
// in the auth-token suffix, a numeric auth-token shard, or the
// code-verifier suffix. Unrelated cookies must never match.
func IsClearableAuthCookie(name string) bool {
	if !strings.HasPrefix(name, CookiePrefix) {
		return false
	}
	return strings.HasSuffix(name, authTokenSuffix) ||
		strings.HasSuffix(name, codeVerifierSuffix) ||
		authTokenShardPattern.MatchString(name)
}

// HasSessionCookie reports whether the request carries a provider
// session cookie (primary or sharded).
func (c *Client) HasSessionCookie(r *http.Request) bool {
	base := c.SessionCookieName()
	for _, ck := range r.Cookies() {
		if ck.Name == base {
			return true
		}
		if strings.HasPrefix(ck.Name, base+".") && authTokenShardPattern.MatchString(ck.Name) {
			return true
		}
	}
	return false
}

// SessionCookies returns the pending cookie mutations that establish
// a session. The caller applies them exactly once to the final
// outgoing response; intermediate responses are never mutated.
func (c *Client) SessionCookies(session *Session, secure bool) []*http.Cookie {
	payload, _ := json.Marshal(session)
	value := base64.RawURLEncoding.EncodeToString(payload)

	maxAge := session.ExpiresIn
	if maxAge <= 0 {
		maxAge = 3600
	}

	return []*http.Cookie{
		{
			Name:     c.SessionCookieName(),
			Value:    value,
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		},
		// The verifier is single-use; drop it once exchanged.
		expiredCookie(c.CodeVerifierCookieName(), secure),
	}
}

// ClearAuthCookies returns expirations for every clearable auth cookie
// present on the request, so a user stuck on a verifier mismatch can
// retry cleanly.
func (c *Client) ClearAuthCookies(r *http.Request, secure bool) []*http.Cookie {
	var cleared []*http.Cookie
	for _, ck := range r.Cookies() {
		if IsClearableAuthCookie(ck.Name) {
			cleared = append(cleared, expiredCookie(ck.Name, secure))
		}
	}
	return cleared
}

// SessionFromCookie decodes the session cookie value written by
// SessionCookies. Used by the session middleware.
func SessionFromCookie(value string) (*Session, error) {
	payload, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func expiredCookie(name string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
