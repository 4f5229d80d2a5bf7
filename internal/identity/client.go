// Package identity is the client for the hosted identity provider
// (Supabase-style auth API). It owns the code-exchange and get-user
// calls plus the cookie naming contract; sessions themselves are
// provider-opaque.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the identity provider's REST API.
type Client struct {
	baseURL    string
	anonKey    string
	projectRef string
	http       *http.Client
}

// NewClient creates a provider client. baseURL is the project API
// origin, e.g. "https://abcdefgh.supabase.co"; the project ref is
// derived from its first host label and drives cookie naming.
func NewClient(baseURL, anonKey string) *Client {
	ref := "project"
	if u, err := url.Parse(baseURL); err == nil && u.Hostname() != "" {
		ref = strings.Split(u.Hostname(), ".")[0]
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		projectRef: ref,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

// ProjectRef returns the provider project reference.
func (c *Client) ProjectRef() string { return c.projectRef }

// User is the provider's view of an authenticated user.
type User struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	AppMetadata  struct {
		Provider string `json:"provider"`
	} `json:"app_metadata"`
}

// metaString pulls the first non-empty string out of user metadata.
func (u *User) metaString(keys ...string) string {
	for _, k := range keys {
		if v, ok := u.UserMetadata[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// DisplayName returns the best available display name.
func (u *User) DisplayName() string {
	return u.metaString("full_name", "name")
}

// AvatarURL returns the provider avatar, if any.
func (u *User) AvatarURL() string {
	return u.metaString("avatar_url", "picture")
}

// Username returns the provider handle, if any.
func (u *User) Username() string {
	return u.metaString("user_name", "preferred_username")
}

// Session holds the tokens established by a successful code exchange.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user"`
}

// ExchangeCode trades an authorization code plus its PKCE verifier for
// a session. Failures come back as *ProviderError so callers can
// classify them (PKCE mismatch vs. generic).
func (c *Client) ExchangeCode(ctx context.Context, code, codeVerifier string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{
		"auth_code":     code,
		"code_verifier": codeVerifier,
	})
	if err != nil {
		return nil, fmt.Errorf("identity: marshal exchange payload: %w", err)
	}

	endpoint := c.baseURL + "/auth/v1/token?grant_type=pkce"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("identity: build exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: exchange request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("identity: read exchange response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseProviderError(resp.StatusCode, body)
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("identity: unmarshal session: %w", err)
	}
	if session.AccessToken == "" {
		return nil, &ProviderError{Name: "AuthApiError", Message: "exchange succeeded but returned no access token", Status: resp.StatusCode}
	}
	return &session, nil
}

// GetUser fetches the user behind an access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build user request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: user request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("identity: read user response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseProviderError(resp.StatusCode, body)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("identity: unmarshal user: %w", err)
	}
	return &user, nil
}
