package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeProvider(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, "anon-key")
	return c
}

func TestExchangeCode_Success(t *testing.T) {
	c := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/v1/token", r.URL.Path)
		require.Equal(t, "pkce", r.URL.Query().Get("grant_type"))
		require.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "the-code", body["auth_code"])
		require.Equal(t, "the-verifier", body["code_verifier"])

		_ = json.NewEncoder(w).Encode(Session{
			AccessToken:  "at",
			RefreshToken: "rt",
			ExpiresIn:    3600,
			User:         &User{ID: "u1", Email: "owner@example.com"},
		})
	})

	session, err := c.ExchangeCode(context.Background(), "the-code", "the-verifier")
	require.NoError(t, err)
	assert.Equal(t, "at", session.AccessToken)
	assert.Equal(t, "owner@example.com", session.User.Email)
}

func TestExchangeCode_ProviderError(t *testing.T) {
	c := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_code":"bad_code_verifier","msg":"code challenge does not match previously saved code verifier"}`))
	})

	_, err := c.ExchangeCode(context.Background(), "code", "verifier")
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 400, pe.Status)
	assert.Equal(t, "bad_code_verifier", pe.Code)
	assert.True(t, IsPKCEMismatch(err))
}

func TestGetUser(t *testing.T) {
	c := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/user", r.URL.Path)
		require.Equal(t, "Bearer the-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{
			"id": "u1",
			"email": "owner@example.com",
			"user_metadata": {"full_name": "Site Owner", "user_name": "owner"},
			"app_metadata": {"provider": "github"}
		}`))
	})

	user, err := c.GetUser(context.Background(), "the-token")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Site Owner", user.DisplayName())
	assert.Equal(t, "owner", user.Username())
	assert.Equal(t, "github", user.AppMetadata.Provider)
}

func TestGetUser_Unauthorized(t *testing.T) {
	c := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
	})

	_, err := c.GetUser(context.Background(), "stale")
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 401, pe.Status)
}

func TestProjectRefDerivation(t *testing.T) {
	c := NewClient("https://myproj.supabase.co", "anon")
	assert.Equal(t, "myproj", c.ProjectRef())
	assert.Equal(t, "sb-myproj-auth-token", c.SessionCookieName())
}
