package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsClearableAuthCookie(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"sb-myproj-auth-token", true},
		{"sb-myproj-auth-token.0", true},
		{"sb-myproj-auth-token.12", true},
		{"sb-myproj-auth-token-code-verifier", true},
		{"sb-myproj-refresh-token", false},
		{"theme", false},
		{"myproj-auth-token", false},
		{"sb-myproj-auth-token.x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsClearableAuthCookie(tt.name))
		})
	}
}

func TestClearAuthCookies_OnlyTargetsProviderCookies(t *testing.T) {
	c := NewClient("https://myproj.supabase.co", "anon")

	req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
	req.AddCookie(&http.Cookie{Name: "sb-myproj-auth-token", Value: "v"})
	req.AddCookie(&http.Cookie{Name: "sb-myproj-auth-token-code-verifier", Value: "v"})
	req.AddCookie(&http.Cookie{Name: "session_pref", Value: "v"})

	cleared := c.ClearAuthCookies(req, true)
	require.Len(t, cleared, 2)
	for _, ck := range cleared {
		assert.Negative(t, ck.MaxAge)
		assert.NotEqual(t, "session_pref", ck.Name)
	}
}

func TestSessionCookies_RoundTripAndVerifierDrop(t *testing.T) {
	c := NewClient("https://myproj.supabase.co", "anon")
	session := &Session{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 1200}

	cookies := c.SessionCookies(session, true)
	require.Len(t, cookies, 2)

	assert.Equal(t, "sb-myproj-auth-token", cookies[0].Name)
	assert.Equal(t, 1200, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)

	decoded, err := SessionFromCookie(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "at", decoded.AccessToken)

	assert.Equal(t, "sb-myproj-auth-token-code-verifier", cookies[1].Name)
	assert.Negative(t, cookies[1].MaxAge, "verifier is single-use and must be dropped")
}

func TestHasSessionCookie(t *testing.T) {
	c := NewClient("https://myproj.supabase.co", "anon")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, c.HasSessionCookie(req))

	req.AddCookie(&http.Cookie{Name: "sb-myproj-auth-token.1", Value: "v"})
	assert.True(t, c.HasSessionCookie(req))
}
