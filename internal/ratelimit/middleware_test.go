package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonworks/mission-control/log"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name string
		xff  string
		want string
	}{
		{"absent header", "", "unknown"},
		{"single ip", "203.0.113.7", "203.0.113.7"},
		{"proxy chain takes first", "203.0.113.7, 10.0.0.1, 10.0.0.2", "203.0.113.7"},
		{"padded entry", "  203.0.113.7 , 10.0.0.1", "203.0.113.7"},
		{"empty first entry", ",10.0.0.1", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}

func TestMiddleware_RejectsWith429(t *testing.T) {
	e := echo.New()
	store := NewStore()
	logger := log.NewZerologAdapter(zerolog.Disabled, false)

	handler := Middleware(store, logger, ScopeLeadCapture, 2, time.Minute)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/leads", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		return rec
	}

	assert.Equal(t, http.StatusNoContent, do().Code)
	assert.Equal(t, http.StatusNoContent, do().Code)

	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)

	var body struct {
		Error             string `json:"error"`
		RetryAfterSeconds int    `json:"retryAfterSeconds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "too_many_requests", body.Error)
	assert.Equal(t, retryAfter, body.RetryAfterSeconds)
}

func TestMiddleware_ScopesShareTheStoreNotTheBudget(t *testing.T) {
	e := echo.New()
	store := NewStore()
	logger := log.NewZerologAdapter(zerolog.Disabled, false)

	pass := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	leads := Middleware(store, logger, ScopeLeadCapture, 1, time.Minute)(pass)
	news := Middleware(store, logger, ScopeNewsletterSubscribe, 1, time.Minute)(pass)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	rec := httptest.NewRecorder()
	require.NoError(t, leads(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	require.NoError(t, news(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusNoContent, rec.Code, "different scope must have its own bucket")

	rec = httptest.NewRecorder()
	require.NoError(t, leads(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
