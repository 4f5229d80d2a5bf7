package domain

import "net/http"

// AuthRequestContext is the ephemeral per-request correlation record
// for the auth callback: one per inbound invocation, never persisted.
// It exists for log correlation and for embedding a request_id into
// user-facing error redirects.
type AuthRequestContext struct {
	RequestID string
	Route     string
	Method    string
	Host      string
	Path      string
}

// NewAuthRequestContext captures the correlation fields of r.
func NewAuthRequestContext(r *http.Request, requestID string) *AuthRequestContext {
	return &AuthRequestContext{
		RequestID: requestID,
		Route:     r.URL.Path,
		Method:    r.Method,
		Host:      r.Host,
		Path:      r.URL.Path,
	}
}

// LogFields renders the context as structured log fields.
func (a *AuthRequestContext) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"request_id": a.RequestID,
		"route":      a.Route,
		"method":     a.Method,
		"host":       a.Host,
		"path":       a.Path,
	}
}
