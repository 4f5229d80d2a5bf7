package identity

import (
	"encoding/json"
	"errors"
	"strings"
)

// ProviderError is a provider-level authentication error normalized
// into a stable shape. Only these four fields ever reach logs or
// redirect parameters; anything else the provider returns is dropped.
type ProviderError struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
	Status  int    `json:"status,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "identity provider error"
}

// parseProviderError builds a ProviderError from a non-2xx provider
// response body. The provider is inconsistent about field names, so
// several are tried.
func parseProviderError(status int, body []byte) *ProviderError {
	var raw struct {
		Error            string `json:"error"`
		ErrorCode        string `json:"error_code"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Code             string `json:"code"`
	}
	_ = json.Unmarshal(body, &raw)

	msg := raw.Msg
	if msg == "" {
		msg = raw.Message
	}
	if msg == "" {
		msg = raw.ErrorDescription
	}
	if msg == "" {
		msg = raw.Error
	}

	code := raw.ErrorCode
	if code == "" {
		code = raw.Code
	}

	return &ProviderError{
		Name:    "AuthApiError",
		Message: normalizeWhitespace(msg),
		Status:  status,
		Code:    code,
	}
}

// Serialize projects any error into the stable shape. ProviderErrors
// pass through; everything else becomes a message-only record.
func Serialize(err error) *ProviderError {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return &ProviderError{
			Name:    pe.Name,
			Message: normalizeWhitespace(pe.Message),
			Status:  pe.Status,
			Code:    pe.Code,
		}
	}
	return &ProviderError{Message: normalizeWhitespace(err.Error())}
}

// pkceMismatchSignatures are the known message fragments of a
// code-verifier mismatch, typically caused by the verifier cookie
// being written for a different host than the callback.
var pkceMismatchSignatures = []string{
	"code verifier",
	"code challenge does not match",
}

// IsPKCEMismatch reports whether err looks like a PKCE code-verifier
// mismatch. These are recoverable by clearing the auth cookies and
// retrying from a single tab on one host.
func IsPKCEMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range pkceMismatchSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// normalizeWhitespace collapses runs of whitespace (including
// newlines) into single spaces so messages are log- and URL-safe.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FriendlyAuthMessage maps provider error codes and descriptions on
// the callback URL to a human-readable reason. Unknown inputs get a
// generic, non-alarming fallback.
func FriendlyAuthMessage(errorCode, description string) string {
	switch errorCode {
	case "otp_expired":
		return "The sign-in link has expired. Please request a new one."
	case "access_denied":
		return "Sign-in was cancelled or denied by the provider."
	case "provider_email_needs_verification":
		return "Your email address needs to be verified with the provider first."
	}
	if description != "" {
		return normalizeWhitespace(description)
	}
	return "Could not complete sign-in. Please try again."
}
