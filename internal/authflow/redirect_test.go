package authflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeNext(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"absolute path passes through", "/dashboard", "/dashboard"},
		{"nested path passes through", "/dashboard/companies/42", "/dashboard/companies/42"},
		{"empty falls back", "", DefaultNextPath},
		{"protocol-relative rejected", "//evil.com", DefaultNextPath},
		{"protocol-relative with path rejected", "//evil.com/dashboard", DefaultNextPath},
		{"relative rejected", "relative", DefaultNextPath},
		{"absolute url rejected", "https://evil.com/", DefaultNextPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeNext(tt.raw))
		})
	}
}
