package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!doctype html>
<html>
<head>
  <title> Acme Plumbing </title>
  <meta name="description" content="Plumbing for the whole valley.">
  <style>body { color: red }</style>
</head>
<body>
  <h1>Acme Plumbing</h1>
  <h2>Emergency callouts</h2>
  <script>console.log("tracking")</script>
  <p>We fix leaks fast.</p>
</body>
</html>`

func TestFetch_ExtractsSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	s := New(5 * time.Second)
	summary, err := s.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Acme Plumbing", summary.Title)
	assert.Equal(t, "Plumbing for the whole valley.", summary.Description)
	assert.Equal(t, []string{"Acme Plumbing", "Emergency callouts"}, summary.Headings)
	assert.Contains(t, summary.BodyText, "We fix leaks fast.")
	assert.NotContains(t, summary.BodyText, "tracking", "script content must be stripped")

	prompt := summary.PromptText()
	assert.Contains(t, prompt, "Title: Acme Plumbing")
	assert.Contains(t, prompt, "Headings: Acme Plumbing | Emergency callouts")
}

func TestFetch_TimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	s := New(50 * time.Millisecond)
	start := time.Now()
	_, err := s.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second, "fetch must abort on timeout")
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := New(time.Second)
	_, err := s.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
