// Package scrape fetches a prospect's website and extracts the text
// an audit is grounded on. The fetch is the only cancellable outbound
// call in the system: it runs under an explicit timeout and aborts on
// expiry.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxBodyText caps how much page text ends up in the summary so a
// pathological page cannot blow up prompt size.
const maxBodyText = 4000

// PageSummary is what the audit prompt is built from.
type PageSummary struct {
	URL         string
	Title       string
	Description string
	Headings    []string
	BodyText    string
}

// Scraper fetches and summarizes pages.
type Scraper struct {
	http    *http.Client
	timeout time.Duration
}

// New creates a Scraper. The timeout bounds the whole fetch,
// typically ~12 seconds.
func New(timeout time.Duration) *Scraper {
	return &Scraper{
		http:    &http.Client{},
		timeout: timeout,
	}
}

// Fetch downloads url and extracts title, meta description, headings,
// and trimmed body text. The request is aborted when the timeout
// elapses.
func (s *Scraper) Fetch(ctx context.Context, url string) (*PageSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("scrape: build request: %w", err)
	}
	req.Header.Set("User-Agent", "mission-control-audit/1.0")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrape: fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scrape: parse %s: %w", url, err)
	}

	summary := &PageSummary{
		URL:   url,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		summary.Description = strings.TrimSpace(desc)
	}
	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			summary.Headings = append(summary.Headings, text)
		}
	})

	doc.Find("script, style, noscript").Remove()
	body := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if len(body) > maxBodyText {
		body = body[:maxBodyText]
	}
	summary.BodyText = body

	return summary, nil
}

// PromptText renders the summary for the generation prompt.
func (p *PageSummary) PromptText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n", p.URL)
	if p.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", p.Title)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", p.Description)
	}
	if len(p.Headings) > 0 {
		fmt.Fprintf(&b, "Headings: %s\n", strings.Join(p.Headings, " | "))
	}
	if p.BodyText != "" {
		fmt.Fprintf(&b, "Content: %s\n", p.BodyText)
	}
	return b.String()
}
