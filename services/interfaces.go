// Package services holds the application services between the HTTP
// layer and the repositories.
package services

import (
	"context"

	"github.com/halcyonworks/mission-control/internal/scrape"
)

// Scraper abstracts the website fetcher so services can be tested
// without network access.
type Scraper interface {
	Fetch(ctx context.Context, url string) (*scrape.PageSummary, error)
}

// TextGenerator abstracts the model call used for audits and
// proposals.
type TextGenerator interface {
	Generate(ctx context.Context, instructions, input string) (string, error)
	Model() string
}

// PasswordHasher hashes and verifies portal passcodes.
type PasswordHasher interface {
	Hash(passcode string) (string, error)
	Verify(hashedPasscode, passcode string) error
}
