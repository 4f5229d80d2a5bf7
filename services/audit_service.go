package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/halcyonworks/mission-control/domain"
	"github.com/halcyonworks/mission-control/internal/scrape"
)

const auditInstructions = `You are a senior web consultant reviewing a small-business website.
Write a concise audit in markdown with these sections: First Impressions,
Messaging, Design and Usability, SEO Basics, and Top 3 Recommendations.
Be specific and constructive. Base everything on the page content provided.`

// AuditService runs website audits: fetch the page, summarize it and
// generate a written review.
type AuditService struct {
	audits    domain.AuditRepository
	companies domain.CompanyRepository
	scraper   Scraper
	generator TextGenerator
}

// NewAuditService creates a new AuditService.
func NewAuditService(
	audits domain.AuditRepository,
	companies domain.CompanyRepository,
	scraper Scraper,
	generator TextGenerator,
) *AuditService {
	return &AuditService{
		audits:    audits,
		companies: companies,
		scraper:   scraper,
		generator: generator,
	}
}

// Generate runs a synchronous audit for a company. The audit document
// is created PENDING up front so a crash mid-generation still leaves a
// visible record; scrape or model failures are recorded on the audit
// as FAILED rather than surfaced as an error.
func (s *AuditService) Generate(ctx context.Context, companyID, sourceURL string) (*domain.Audit, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		sourceURL = company.Website
	}
	if sourceURL == "" {
		return nil, fmt.Errorf("%w: company has no website and no source URL was given", ErrInvalidInput)
	}

	audit := &domain.Audit{
		CompanyID: company.ID,
		SourceURL: sourceURL,
		Status:    domain.AuditStatusPending,
	}
	if err := s.audits.Create(ctx, audit); err != nil {
		return nil, err
	}

	page, err := s.scraper.Fetch(ctx, sourceURL)
	if err != nil {
		return s.fail(ctx, audit, fmt.Sprintf("fetching %s: %v", sourceURL, err))
	}
	audit.ScrapedSummary = page.PromptText()

	body, err := s.generator.Generate(ctx, auditInstructions, audit.ScrapedSummary)
	if err != nil {
		return s.fail(ctx, audit, fmt.Sprintf("generating audit: %v", err))
	}

	audit.Body = body
	audit.Model = s.generator.Model()
	audit.Status = domain.AuditStatusComplete
	audit.FailureReason = ""
	if err := s.audits.Update(ctx, audit); err != nil {
		return nil, err
	}
	return audit, nil
}

func (s *AuditService) fail(ctx context.Context, audit *domain.Audit, reason string) (*domain.Audit, error) {
	log.Warn().Str("auditID", audit.ID).Str("reason", reason).Msg("Audit generation failed")
	audit.Status = domain.AuditStatusFailed
	audit.FailureReason = reason
	if err := s.audits.Update(ctx, audit); err != nil {
		return nil, err
	}
	return audit, nil
}

// Preview fetches and summarizes a page without creating an audit,
// so the operator can sanity-check a URL first.
func (s *AuditService) Preview(ctx context.Context, url string) (*scrape.PageSummary, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	return s.scraper.Fetch(ctx, url)
}

// Get returns a single audit by id.
func (s *AuditService) Get(ctx context.Context, id string) (*domain.Audit, error) {
	return s.audits.GetByID(ctx, id)
}

// ListByCompany returns a company's audits, newest first.
func (s *AuditService) ListByCompany(ctx context.Context, companyID string) ([]*domain.Audit, error) {
	return s.audits.ListByCompany(ctx, companyID)
}
