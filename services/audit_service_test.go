package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/halcyonworks/mission-control/domain"
	"github.com/halcyonworks/mission-control/internal/scrape"
)

func TestAuditService_Generate(t *testing.T) {
	ctx := context.Background()
	company := &domain.Company{ID: "c1", Name: "Acme", Website: "https://acme.example"}

	t.Run("Success", func(t *testing.T) {
		audits := new(MockAuditRepository)
		companies := new(MockCompanyRepository)
		scraper := new(MockScraper)
		gen := new(MockTextGenerator)
		svc := NewAuditService(audits, companies, scraper, gen)

		companies.On("GetByID", ctx, "c1").Return(company, nil).Once()
		audits.On("Create", ctx, mock.AnythingOfType("*domain.Audit")).Return(nil).Once()
		scraper.On("Fetch", ctx, "https://acme.example").Return(&scrape.PageSummary{
			URL:   "https://acme.example",
			Title: "Acme Plumbing",
		}, nil).Once()
		gen.On("Generate", ctx, mock.Anything, mock.Anything).Return("# Audit\nLooks fine.", nil).Once()
		gen.On("Model").Return("gpt-4o-mini").Once()
		audits.On("Update", ctx, mock.MatchedBy(func(a *domain.Audit) bool {
			return a.Status == domain.AuditStatusComplete && a.Body != "" && a.Model == "gpt-4o-mini"
		})).Return(nil).Once()

		audit, err := svc.Generate(ctx, "c1", "")
		require.NoError(t, err)
		assert.Equal(t, domain.AuditStatusComplete, audit.Status)
		assert.Equal(t, "https://acme.example", audit.SourceURL)
		assert.Empty(t, audit.FailureReason)
		audits.AssertExpectations(t)
	})

	t.Run("ScrapeFailureRecordedOnAudit", func(t *testing.T) {
		audits := new(MockAuditRepository)
		companies := new(MockCompanyRepository)
		scraper := new(MockScraper)
		gen := new(MockTextGenerator)
		svc := NewAuditService(audits, companies, scraper, gen)

		companies.On("GetByID", ctx, "c1").Return(company, nil).Once()
		audits.On("Create", ctx, mock.AnythingOfType("*domain.Audit")).Return(nil).Once()
		scraper.On("Fetch", ctx, "https://acme.example").
			Return(nil, errors.New("connection refused")).Once()
		audits.On("Update", ctx, mock.MatchedBy(func(a *domain.Audit) bool {
			return a.Status == domain.AuditStatusFailed && a.FailureReason != ""
		})).Return(nil).Once()

		audit, err := svc.Generate(ctx, "c1", "")
		require.NoError(t, err)
		assert.Equal(t, domain.AuditStatusFailed, audit.Status)
		assert.Contains(t, audit.FailureReason, "connection refused")
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("GeneratorFailureRecordedOnAudit", func(t *testing.T) {
		audits := new(MockAuditRepository)
		companies := new(MockCompanyRepository)
		scraper := new(MockScraper)
		gen := new(MockTextGenerator)
		svc := NewAuditService(audits, companies, scraper, gen)

		companies.On("GetByID", ctx, "c1").Return(company, nil).Once()
		audits.On("Create", ctx, mock.AnythingOfType("*domain.Audit")).Return(nil).Once()
		scraper.On("Fetch", ctx, "https://acme.example").
			Return(&scrape.PageSummary{URL: "https://acme.example"}, nil).Once()
		gen.On("Generate", ctx, mock.Anything, mock.Anything).
			Return("", errors.New("model overloaded")).Once()
		audits.On("Update", ctx, mock.MatchedBy(func(a *domain.Audit) bool {
			return a.Status == domain.AuditStatusFailed
		})).Return(nil).Once()

		audit, err := svc.Generate(ctx, "c1", "")
		require.NoError(t, err)
		assert.Equal(t, domain.AuditStatusFailed, audit.Status)
		assert.Contains(t, audit.FailureReason, "model overloaded")
	})

	t.Run("NoWebsiteAnywhere", func(t *testing.T) {
		audits := new(MockAuditRepository)
		companies := new(MockCompanyRepository)
		svc := NewAuditService(audits, companies, new(MockScraper), new(MockTextGenerator))

		companies.On("GetByID", ctx, "c2").
			Return(&domain.Company{ID: "c2", Name: "No Site"}, nil).Once()

		_, err := svc.Generate(ctx, "c2", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
		audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ExplicitSourceURLWins", func(t *testing.T) {
		audits := new(MockAuditRepository)
		companies := new(MockCompanyRepository)
		scraper := new(MockScraper)
		gen := new(MockTextGenerator)
		svc := NewAuditService(audits, companies, scraper, gen)

		companies.On("GetByID", ctx, "c1").Return(company, nil).Once()
		audits.On("Create", ctx, mock.Anything).Return(nil).Once()
		scraper.On("Fetch", ctx, "https://other.example/landing").
			Return(&scrape.PageSummary{URL: "https://other.example/landing"}, nil).Once()
		gen.On("Generate", ctx, mock.Anything, mock.Anything).Return("body", nil).Once()
		gen.On("Model").Return("gpt-4o-mini").Once()
		audits.On("Update", ctx, mock.Anything).Return(nil).Once()

		audit, err := svc.Generate(ctx, "c1", "https://other.example/landing")
		require.NoError(t, err)
		assert.Equal(t, "https://other.example/landing", audit.SourceURL)
	})
}
