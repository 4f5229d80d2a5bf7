package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/halcyonworks/mission-control/domain"
)

func TestProposalService_Generate(t *testing.T) {
	ctx := context.Background()
	company := &domain.Company{ID: "c1", Name: "Acme", Website: "https://acme.example"}

	t.Run("IncludesAuditFindings", func(t *testing.T) {
		proposals := new(MockProposalRepository)
		companies := new(MockCompanyRepository)
		audits := new(MockAuditRepository)
		gen := new(MockTextGenerator)
		svc := NewProposalService(proposals, companies, audits, gen)

		companies.On("GetByID", ctx, "c1").Return(company, nil).Once()
		audits.On("ListByCompany", ctx, "c1").Return([]*domain.Audit{
			{ID: "a2", Status: domain.AuditStatusFailed},
			{ID: "a1", Status: domain.AuditStatusComplete, Body: "The hero headline is vague."},
		}, nil).Once()
		gen.On("Generate", ctx, mock.Anything, mock.MatchedBy(func(input string) bool {
			return strings.Contains(input, "Acme") &&
				strings.Contains(input, "The hero headline is vague.")
		})).Return("# Proposal", nil).Once()
		gen.On("Model").Return("gpt-4o-mini").Once()
		proposals.On("Create", ctx, mock.MatchedBy(func(p *domain.Proposal) bool {
			return p.Status == domain.ProposalStatusDraft && p.Body == "# Proposal"
		})).Return(nil).Once()

		proposal, err := svc.Generate(ctx, "c1", "Website Refresh", "prefers a quick turnaround")
		require.NoError(t, err)
		assert.Equal(t, "Website Refresh", proposal.Title)
		proposals.AssertExpectations(t)
	})

	t.Run("NoAuditStillGenerates", func(t *testing.T) {
		proposals := new(MockProposalRepository)
		companies := new(MockCompanyRepository)
		audits := new(MockAuditRepository)
		gen := new(MockTextGenerator)
		svc := NewProposalService(proposals, companies, audits, gen)

		companies.On("GetByID", ctx, "c1").Return(company, nil).Once()
		audits.On("ListByCompany", ctx, "c1").Return([]*domain.Audit{}, nil).Once()
		gen.On("Generate", ctx, mock.Anything, mock.Anything).Return("# Proposal", nil).Once()
		gen.On("Model").Return("gpt-4o-mini").Once()
		proposals.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.Generate(ctx, "c1", "Website Refresh", "")
		require.NoError(t, err)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		svc := NewProposalService(new(MockProposalRepository), new(MockCompanyRepository),
			new(MockAuditRepository), new(MockTextGenerator))

		_, err := svc.Generate(ctx, "c1", "  ", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestProposalService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	proposals := new(MockProposalRepository)
	svc := NewProposalService(proposals, new(MockCompanyRepository),
		new(MockAuditRepository), new(MockTextGenerator))

	proposals.On("GetByID", ctx, "p1").
		Return(&domain.Proposal{ID: "p1", Status: domain.ProposalStatusDraft}, nil).Once()
	proposals.On("Update", ctx, mock.MatchedBy(func(p *domain.Proposal) bool {
		return p.Status == domain.ProposalStatusSent
	})).Return(nil).Once()

	proposal, err := svc.UpdateStatus(ctx, "p1", domain.ProposalStatusSent)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusSent, proposal.Status)

	_, err = svc.UpdateStatus(ctx, "p1", "BOGUS")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
