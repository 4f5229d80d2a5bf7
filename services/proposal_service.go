package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/halcyonworks/mission-control/domain"
)

const proposalInstructions = `You are drafting a service proposal for a web consultancy.
Write a professional proposal in markdown with sections: Overview,
Scope of Work, Timeline, and Investment. Address the client by their
company name. Use the audit findings, when present, to justify the
scope. Do not invent prices; leave the Investment section as a
placeholder table.`

var validProposalStatuses = map[domain.ProposalStatus]bool{
	domain.ProposalStatusDraft:    true,
	domain.ProposalStatusSent:     true,
	domain.ProposalStatusAccepted: true,
	domain.ProposalStatusDeclined: true,
}

// ProposalService drafts proposals from company and audit context.
type ProposalService struct {
	proposals domain.ProposalRepository
	companies domain.CompanyRepository
	audits    domain.AuditRepository
	generator TextGenerator
}

// NewProposalService creates a new ProposalService.
func NewProposalService(
	proposals domain.ProposalRepository,
	companies domain.CompanyRepository,
	audits domain.AuditRepository,
	generator TextGenerator,
) *ProposalService {
	return &ProposalService{
		proposals: proposals,
		companies: companies,
		audits:    audits,
		generator: generator,
	}
}

// Generate drafts a proposal for a company. The most recent complete
// audit, if any, is fed into the prompt as supporting context.
func (s *ProposalService) Generate(ctx context.Context, companyID, title, notes string) (*domain.Proposal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var input strings.Builder
	fmt.Fprintf(&input, "Client: %s\n", company.Name)
	if company.Website != "" {
		fmt.Fprintf(&input, "Website: %s\n", company.Website)
	}
	fmt.Fprintf(&input, "Proposal title: %s\n", title)
	if notes = strings.TrimSpace(notes); notes != "" {
		fmt.Fprintf(&input, "Operator notes: %s\n", notes)
	}
	if audit := s.latestCompleteAudit(ctx, company.ID); audit != nil {
		fmt.Fprintf(&input, "\nAudit findings:\n%s\n", audit.Body)
	}

	body, err := s.generator.Generate(ctx, proposalInstructions, input.String())
	if err != nil {
		return nil, fmt.Errorf("generating proposal: %w", err)
	}

	proposal := &domain.Proposal{
		CompanyID: company.ID,
		Title:     title,
		Body:      body,
		Model:     s.generator.Model(),
		Status:    domain.ProposalStatusDraft,
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

func (s *ProposalService) latestCompleteAudit(ctx context.Context, companyID string) *domain.Audit {
	audits, err := s.audits.ListByCompany(ctx, companyID)
	if err != nil {
		return nil
	}
	for _, a := range audits {
		if a.Status == domain.AuditStatusComplete {
			return a
		}
	}
	return nil
}

// Get returns a single proposal by id.
func (s *ProposalService) Get(ctx context.Context, id string) (*domain.Proposal, error) {
	return s.proposals.GetByID(ctx, id)
}

// ListByCompany returns a company's proposals, newest first.
func (s *ProposalService) ListByCompany(ctx context.Context, companyID string) ([]*domain.Proposal, error) {
	return s.proposals.ListByCompany(ctx, companyID)
}

// UpdateStatus moves a proposal to a new status.
func (s *ProposalService) UpdateStatus(ctx context.Context, id string, status domain.ProposalStatus) (*domain.Proposal, error) {
	if !validProposalStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	proposal, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	proposal.Status = status
	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}
