package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/halcyonworks/mission-control/domain"
	"github.com/halcyonworks/mission-control/internal/scrape"
)

// --- Mock Implementations ---

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	args := m.Called(ctx, company)
	if company.ID == "" {
		company.ID = "mock-company-id"
	}
	return args.Error(0)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) List(ctx context.Context, stage domain.CompanyStage) ([]*domain.Company, error) {
	args := m.Called(ctx, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, audit *domain.Audit) error {
	args := m.Called(ctx, audit)
	if audit.ID == "" {
		audit.ID = "mock-audit-id"
	}
	return args.Error(0)
}

func (m *MockAuditRepository) GetByID(ctx context.Context, id string) (*domain.Audit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Audit), args.Error(1)
}

func (m *MockAuditRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Audit, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Audit), args.Error(1)
}

func (m *MockAuditRepository) Update(ctx context.Context, audit *domain.Audit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) Create(ctx context.Context, proposal *domain.Proposal) error {
	args := m.Called(ctx, proposal)
	if proposal.ID == "" {
		proposal.ID = "mock-proposal-id"
	}
	return args.Error(0)
}

func (m *MockProposalRepository) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}

func (m *MockProposalRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Proposal, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Proposal), args.Error(1)
}

func (m *MockProposalRepository) Update(ctx context.Context, proposal *domain.Proposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) CreateLead(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	if lead.ID == "" {
		lead.ID = "mock-lead-id"
	}
	return args.Error(0)
}

func (m *MockLeadRepository) ListLeads(ctx context.Context) ([]*domain.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lead), args.Error(1)
}

func (m *MockLeadRepository) Subscribe(ctx context.Context, sub *domain.NewsletterSubscriber) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

type MockPortalLinkRepository struct {
	mock.Mock
}

func (m *MockPortalLinkRepository) Create(ctx context.Context, link *domain.PortalLink) error {
	args := m.Called(ctx, link)
	if link.ID == "" {
		link.ID = "mock-link-id"
	}
	return args.Error(0)
}

func (m *MockPortalLinkRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PortalLink, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortalLink), args.Error(1)
}

func (m *MockPortalLinkRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.PortalLink, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PortalLink), args.Error(1)
}

func (m *MockPortalLinkRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

type MockScraper struct {
	mock.Mock
}

func (m *MockScraper) Fetch(ctx context.Context, url string) (*scrape.PageSummary, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrape.PageSummary), args.Error(1)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, instructions, input string) (string, error) {
	args := m.Called(ctx, instructions, input)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerator) Model() string {
	args := m.Called()
	return args.String(0)
}
