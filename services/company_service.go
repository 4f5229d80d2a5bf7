package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/halcyonworks/mission-control/domain"
)

var validStages = map[domain.CompanyStage]bool{
	domain.CompanyStageLead:       true,
	domain.CompanyStageContacted:  true,
	domain.CompanyStageProposal:   true,
	domain.CompanyStageActive:     true,
	domain.CompanyStageClosedLost: true,
}

// CompanyService manages the pipeline of prospects and clients.
type CompanyService struct {
	companies domain.CompanyRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companies domain.CompanyRepository) *CompanyService {
	return &CompanyService{companies: companies}
}

// CreateCompanyInput carries the fields an operator can set.
type CreateCompanyInput struct {
	Name         string              `json:"name"`
	Website      string              `json:"website"`
	ContactName  string              `json:"contactName"`
	ContactEmail string              `json:"contactEmail"`
	Stage        domain.CompanyStage `json:"stage"`
	Notes        string              `json:"notes"`
}

// Create validates the input and stores a new company. An empty stage
// defaults to LEAD.
func (s *CompanyService) Create(ctx context.Context, in CreateCompanyInput) (*domain.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Stage == "" {
		in.Stage = domain.CompanyStageLead
	}
	if !validStages[in.Stage] {
		return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, in.Stage)
	}

	company := &domain.Company{
		Name:         name,
		Website:      strings.TrimSpace(in.Website),
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		Stage:        in.Stage,
		Notes:        in.Notes,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Get returns a single company by id.
func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	return s.companies.GetByID(ctx, id)
}

// List returns companies, optionally filtered to one stage.
func (s *CompanyService) List(ctx context.Context, stage domain.CompanyStage) ([]*domain.Company, error) {
	if stage != "" && !validStages[stage] {
		return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, stage)
	}
	return s.companies.List(ctx, stage)
}

// Update applies the input on top of the stored company so omitted
// fields keep their current values.
func (s *CompanyService) Update(ctx context.Context, id string, in CreateCompanyInput) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		company.Name = name
	}
	if in.Website != "" {
		company.Website = strings.TrimSpace(in.Website)
	}
	if in.ContactName != "" {
		company.ContactName = strings.TrimSpace(in.ContactName)
	}
	if in.ContactEmail != "" {
		company.ContactEmail = strings.TrimSpace(in.ContactEmail)
	}
	if in.Stage != "" {
		if !validStages[in.Stage] {
			return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, in.Stage)
		}
		company.Stage = in.Stage
	}
	if in.Notes != "" {
		company.Notes = in.Notes
	}

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	return s.companies.Delete(ctx, id)
}
