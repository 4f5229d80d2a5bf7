package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/halcyonworks/mission-control/domain"
)

// LeadService captures contacts from the public landing page.
type LeadService struct {
	leads domain.LeadRepository
}

// NewLeadService creates a new LeadService.
func NewLeadService(leads domain.LeadRepository) *LeadService {
	return &LeadService{leads: leads}
}

// CaptureLeadInput is the public lead form payload.
type CaptureLeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// Capture validates and stores a lead.
func (s *LeadService) Capture(ctx context.Context, in CaptureLeadInput) (*domain.Lead, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	lead := &domain.Lead{
		Name:    name,
		Email:   email,
		Company: strings.TrimSpace(in.Company),
		Message: strings.TrimSpace(in.Message),
		Source:  strings.TrimSpace(in.Source),
	}
	if err := s.leads.CreateLead(ctx, lead); err != nil {
		return nil, err
	}
	log.Info().Str("email", email).Str("source", lead.Source).Msg("Lead captured")
	return lead, nil
}

// ListLeads returns all captured leads, newest first.
func (s *LeadService) ListLeads(ctx context.Context) ([]*domain.Lead, error) {
	return s.leads.ListLeads(ctx)
}

// Subscribe records a newsletter signup. Repeat signups for the same
// address are silently accepted.
func (s *LeadService) Subscribe(ctx context.Context, email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	return s.leads.Subscribe(ctx, &domain.NewsletterSubscriber{Email: normalized})
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: malformed email address", ErrInvalidInput)
	}
	return email, nil
}
