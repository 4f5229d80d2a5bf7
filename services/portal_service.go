package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/halcyonworks/mission-control/cache"
	"github.com/halcyonworks/mission-control/domain"
)

// DefaultPortalLinkTTL is how long a share link stays valid when the
// operator does not pick a duration.
const DefaultPortalLinkTTL = 30 * 24 * time.Hour

// PortalService issues and validates client share links. Only the
// sha256 of the token and the bcrypt of the passcode are stored; the
// raw values exist once, in the issue response.
type PortalService struct {
	links     domain.PortalLinkRepository
	companies domain.CompanyRepository
	audits    domain.AuditRepository
	proposals domain.ProposalRepository
	hasher    PasswordHasher
}

// NewPortalService creates a new PortalService.
func NewPortalService(
	links domain.PortalLinkRepository,
	companies domain.CompanyRepository,
	audits domain.AuditRepository,
	proposals domain.ProposalRepository,
	hasher PasswordHasher,
) *PortalService {
	return &PortalService{
		links:     links,
		companies: companies,
		audits:    audits,
		proposals: proposals,
		hasher:    hasher,
	}
}

// IssuedLink is the one-time response containing the raw share token.
type IssuedLink struct {
	Token string             `json:"token"`
	Link  *domain.PortalLink `json:"link"`
}

// Issue creates a share link for a company. The passcode is optional;
// when empty the token alone grants access.
func (s *PortalService) Issue(ctx context.Context, companyID, passcode string, ttl time.Duration) (*IssuedLink, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultPortalLinkTTL
	}

	token := uuid.NewString()
	link := &domain.PortalLink{
		CompanyID: company.ID,
		TokenHash: cache.HashToken(token),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if passcode != "" {
		hash, err := s.hasher.Hash(passcode)
		if err != nil {
			return nil, fmt.Errorf("hashing passcode: %w", err)
		}
		link.PasscodeHash = hash
	}

	if err := s.links.Create(ctx, link); err != nil {
		return nil, err
	}
	log.Info().Str("companyID", company.ID).Time("expiresAt", link.ExpiresAt).Msg("Portal link issued")
	return &IssuedLink{Token: token, Link: link}, nil
}

// Access validates a raw token and passcode pair. Every failure mode
// returns ErrPortalDenied.
func (s *PortalService) Access(ctx context.Context, token, passcode string) (*domain.PortalLink, error) {
	link, err := s.links.GetByTokenHash(ctx, cache.HashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrPortalDenied
		}
		return nil, err
	}
	if link.Revoked || time.Now().UTC().After(link.ExpiresAt) {
		return nil, ErrPortalDenied
	}
	if link.PasscodeHash != "" {
		if err := s.hasher.Verify(link.PasscodeHash, passcode); err != nil {
			return nil, ErrPortalDenied
		}
	}
	return link, nil
}

// Overview is what a client sees through their share link. Draft
// proposals and failed audits stay internal.
type Overview struct {
	Company   *domain.Company    `json:"company"`
	Audits    []*domain.Audit    `json:"audits"`
	Proposals []*domain.Proposal `json:"proposals"`
}

// Overview assembles the client-facing view for a validated link.
func (s *PortalService) Overview(ctx context.Context, link *domain.PortalLink) (*Overview, error) {
	company, err := s.companies.GetByID(ctx, link.CompanyID)
	if err != nil {
		return nil, err
	}

	audits, err := s.audits.ListByCompany(ctx, link.CompanyID)
	if err != nil {
		return nil, err
	}
	complete := make([]*domain.Audit, 0, len(audits))
	for _, a := range audits {
		if a.Status == domain.AuditStatusComplete {
			complete = append(complete, a)
		}
	}

	proposals, err := s.proposals.ListByCompany(ctx, link.CompanyID)
	if err != nil {
		return nil, err
	}
	shared := make([]*domain.Proposal, 0, len(proposals))
	for _, p := range proposals {
		if p.Status != domain.ProposalStatusDraft {
			shared = append(shared, p)
		}
	}

	return &Overview{Company: company, Audits: complete, Proposals: shared}, nil
}

// ListByCompany returns a company's share links for the dashboard.
func (s *PortalService) ListByCompany(ctx context.Context, companyID string) ([]*domain.PortalLink, error) {
	return s.links.ListByCompany(ctx, companyID)
}

// Revoke invalidates a share link.
func (s *PortalService) Revoke(ctx context.Context, id string) error {
	return s.links.Revoke(ctx, id)
}
