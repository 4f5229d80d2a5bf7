package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a document does not
// exist. Callers translate it into a 404 at the HTTP boundary.
var ErrNotFound = errors.New("not found")

// CompanyRepository persists companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	List(ctx context.Context, stage CompanyStage) ([]*Company, error)
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id string) error
}

// TaskRepository persists tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	ListByCompany(ctx context.Context, companyID string) ([]*Task, error)
	ListOpen(ctx context.Context) ([]*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error
}

// AuditRepository persists website audits.
type AuditRepository interface {
	Create(ctx context.Context, audit *Audit) error
	GetByID(ctx context.Context, id string) (*Audit, error)
	ListByCompany(ctx context.Context, companyID string) ([]*Audit, error)
	Update(ctx context.Context, audit *Audit) error
}

// ProposalRepository persists proposals.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *Proposal) error
	GetByID(ctx context.Context, id string) (*Proposal, error)
	ListByCompany(ctx context.Context, companyID string) ([]*Proposal, error)
	Update(ctx context.Context, proposal *Proposal) error
}

// LeadRepository persists captured leads and newsletter signups.
type LeadRepository interface {
	CreateLead(ctx context.Context, lead *Lead) error
	ListLeads(ctx context.Context) ([]*Lead, error)
	Subscribe(ctx context.Context, sub *NewsletterSubscriber) error
}

// ProfileRepository persists the synced operator profile.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
}

// PortalLinkRepository persists client portal share links.
type PortalLinkRepository interface {
	Create(ctx context.Context, link *PortalLink) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*PortalLink, error)
	ListByCompany(ctx context.Context, companyID string) ([]*PortalLink, error)
	Revoke(ctx context.Context, id string) error
}
