package domain

import "time"

// ProposalStatus tracks a proposal from draft to decision.
type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "DRAFT"
	ProposalStatusSent     ProposalStatus = "SENT"
	ProposalStatusAccepted ProposalStatus = "ACCEPTED"
	ProposalStatusDeclined ProposalStatus = "DECLINED"
)

// Proposal is a generated service proposal for a company.
type Proposal struct {
	ID        string         `bson:"_id,omitempty" json:"id"`
	CompanyID string         `bson:"company_id" json:"companyId"`
	Title     string         `bson:"title" json:"title"`
	Body      string         `bson:"body,omitempty" json:"body,omitempty"`
	Model     string         `bson:"model,omitempty" json:"model,omitempty"`
	Status    ProposalStatus `bson:"status" json:"status"`
	CreatedAt time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updatedAt"`
}
