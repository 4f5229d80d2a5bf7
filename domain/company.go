package domain

import "time"

// CompanyStage defines where a company sits in the pipeline.
type CompanyStage string

const (
	CompanyStageLead       CompanyStage = "LEAD"
	CompanyStageContacted  CompanyStage = "CONTACTED"
	CompanyStageProposal   CompanyStage = "PROPOSAL"
	CompanyStageActive     CompanyStage = "ACTIVE"
	CompanyStageClosedLost CompanyStage = "CLOSED_LOST"
)

// Company is a prospect or client managed from the dashboard.
type Company struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	Name         string       `bson:"name" json:"name"`
	Website      string       `bson:"website,omitempty" json:"website,omitempty"`
	ContactName  string       `bson:"contact_name,omitempty" json:"contactName,omitempty"`
	ContactEmail string       `bson:"contact_email,omitempty" json:"contactEmail,omitempty"`
	Stage        CompanyStage `bson:"stage" json:"stage"`
	Notes        string       `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updated_at" json:"updatedAt"`
}
