package domain

import "time"

// AuditStatus tracks the lifecycle of a website audit.
type AuditStatus string

const (
	AuditStatusPending  AuditStatus = "PENDING"
	AuditStatusComplete AuditStatus = "COMPLETE"
	AuditStatusFailed   AuditStatus = "FAILED"
)

// Audit is a generated website review for a company. The scraped
// summary is what was extracted from the site; the body is the
// generated markdown.
type Audit struct {
	ID             string      `bson:"_id,omitempty" json:"id"`
	CompanyID      string      `bson:"company_id" json:"companyId"`
	SourceURL      string      `bson:"source_url" json:"sourceUrl"`
	ScrapedSummary string      `bson:"scraped_summary,omitempty" json:"scrapedSummary,omitempty"`
	Body           string      `bson:"body,omitempty" json:"body,omitempty"`
	Model          string      `bson:"model,omitempty" json:"model,omitempty"`
	Status         AuditStatus `bson:"status" json:"status"`
	FailureReason  string      `bson:"failure_reason,omitempty" json:"failureReason,omitempty"`
	CreatedAt      time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `bson:"updated_at" json:"updatedAt"`
}
