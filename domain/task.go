package domain

import "time"

// TaskStatus defines the possible statuses of a dashboard task.
type TaskStatus string

const (
	TaskStatusOpen    TaskStatus = "OPEN"
	TaskStatusWaiting TaskStatus = "WAITING"
	TaskStatusDone    TaskStatus = "DONE"
)

// Task is a follow-up item, optionally attached to a company.
type Task struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	CompanyID string     `bson:"company_id,omitempty" json:"companyId,omitempty"`
	Title     string     `bson:"title" json:"title"`
	Status    TaskStatus `bson:"status" json:"status"`
	DueAt     *time.Time `bson:"due_at,omitempty" json:"dueAt,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}
