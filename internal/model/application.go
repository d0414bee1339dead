package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusApplied indicates that the application is waiting for review
	ApplicationStatusApplied = "Applied"
	// ApplicationStatusAccepted indicates that the candidate got an offer
	ApplicationStatusAccepted = "Accepted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "Rejected"
)

// Application represents a job application record.
// The (user_id, job_id) pair carries a composite unique index so a duplicate
// submission fails at insert time instead of relying on a read-then-write check.
// UserID and JobID are plain references without foreign-key constraints:
// deleting a Job never cascades into its Applications, the snapshot fields
// below outlive the Job row.
type Application struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppliedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"applied_at"`
	Status    string    `gorm:"type:text" json:"status"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job" json:"user_id"`
	JobID  uint      `gorm:"not null;uniqueIndex:idx_applications_user_job" json:"job_id"`

	// Snapshot fields, kept even if the job is later deleted
	JobTitle string `gorm:"type:text" json:"job_title"`
	Company  string `gorm:"type:text" json:"company"`

	Resume FileRef `gorm:"type:text" json:"resume"`
}
