package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Job is gorm model for store job listing data in DB.
// Company is a free-text name, not a reference to the Company model.
// PostedByID carries no foreign-key constraint: deleting a User leaves its
// jobs behind as tolerated orphan references.
type Job struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	PostedByID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"posted_by"`

	Title          string         `gorm:"type:text" json:"title"`
	Company        string         `gorm:"type:text" json:"company"`
	Location       string         `gorm:"type:text" json:"location"`
	Salary         string         `gorm:"type:text" json:"salary"`
	Description    string         `gorm:"type:text" json:"description"`
	RequiredSkills pq.StringArray `gorm:"type:text[]" json:"required_skills"`
	PostedAt       time.Time      `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"posted_at"`
}

// ScoredJob is a Job annotated with the requesting user's skill match percentage.
type ScoredJob struct {
	Job
	MatchPercentage int `json:"match_percentage"`
}

// PostedJob is a Job annotated with how many applications it received,
// returned by the recruiter dashboard listing.
type PostedJob struct {
	Job
	TotalApplied int64 `json:"total_applied"`
}
