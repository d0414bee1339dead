package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User is the gorm model for every account: candidate, recruiter or admin.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"type:text;not null" json:"name"`
	Email    string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text" json:"-"`
	Role     Role      `gorm:"type:text;default:'candidate'" json:"role"`

	Skills pq.StringArray `gorm:"type:text[]" json:"skills"`
	Bio    string         `gorm:"type:text" json:"bio"`
	Avatar FileRef        `gorm:"type:text" json:"avatar"`
	Resume FileRef        `gorm:"type:text" json:"resume"`

	// SavedJobs holds IDs of jobs the user bookmarked
	SavedJobs pq.Int64Array `gorm:"type:bigint[]" json:"saved_jobs"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
