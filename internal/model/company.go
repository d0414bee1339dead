package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is gorm model for a recruiter-managed company profile.
// Jobs reference companies by free-text name only, so deleting a Company
// never cascades into Job rows.
type Company struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	RecruiterID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"recruiter_id"`

	Name        string    `gorm:"type:text;not null" json:"name"`
	Location    string    `gorm:"type:text" json:"location"`
	Website     string    `gorm:"type:text" json:"website"`
	Description string    `gorm:"type:text" json:"description"`
	Logo        FileRef   `gorm:"type:text" json:"logo"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
