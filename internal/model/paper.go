package model

import (
	"time"

	"gorm.io/gorm"
)

// Paper moderation statuses.
const (
	PaperStatusDraft           = "draft"
	PaperStatusSubmitted       = "submitted"
	PaperStatusUnderReview     = "under_review"
	PaperStatusChangeRequested = "change_requested"
	PaperStatusApproved        = "approved"
)

type Paper struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	Course      Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	AuthorID    uint           `json:"author_id" gorm:"not null;index"`
	Status      string         `json:"status" gorm:"not null;default:'draft';index"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"` // Stamped on every submit; scopes rejection aggregation to the current review cycle
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:PaperID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Editable reports whether the author may still change the paper's structure.
func (p *Paper) Editable() bool {
	return p.Status == PaperStatusDraft || p.Status == PaperStatusChangeRequested
}
