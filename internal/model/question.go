package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeSubjective = "subjective"
	QuestionTypeMCQ        = "mcq"
)

type Question struct {
	ID             uint             `gorm:"primarykey" json:"id"`
	PaperID        uint             `json:"paper_id" gorm:"not null;index"`
	Content        string           `json:"content" gorm:"type:text;not null"` // Opaque rich-text blob from the editor, never interpreted here
	Type           string           `json:"type" gorm:"not null"`
	Marks          *int             `json:"marks,omitempty"`
	COID           *uint            `json:"co_id,omitempty" gorm:"column:co_id"`
	SequenceNumber int              `json:"sequence_number" gorm:"not null"`
	Options        []QuestionOption `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"` // Soft delete keeps rejected drafts auditable
}
