package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Code      string          `json:"code" gorm:"not null;uniqueIndex"` // "CS301"
	Title     string          `json:"title" gorm:"not null"`
	Outcomes  []CourseOutcome `json:"outcomes,omitempty" gorm:"foreignKey:CourseID"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}
