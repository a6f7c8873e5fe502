package model

import (
	"time"

	"gorm.io/gorm"
)

type CourseOutcome struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	Code        string         `json:"code" gorm:"not null"` // "CO1", "CO2", ...
	Description string         `json:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
