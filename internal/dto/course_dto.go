package dto

import "time"

type CourseCreateRequest struct {
	Code  string `json:"code" binding:"required"`
	Title string `json:"title" binding:"required"`
}

type CourseUpdateRequest struct {
	Code  string `json:"code" binding:"required"`
	Title string `json:"title" binding:"required"`
}

type CourseOutcomeCreateRequest struct {
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
}

type CourseResponse struct {
	ID        uint                    `json:"id"`
	Code      string                  `json:"code"`
	Title     string                  `json:"title"`
	Outcomes  []CourseOutcomeResponse `json:"outcomes,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

type CourseOutcomeResponse struct {
	ID          uint   `json:"id"`
	CourseID    uint   `json:"course_id"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}
