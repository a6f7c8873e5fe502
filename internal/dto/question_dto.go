package dto

import "time"

// OptionRequest is one MCQ option within a question payload.
type OptionRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionRequest is for adding or updating a question on a draft paper.
// Options are only meaningful for type "mcq" and are validated in the service
// (at least two, exactly one correct).
type QuestionRequest struct {
	Content string          `json:"content" binding:"required"`
	Type    string          `json:"type" binding:"required,oneof=subjective mcq"`
	Marks   *int            `json:"marks" binding:"omitempty,min=0"`
	COID    *uint           `json:"co_id"`
	Options []OptionRequest `json:"options" binding:"omitempty,dive"`
}

// QuestionReorderRequest sets the full display order of a paper's active
// questions. The id list must match the active question set exactly.
type QuestionReorderRequest struct {
	QuestionIDs []uint `json:"question_ids" binding:"required,min=1"`
}

type OptionResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Position  int    `json:"position"`
}

type QuestionResponse struct {
	ID             uint             `json:"id"`
	PaperID        uint             `json:"paper_id"`
	Content        string           `json:"content"`
	Type           string           `json:"type"`
	Marks          *int             `json:"marks,omitempty"`
	COID           *uint            `json:"co_id,omitempty"`
	SequenceNumber int              `json:"sequence_number"`
	Options        []OptionResponse `json:"options,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
