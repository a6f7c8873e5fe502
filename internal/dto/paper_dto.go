package dto

import "time"

// PaperCreateRequest is for an instructor creating a new draft paper.
type PaperCreateRequest struct {
	Title    string `json:"title" binding:"required"`
	CourseID uint   `json:"course_id" binding:"required"`
}

// PaperUpdateRequest updates draft-editable paper metadata.
type PaperUpdateRequest struct {
	Title string `json:"title" binding:"required"`
}

type PaperResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	CourseID    uint               `json:"course_id"`
	AuthorID    uint               `json:"author_id"`
	Status      string             `json:"status"`
	SubmittedAt *time.Time         `json:"submitted_at,omitempty"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// PaperSummaryResponse is used for dashboard listings.
type PaperSummaryResponse struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	CourseID      uint       `json:"course_id"`
	AuthorID      uint       `json:"author_id"`
	Status        string     `json:"status"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	QuestionCount int        `json:"question_count"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PaperStatusResponse is the live status projection for a paper: the stored
// coarse status plus per-question moderation state derived from the ledger.
type PaperStatusResponse struct {
	PaperID       uint                      `json:"paper_id"`
	Status        string                    `json:"status"`
	ActiveClaim   *ModerationRecordResponse `json:"active_claim,omitempty"`
	Questions     []QuestionModerationState `json:"questions"`
	ApprovedCount int                       `json:"approved_count"`
	RejectedCount int                       `json:"rejected_count"`
	PendingCount  int                       `json:"pending_count"`
}

// QuestionModerationState is the ledger-derived review state of one question
// within the paper's current review cycle.
type QuestionModerationState struct {
	QuestionID     uint   `json:"question_id"`
	SequenceNumber int    `json:"sequence_number"`
	State          string `json:"state"` // "pending", "claimed", "approved", "rejected"
	ModeratorID    *uint  `json:"moderator_id,omitempty"`
	Comments       string `json:"comments,omitempty"`
}

// PaperExportResponse is the finalized view handed to the external PDF
// renderer: metadata plus the ordered active question list.
type PaperExportResponse struct {
	PaperID     uint                     `json:"paper_id"`
	Title       string                   `json:"title"`
	Status      string                   `json:"status"`
	Course      CourseResponse           `json:"course"`
	AuthorID    uint                     `json:"author_id"`
	SubmittedAt *time.Time               `json:"submitted_at,omitempty"`
	TotalMarks  int                      `json:"total_marks"`
	Questions   []QuestionExportResponse `json:"questions"`
	GeneratedAt time.Time                `json:"generated_at"`
}

type QuestionExportResponse struct {
	SequenceNumber int              `json:"sequence_number"`
	Content        string           `json:"content"`
	Type           string           `json:"type"`
	Marks          *int             `json:"marks,omitempty"`
	OutcomeCode    string           `json:"outcome_code,omitempty"`
	Options        []OptionResponse `json:"options,omitempty"`
}
