package dto

// ErrorResponse is the uniform error body. ClaimedBy is set on claim conflicts
// so the UI can name the moderator already reviewing the target.
type ErrorResponse struct {
	Message   string   `json:"message"`
	Details   []string `json:"details,omitempty"`
	ClaimedBy *uint    `json:"claimed_by,omitempty"`
}

// MessageResponse is a minimal acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
