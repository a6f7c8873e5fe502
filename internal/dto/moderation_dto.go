package dto

import "time"

// RejectRequest carries the mandatory reviewer comments for a rejection.
type RejectRequest struct {
	Comments string `json:"comments" binding:"required"`
}

// ReleaseClaimRequest voluntarily abandons a claim without resolving it.
type ReleaseClaimRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=paper question"`
	TargetID   uint   `json:"target_id" binding:"required"`
}

type ModerationRecordResponse struct {
	ID          uint       `json:"id"`
	TargetType  string     `json:"target_type"`
	TargetID    uint       `json:"target_id"`
	ModeratorID uint       `json:"moderator_id"`
	Status      string     `json:"status"`
	Comments    string     `json:"comments,omitempty"`
	ClaimedAt   time.Time  `json:"claimed_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}
