package model

import (
	"time"
)

// Moderation claim targets.
const (
	TargetTypePaper    = "paper"
	TargetTypeQuestion = "question"
)

// Moderation record statuses. "released" frees the claim slot without counting
// as an approval or rejection.
const (
	RecordStatusClaimed  = "claimed"
	RecordStatusApproved = "approved"
	RecordStatusRejected = "rejected"
	RecordStatusReleased = "released"
)

// ModerationRecord is one entry in the moderation ledger. Records are never
// deleted; a resolved record is immutable history and corrections show up as
// new records. The partial unique index keeps at most one record in status
// "claimed" per target, which is the mutual-exclusion invariant of the whole
// review workflow.
type ModerationRecord struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	TargetType  string     `json:"target_type" gorm:"not null;index:idx_moderation_active_target,unique,where:status = 'claimed',priority:1"`
	TargetID    uint       `json:"target_id" gorm:"not null;index:idx_moderation_active_target,unique,where:status = 'claimed',priority:2"`
	ModeratorID uint       `json:"moderator_id" gorm:"not null;index"`
	Status      string     `json:"status" gorm:"not null;default:'claimed'"`
	Comments    string     `json:"comments,omitempty" gorm:"type:text"`
	ClaimedAt   time.Time  `json:"claimed_at" gorm:"not null"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Resolved reports whether the record reached a terminal state.
func (r *ModerationRecord) Resolved() bool {
	return r.Status != RecordStatusClaimed
}
