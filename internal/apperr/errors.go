// Package apperr defines the typed failure values of the moderation workflow.
// Conflicts and precondition violations are routine outcomes surfaced to the
// UI, not system faults; callers branch on them with errors.Is / errors.As.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	// Precondition violations: rejected before any state mutation.
	ErrNotDraft                   = errors.New("paper is not editable in its current status")
	ErrNotSubmitted               = errors.New("paper is not awaiting moderation")
	ErrEmptyPaper                 = errors.New("paper has no active questions")
	ErrNotAuthor                  = errors.New("actor is not the paper's author")
	ErrMissingComments            = errors.New("rejection requires non-empty comments")
	ErrNotClaimedByModerator      = errors.New("moderator does not hold the active claim on this paper")
	ErrPaperNotClaimedByModerator = errors.New("moderator must claim the paper before claiming its questions")
	ErrNotOwner                   = errors.New("moderator does not own this claim")
	ErrDeleteForbidden            = errors.New("submitted papers can only be deleted by an administrator")

	// Conflicts: the target is already past the point the operation assumes.
	ErrPaperFinalized  = errors.New("paper is approved and immutable")
	ErrAlreadyResolved = errors.New("moderation record is already resolved")
)

// AlreadyClaimedError reports a claim conflict together with the moderator who
// holds the slot, so the caller can tell the user who is already reviewing.
type AlreadyClaimedError struct {
	TargetType  string
	TargetID    uint
	ModeratorID uint
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("%s %d is already claimed by moderator %d", e.TargetType, e.TargetID, e.ModeratorID)
}

// IsConflict reports whether err is an expected contention outcome rather than
// a caller mistake or an infrastructure failure.
func IsConflict(err error) bool {
	var ac *AlreadyClaimedError
	return errors.As(err, &ac) ||
		errors.Is(err, ErrPaperFinalized) ||
		errors.Is(err, ErrAlreadyResolved)
}
