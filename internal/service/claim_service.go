package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/Margay/internal/apperr"
	"github.com/lshigami/Margay/internal/dto"
	"github.com/lshigami/Margay/internal/model"
	"github.com/lshigami/Margay/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ClaimService mediates moderator custody over papers and their questions.
// Claim conflicts are routine outcomes: callers surface them as "already being
// reviewed by X" and never retry automatically.
type ClaimService interface {
	ClaimPaper(paperID, moderatorID uint) (*dto.ModerationRecordResponse, error)
	ClaimQuestion(paperID, questionID, moderatorID uint) (*dto.ModerationRecordResponse, error)
	ReleaseClaim(targetType string, targetID, moderatorID uint) error
}

type claimService struct {
	paperRepo    repository.PaperRepository
	questionRepo repository.QuestionRepository
	recordRepo   repository.ModerationRecordRepository
}

func NewClaimService(
	paperRepo repository.PaperRepository,
	questionRepo repository.QuestionRepository,
	recordRepo repository.ModerationRecordRepository,
) ClaimService {
	return &claimService{paperRepo: paperRepo, questionRepo: questionRepo, recordRepo: recordRepo}
}

func (s *claimService) ClaimPaper(paperID, moderatorID uint) (*dto.ModerationRecordResponse, error) {
	paper, err := s.paperRepo.FindByID(paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("loading paper %d: %w", paperID, err)
	}

	switch paper.Status {
	case model.PaperStatusApproved:
		return nil, apperr.ErrPaperFinalized
	case model.PaperStatusUnderReview:
		// Continuation by the holding moderator is idempotent; anyone else
		// gets the conflict with the holder's identity.
		active, activeErr := s.recordRepo.FindActiveByTarget(model.TargetTypePaper, paperID)
		if activeErr == nil && active.ModeratorID == moderatorID {
			return recordToDTO(active), nil
		}
		if activeErr == nil {
			return nil, &apperr.AlreadyClaimedError{
				TargetType:  model.TargetTypePaper,
				TargetID:    paperID,
				ModeratorID: active.ModeratorID,
			}
		}
		if !errors.Is(activeErr, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("looking up active claim on paper %d: %w", paperID, activeErr)
		}
		// Status says under_review but no active claim exists (released claim
		// not yet requeued); treat as claimable.
	case model.PaperStatusSubmitted:
		// Claimable.
	default:
		return nil, apperr.ErrNotSubmitted
	}

	record, err := claimTarget(s.recordRepo, model.TargetTypePaper, paperID, moderatorID)
	if err != nil {
		return nil, err
	}

	paper.Status = model.PaperStatusUnderReview
	if err := s.paperRepo.Update(paper); err != nil {
		// Free the slot so the paper is not stranded behind a claim whose
		// status advance never landed.
		if relErr := resolveRecord(s.recordRepo, record, model.RecordStatusReleased, ""); relErr != nil {
			log.Error().Err(relErr).Uint("paper_id", paperID).Msg("failed to release claim after status update failure")
		}
		return nil, fmt.Errorf("advancing paper %d to under_review: %w", paperID, err)
	}

	log.Info().Uint("paper_id", paperID).Uint("moderator_id", moderatorID).Msg("paper claimed for review")
	return recordToDTO(record), nil
}

func (s *claimService) ClaimQuestion(paperID, questionID, moderatorID uint) (*dto.ModerationRecordResponse, error) {
	if err := s.requirePaperClaim(paperID, moderatorID); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("loading question %d: %w", questionID, err)
	}
	if question.PaperID != paperID {
		return nil, apperr.ErrNotFound
	}

	record, err := claimTarget(s.recordRepo, model.TargetTypeQuestion, questionID, moderatorID)
	if err != nil {
		return nil, err
	}
	log.Info().Uint("paper_id", paperID).Uint("question_id", questionID).Uint("moderator_id", moderatorID).Msg("question claimed for review")
	return recordToDTO(record), nil
}

func (s *claimService) ReleaseClaim(targetType string, targetID, moderatorID uint) error {
	record, err := s.recordRepo.FindActiveByTarget(targetType, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("looking up active claim on %s %d: %w", targetType, targetID, err)
	}
	if record.ModeratorID != moderatorID {
		return apperr.ErrNotOwner
	}
	if err := resolveRecord(s.recordRepo, record, model.RecordStatusReleased, ""); err != nil {
		return err
	}

	if targetType == model.TargetTypePaper {
		// A released paper goes back to the queue, and the moderator's open
		// question claims under it are released with it.
		if err := releaseQuestionClaims(s.recordRepo, s.questionRepo, targetID, moderatorID); err != nil {
			return err
		}
		paper, err := s.paperRepo.FindByID(targetID)
		if err != nil {
			return fmt.Errorf("loading paper %d after release: %w", targetID, err)
		}
		if paper.Status == model.PaperStatusUnderReview {
			paper.Status = model.PaperStatusSubmitted
			if err := s.paperRepo.Update(paper); err != nil {
				return fmt.Errorf("requeueing paper %d after release: %w", targetID, err)
			}
		}
	}

	log.Info().Str("target_type", targetType).Uint("target_id", targetID).Uint("moderator_id", moderatorID).Msg("claim released")
	return nil
}

// requirePaperClaim checks that the moderator holds the active paper-level
// claim. Question claims are sub-delegation inside an already-claimed paper,
// never an independent entry point.
func (s *claimService) requirePaperClaim(paperID, moderatorID uint) error {
	if _, err := s.paperRepo.FindByID(paperID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("loading paper %d: %w", paperID, err)
	}
	active, err := s.recordRepo.FindActiveByTarget(model.TargetTypePaper, paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrPaperNotClaimedByModerator
		}
		return fmt.Errorf("looking up active claim on paper %d: %w", paperID, err)
	}
	if active.ModeratorID != moderatorID {
		return apperr.ErrPaperNotClaimedByModerator
	}
	return nil
}

// releaseQuestionClaims frees every open question claim the moderator holds on
// the given paper's questions. Released records never count as rejections.
func releaseQuestionClaims(
	recordRepo repository.ModerationRecordRepository,
	questionRepo repository.QuestionRepository,
	paperID, moderatorID uint,
) error {
	open, err := recordRepo.FindActiveByModeratorAndType(moderatorID, model.TargetTypeQuestion)
	if err != nil {
		return fmt.Errorf("listing open question claims for moderator %d: %w", moderatorID, err)
	}
	if len(open) == 0 {
		return nil
	}
	questions, err := questionRepo.FindByPaperID(paperID)
	if err != nil {
		return fmt.Errorf("listing questions of paper %d: %w", paperID, err)
	}
	inPaper := make(map[uint]bool, len(questions))
	for _, q := range questions {
		inPaper[q.ID] = true
	}
	for i := range open {
		if !inPaper[open[i].TargetID] {
			continue
		}
		if err := resolveRecord(recordRepo, &open[i], model.RecordStatusReleased, ""); err != nil {
			return err
		}
	}
	return nil
}
