package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Margay/internal/apperr"
	"github.com/lshigami/Margay/internal/dto"
	"github.com/lshigami/Margay/internal/model"
	"github.com/lshigami/Margay/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PaperService owns the paper status state machine:
//
//	draft --submit--> submitted --claim--> under_review --approve--> approved
//	                                     └--reject(comments)--> change_requested --revise+resubmit--> submitted
//
// approved is absorbing: every mutating operation on an approved paper fails
// with ErrPaperFinalized.
type PaperService interface {
	CreatePaper(req dto.PaperCreateRequest, actorID uint) (*dto.PaperResponse, error)
	GetPaper(paperID uint) (*dto.PaperResponse, error)
	ListPapersByAuthor(authorID uint) ([]dto.PaperSummaryResponse, error)
	ListPapers(status *string) ([]dto.PaperSummaryResponse, error)
	UpdatePaper(paperID uint, req dto.PaperUpdateRequest, actorID uint, isAdmin bool) (*dto.PaperResponse, error)
	DeletePaper(paperID, actorID uint, isAdmin bool) error
	SubmitPaper(paperID, actorID uint) (*dto.PaperResponse, error)
	ApprovePaper(paperID, moderatorID uint, comments string) (*dto.PaperResponse, error)
	RejectPaper(paperID, moderatorID uint, comments string) (*dto.PaperResponse, error)
	ApproveQuestion(paperID, questionID, moderatorID uint, comments string) (*dto.ModerationRecordResponse, error)
	RejectQuestion(paperID, questionID, moderatorID uint, comments string) (*dto.ModerationRecordResponse, error)
	PaperStatus(paperID uint) (*dto.PaperStatusResponse, error)
}

type paperService struct {
	paperRepo    repository.PaperRepository
	questionRepo repository.QuestionRepository
	recordRepo   repository.ModerationRecordRepository
	courseRepo   repository.CourseRepository
}

func NewPaperService(
	paperRepo repository.PaperRepository,
	questionRepo repository.QuestionRepository,
	recordRepo repository.ModerationRecordRepository,
	courseRepo repository.CourseRepository,
) PaperService {
	return &paperService{
		paperRepo:    paperRepo,
		questionRepo: questionRepo,
		recordRepo:   recordRepo,
		courseRepo:   courseRepo,
	}
}

func (s *paperService) CreatePaper(req dto.PaperCreateRequest, actorID uint) (*dto.PaperResponse, error) {
	if _, err := s.courseRepo.FindByID(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("validating course %d: %w", req.CourseID, err)
	}
	paper := model.Paper{
		Title:    req.Title,
		CourseID: req.CourseID,
		AuthorID: actorID,
		Status:   model.PaperStatusDraft,
	}
	if err := s.paperRepo.Create(&paper); err != nil {
		log.Error().Err(err).Msg("failed to create paper")
		return nil, fmt.Errorf("creating paper: %w", err)
	}
	return paperToDTO(&paper), nil
}

func (s *paperService) GetPaper(paperID uint) (*dto.PaperResponse, error) {
	paper, err := s.paperRepo.FindByIDWithQuestions(paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("loading paper %d: %w", paperID, err)
	}
	return paperToDTO(paper), nil
}

func (s *paperService) ListPapersByAuthor(authorID uint) ([]dto.PaperSummaryResponse, error) {
	results, err := s.paperRepo.FindAllWithQuestionCount(nil, &authorID)
	if err != nil {
		return nil, fmt.Errorf("listing papers for author %d: %w", authorID, err)
	}
	return paperSummaries(results), nil
}

func (s *paperService) ListPapers(status *string) ([]dto.PaperSummaryResponse, error) {
	results, err := s.paperRepo.FindAllWithQuestionCount(status, nil)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	return paperSummaries(results), nil
}

func (s *paperService) UpdatePaper(paperID uint, req dto.PaperUpdateRequest, actorID uint, isAdmin bool) (*dto.PaperResponse, error) {
	paper, err := s.loadPaper(paperID)
	if err != nil {
		return nil, err
	}
	if paper.AuthorID != actorID && !isAdmin {
		return nil, apperr.ErrNotAuthor
	}
	if paper.Status == model.PaperStatusApproved {
		return nil, apperr.ErrPaperFinalized
	}
	if !paper.Editable() {
		return nil, apperr.ErrNotDraft
	}
	paper.Title = req.Title
	if err := s.paperRepo.Update(paper); err != nil {
		return nil, fmt.Errorf("updating paper %d: %w", paperID, err)
	}
	return paperToDTO(paper), nil
}

func (s *paperService) DeletePaper(paperID, actorID uint, isAdmin bool) error {
	paper, err := s.loadPaper(paperID)
	if err != nil {
		return err
	}
	if !isAdmin {
		if paper.AuthorID != actorID {
			return apperr.ErrNotAuthor
		}
		// Submitted work belongs to the review trail; only an administrative
		// override removes it.
		if paper.Status != model.PaperStatusDraft {
			return apperr.ErrDeleteForbidden
		}
	}
	if err := s.paperRepo.Delete(paperID); err != nil {
		return fmt.Errorf("deleting paper %d: %w", paperID, err)
	}
	log.Info().Uint("paper_id", paperID).Uint("actor_id", actorID).Bool("admin", isAdmin).Msg("paper deleted")
	return nil
}

func (s *paperService) SubmitPaper(paperID, actorID uint) (*dto.PaperResponse, error) {
	paper, err := s.loadPaper(paperID)
	if err != nil {
		return nil, err
	}
	if paper.AuthorID != actorID {
		return nil, apperr.ErrNotAuthor
	}
	if paper.Status == model.PaperStatusApproved {
		return nil, apperr.ErrPaperFinalized
	}
	if !paper.Editable() {
		return nil, apperr.ErrNotDraft
	}
	count, err := s.questionRepo.CountActiveByPaper(paperID)
	if err != nil {
		return nil, fmt.Errorf("counting questions of paper %d: %w", paperID, err)
	}
	if count == 0 {
		return nil, apperr.ErrEmptyPaper
	}

	now := time.Now()
	paper.Status = model.PaperStatusSubmitted
	paper.SubmittedAt = &now
	if err := s.paperRepo.Update(paper); err != nil {
		return nil, fmt.Errorf("submitting paper %d: %w", paperID, err)
	}
	log.Info().Uint("paper_id", paperID).Uint("author_id", actorID).Int64("questions", count).Msg("paper submitted for moderation")
	return paperToDTO(paper), nil
}

func (s *paperService) ApprovePaper(paperID, moderatorID uint, comments string) (*dto.PaperResponse, error) {
	return s.resolvePaper(paperID, moderatorID, model.RecordStatusApproved, comments)
}

func (s *paperService) RejectPaper(paperID, moderatorID uint, comments string) (*dto.PaperResponse, error) {
	return s.resolvePaper(paperID, moderatorID, model.RecordStatusRejected, comments)
}

func (s *paperService) resolvePaper(paperID, moderatorID uint, outcome, comments string) (*dto.PaperResponse, error) {
	paper, err := s.loadPaper(paperID)
	if err != nil {
		return nil, err
	}
	if paper.Status == model.PaperStatusApproved {
		return nil, apperr.ErrPaperFinalized
	}

	claim, err := s.recordRepo.FindActiveByTarget(model.TargetTypePaper, paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotClaimedByModerator
		}
		return nil, fmt.Errorf("looking up active claim on paper %d: %w", paperID, err)
	}
	if claim.ModeratorID != moderatorID {
		return nil, apperr.ErrNotClaimedByModerator
	}

	if err := resolveRecord(s.recordRepo, claim, outcome, comments); err != nil {
		return nil, err
	}
	// Whole-paper resolution closes out the moderator's remaining question
	// claims; released records carry no review verdict.
	if err := releaseQuestionClaims(s.recordRepo, s.questionRepo, paperID, moderatorID); err != nil {
		s.reopenClaim(claim)
		return nil, err
	}

	switch outcome {
	case model.RecordStatusRejected:
		paper.Status = model.PaperStatusChangeRequested
	case model.RecordStatusApproved:
		rejected, err := s.hasCycleQuestionRejection(paper)
		if err != nil {
			s.reopenClaim(claim)
			return nil, err
		}
		// A standing question-level rejection dominates the paper-level
		// approval: the most specific objection must be addressed first.
		if rejected {
			paper.Status = model.PaperStatusChangeRequested
		} else {
			paper.Status = model.PaperStatusApproved
		}
	}
	if err := s.paperRepo.Update(paper); err != nil {
		s.reopenClaim(claim)
		return nil, fmt.Errorf("updating paper %d after resolution: %w", paperID, err)
	}
	log.Info().Uint("paper_id", paperID).Uint("moderator_id", moderatorID).Str("outcome", outcome).Str("status", paper.Status).Msg("paper moderation resolved")
	return paperToDTO(paper), nil
}

func (s *paperService) ApproveQuestion(paperID, questionID, moderatorID uint, comments string) (*dto.ModerationRecordResponse, error) {
	return s.resolveQuestion(paperID, questionID, moderatorID, model.RecordStatusApproved, comments)
}

func (s *paperService) RejectQuestion(paperID, questionID, moderatorID uint, comments string) (*dto.ModerationRecordResponse, error) {
	return s.resolveQuestion(paperID, questionID, moderatorID, model.RecordStatusRejected, comments)
}

func (s *paperService) resolveQuestion(paperID, questionID, moderatorID uint, outcome, comments string) (*dto.ModerationRecordResponse, error) {
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

	claim, err := s.recordRepo.FindActiveByTarget(model.TargetTypeQuestion, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotClaimedByModerator
		}
		return nil, fmt.Errorf("looking up active claim on question %d: %w", questionID, err)
	}
	if claim.ModeratorID != moderatorID {
		return nil, apperr.ErrNotClaimedByModerator
	}
	if err := resolveRecord(s.recordRepo, claim, outcome, comments); err != nil {
		return nil, err
	}
	log.Info().Uint("question_id", questionID).Uint("moderator_id", moderatorID).Str("outcome", outcome).Msg("question moderation resolved")
	return recordToDTO(claim), nil
}

// reopenClaim reverts a just-resolved paper claim after a dependent write
// failed, so the moderator keeps the slot and can retry the resolution instead
// of leaving a resolved record on a paper stuck in under_review.
func (s *paperService) reopenClaim(record *model.ModerationRecord) {
	record.Status = model.RecordStatusClaimed
	record.Comments = ""
	record.ResolvedAt = nil
	if err := s.recordRepo.Update(record); err != nil {
		log.Error().Err(err).Uint("record_id", record.ID).Msg("failed to reopen claim after resolution rollback")
	}
}

// PaperStatus derives the live moderation projection: the stored coarse status
// plus per-question state computed from the ledger, never cached.
func (s *paperService) PaperStatus(paperID uint) (*dto.PaperStatusResponse, error) {
	paper, err := s.loadPaper(paperID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.FindByPaperID(paperID)
	if err != nil {
		return nil, fmt.Errorf("listing questions of paper %d: %w", paperID, err)
	}

	resp := dto.PaperStatusResponse{
		PaperID:   paperID,
		Status:    paper.Status,
		Questions: make([]dto.QuestionModerationState, 0, len(questions)),
	}

	if active, err := s.recordRepo.FindActiveByTarget(model.TargetTypePaper, paperID); err == nil {
		resp.ActiveClaim = recordToDTO(active)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up active claim on paper %d: %w", paperID, err)
	}

	latest, err := s.latestQuestionRecords(questions)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		state := dto.QuestionModerationState{
			QuestionID:     q.ID,
			SequenceNumber: q.SequenceNumber,
			State:          questionState(latest[q.ID], paper.SubmittedAt),
		}
		if record := latest[q.ID]; record != nil && state.State != "pending" {
			modID := record.ModeratorID
			state.ModeratorID = &modID
			state.Comments = record.Comments
		}
		switch state.State {
		case "approved":
			resp.ApprovedCount++
		case "rejected":
			resp.RejectedCount++
		default:
			resp.PendingCount++
		}
		resp.Questions = append(resp.Questions, state)
	}
	return &resp, nil
}

// hasCycleQuestionRejection reports whether any active question's latest
// ledger record is a rejection from the current review cycle. Rejections
// resolved before the last submission are history the author already revised
// against.
func (s *paperService) hasCycleQuestionRejection(paper *model.Paper) (bool, error) {
	questions, err := s.questionRepo.FindByPaperID(paper.ID)
	if err != nil {
		return false, fmt.Errorf("listing questions of paper %d: %w", paper.ID, err)
	}
	latest, err := s.latestQuestionRecords(questions)
	if err != nil {
		return false, err
	}
	for _, record := range latest {
		if questionState(record, paper.SubmittedAt) == "rejected" {
			return true, nil
		}
	}
	return false, nil
}

// latestQuestionRecords maps each active question to its newest ledger record.
// Soft-deleted questions never reach here: FindByPaperID excludes them, so
// they can be neither listed nor resolved.
func (s *paperService) latestQuestionRecords(questions []model.Question) (map[uint]*model.ModerationRecord, error) {
	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	records, err := s.recordRepo.FindByTargets(model.TargetTypeQuestion, ids)
	if err != nil {
		return nil, fmt.Errorf("querying question moderation records: %w", err)
	}
	latest := make(map[uint]*model.ModerationRecord, len(ids))
	for i := range records {
		// Records arrive newest first; keep the first per target.
		if _, seen := latest[records[i].TargetID]; !seen {
			latest[records[i].TargetID] = &records[i]
		}
	}
	return latest, nil
}

// questionState collapses a question's latest record into its display state
// for the current cycle. Released claims and resolutions that predate the last
// submission read as pending.
func questionState(record *model.ModerationRecord, submittedAt *time.Time) string {
	if record == nil || record.Status == model.RecordStatusReleased {
		return "pending"
	}
	if record.Status == model.RecordStatusClaimed {
		return "claimed"
	}
	if submittedAt != nil && record.ResolvedAt != nil && record.ResolvedAt.Before(*submittedAt) {
		return "pending"
	}
	return record.Status
}

func (s *paperService) loadPaper(paperID uint) (*model.Paper, error) {
	paper, err := s.paperRepo.FindByID(paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("loading paper %d: %w", paperID, err)
	}
	return paper, nil
}

func paperToDTO(paper *model.Paper) *dto.PaperResponse {
	var resp dto.PaperResponse
	copier.Copy(&resp, paper)
	return &resp
}

func paperSummaries(results []repository.PaperWithQuestionCount) []dto.PaperSummaryResponse {
	summaries := make([]dto.PaperSummaryResponse, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, dto.PaperSummaryResponse{
			ID:            r.Paper.ID,
			Title:         r.Paper.Title,
			CourseID:      r.Paper.CourseID,
			AuthorID:      r.Paper.AuthorID,
			Status:        r.Paper.Status,
			SubmittedAt:   r.Paper.SubmittedAt,
			QuestionCount: r.QuestionCount,
			UpdatedAt:     r.Paper.UpdatedAt,
		})
	}
	return summaries
}
