package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Margay/internal/apperr"
	"github.com/lshigami/Margay/internal/dto"
	"github.com/lshigami/Margay/internal/model"
	"github.com/lshigami/Margay/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionService is the authoring surface for questions: add, update,
// soft-delete and reorder, all scoped to papers the author may still edit.
type QuestionService interface {
	AddQuestion(paperID uint, req dto.QuestionRequest, actorID uint) (*dto.QuestionResponse, error)
	UpdateQuestion(paperID, questionID uint, req dto.QuestionRequest, actorID uint) (*dto.QuestionResponse, error)
	DeleteQuestion(paperID, questionID, actorID uint) error
	ReorderQuestions(paperID uint, req dto.QuestionReorderRequest, actorID uint) ([]dto.QuestionResponse, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	paperRepo    repository.PaperRepository
	courseRepo   repository.CourseRepository
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	paperRepo repository.PaperRepository,
	courseRepo repository.CourseRepository,
) QuestionService {
	return &questionService{questionRepo: questionRepo, paperRepo: paperRepo, courseRepo: courseRepo}
}

func (s *questionService) AddQuestion(paperID uint, req dto.QuestionRequest, actorID uint) (*dto.QuestionResponse, error) {
	paper, err := s.editablePaper(paperID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.validateQuestion(paper, req); err != nil {
		return nil, err
	}

	seq, err := s.questionRepo.NextSequenceNumber(paperID)
	if err != nil {
		return nil, fmt.Errorf("computing sequence number for paper %d: %w", paperID, err)
	}

	question := model.Question{
		PaperID:        paperID,
		Content:        req.Content,
		Type:           req.Type,
		Marks:          req.Marks,
		COID:           req.COID,
		SequenceNumber: seq,
		Options:        optionsFromRequest(req.Options),
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("paper_id", paperID).Msg("failed to create question")
		return nil, fmt.Errorf("creating question: %w", err)
	}
	return questionToDTO(&question), nil
}

func (s *questionService) UpdateQuestion(paperID, questionID uint, req dto.QuestionRequest, actorID uint) (*dto.QuestionResponse, error) {
	paper, err := s.editablePaper(paperID, actorID)
	if err != nil {
		return nil, err
	}
	question, err := s.ownedQuestion(paperID, questionID)
	if err != nil {
		return nil, err
	}
	if err := s.validateQuestion(paper, req); err != nil {
		return nil, err
	}

	question.Content = req.Content
	question.Type = req.Type
	question.Marks = req.Marks
	question.COID = req.COID
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("updating question %d: %w", questionID, err)
	}
	if err := s.questionRepo.ReplaceOptions(questionID, optionsFromRequest(req.Options)); err != nil {
		return nil, fmt.Errorf("replacing options of question %d: %w", questionID, err)
	}

	updated, err := s.questionRepo.FindByIDWithOptions(questionID)
	if err != nil {
		return nil, fmt.Errorf("reloading question %d: %w", questionID, err)
	}
	return questionToDTO(updated), nil
}

func (s *questionService) DeleteQuestion(paperID, questionID, actorID uint) error {
	if _, err := s.editablePaper(paperID, actorID); err != nil {
		return err
	}
	if _, err := s.ownedQuestion(paperID, questionID); err != nil {
		return err
	}
	// Soft delete: the row stays for the audit trail but disappears from all
	// listings and moderation lookups.
	if err := s.questionRepo.Delete(questionID); err != nil {
		return fmt.Errorf("deleting question %d: %w", questionID, err)
	}
	log.Info().Uint("paper_id", paperID).Uint("question_id", questionID).Msg("question soft-deleted")
	return nil
}

func (s *questionService) ReorderQuestions(paperID uint, req dto.QuestionReorderRequest, actorID uint) ([]dto.QuestionResponse, error) {
	if _, err := s.editablePaper(paperID, actorID); err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.FindByPaperID(paperID)
	if err != nil {
		return nil, fmt.Errorf("listing questions of paper %d: %w", paperID, err)
	}

	// The new order must name every active question exactly once.
	if len(req.QuestionIDs) != len(questions) {
		return nil, fmt.Errorf("reorder must list all %d active questions, got %d", len(questions), len(req.QuestionIDs))
	}
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}
	seen := make(map[uint]bool, len(req.QuestionIDs))
	for _, id := range req.QuestionIDs {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("question %d does not belong to paper %d", id, paperID)
		}
		if seen[id] {
			return nil, fmt.Errorf("question %d listed more than once", id)
		}
		seen[id] = true
	}

	for pos, id := range req.QuestionIDs {
		question := byID[id]
		if question.SequenceNumber == pos+1 {
			continue
		}
		question.SequenceNumber = pos + 1
		if err := s.questionRepo.Update(question); err != nil {
			return nil, fmt.Errorf("resequencing question %d: %w", id, err)
		}
	}

	reordered, err := s.questionRepo.FindByPaperID(paperID)
	if err != nil {
		return nil, fmt.Errorf("reloading questions of paper %d: %w", paperID, err)
	}
	resp := make([]dto.QuestionResponse, 0, len(reordered))
	for i := range reordered {
		resp = append(resp, *questionToDTO(&reordered[i]))
	}
	return resp, nil
}

// editablePaper loads the paper and checks the author may still change its
// structure (draft, or change_requested after a rejection).
func (s *questionService) editablePaper(paperID, actorID uint) (*model.Paper, error) {
	paper, err := s.paperRepo.FindByID(paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("loading paper %d: %w", paperID, err)
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
	return paper, nil
}

func (s *questionService) ownedQuestion(paperID, questionID uint) (*model.Question, error) {
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
	return question, nil
}

func (s *questionService) validateQuestion(paper *model.Paper, req dto.QuestionRequest) error {
	switch req.Type {
	case model.QuestionTypeMCQ:
		if len(req.Options) < 2 {
			return fmt.Errorf("mcq questions need at least two options, got %d", len(req.Options))
		}
		correct := 0
		for _, opt := range req.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("mcq questions need exactly one correct option, got %d", correct)
		}
	case model.QuestionTypeSubjective:
		if len(req.Options) > 0 {
			return fmt.Errorf("subjective questions cannot carry options")
		}
	}
	if req.COID != nil {
		outcome, err := s.courseRepo.FindOutcomeByID(*req.COID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("course outcome %d does not exist", *req.COID)
			}
			return fmt.Errorf("validating course outcome %d: %w", *req.COID, err)
		}
		if outcome.CourseID != paper.CourseID {
			return fmt.Errorf("course outcome %d belongs to a different course", *req.COID)
		}
	}
	return nil
}

func optionsFromRequest(opts []dto.OptionRequest) []model.QuestionOption {
	options := make([]model.QuestionOption, 0, len(opts))
	for i, opt := range opts {
		options = append(options, model.QuestionOption{
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
			Position:  i + 1,
		})
	}
	return options
}

func questionToDTO(question *model.Question) *dto.QuestionResponse {
	var resp dto.QuestionResponse
	copier.Copy(&resp, question)
	return &resp
}
