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
	"gorm.io/gorm"
)

// ExportService assembles the finalized view of a paper for the external PDF
// renderer: metadata plus the active questions in print order. Rendering
// itself happens outside this service.
type ExportService interface {
	Snapshot(paperID uint) (*dto.PaperExportResponse, error)
}

type exportService struct {
	paperRepo  repository.PaperRepository
	courseRepo repository.CourseRepository
}

func NewExportService(paperRepo repository.PaperRepository, courseRepo repository.CourseRepository) ExportService {
	return &exportService{paperRepo: paperRepo, courseRepo: courseRepo}
}

func (s *exportService) Snapshot(paperID uint) (*dto.PaperExportResponse, error) {
	paper, err := s.paperRepo.FindByIDWithQuestions(paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("loading paper %d: %w", paperID, err)
	}
	// Drafts have no stable question set to render.
	if paper.Status == model.PaperStatusDraft {
		return nil, apperr.ErrNotSubmitted
	}

	outcomes, err := s.courseRepo.FindOutcomesByCourse(paper.CourseID)
	if err != nil {
		return nil, fmt.Errorf("loading outcomes of course %d: %w", paper.CourseID, err)
	}
	outcomeCodes := make(map[uint]string, len(outcomes))
	for _, co := range outcomes {
		outcomeCodes[co.ID] = co.Code
	}

	resp := dto.PaperExportResponse{
		PaperID:     paper.ID,
		Title:       paper.Title,
		Status:      paper.Status,
		AuthorID:    paper.AuthorID,
		SubmittedAt: paper.SubmittedAt,
		GeneratedAt: time.Now(),
		Questions:   make([]dto.QuestionExportResponse, 0, len(paper.Questions)),
	}
	copier.Copy(&resp.Course, &paper.Course)

	for _, q := range paper.Questions {
		export := dto.QuestionExportResponse{
			SequenceNumber: q.SequenceNumber,
			Content:        q.Content,
			Type:           q.Type,
			Marks:          q.Marks,
		}
		if q.COID != nil {
			export.OutcomeCode = outcomeCodes[*q.COID]
		}
		if q.Marks != nil {
			resp.TotalMarks += *q.Marks
		}
		for _, opt := range q.Options {
			export.Options = append(export.Options, dto.OptionResponse{
				ID:        opt.ID,
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
				Position:  opt.Position,
			})
		}
		resp.Questions = append(resp.Questions, export)
	}
	return &resp, nil
}
