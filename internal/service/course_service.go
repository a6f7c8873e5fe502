package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Margay/internal/apperr"
	"github.com/lshigami/Margay/internal/dto"
	"github.com/lshigami/Margay/internal/model"
	"github.com/lshigami/Margay/internal/repository"
	"gorm.io/gorm"
)

// CourseService manages the thin course / course-outcome catalog papers and
// questions reference.
type CourseService interface {
	CreateCourse(req dto.CourseCreateRequest) (*dto.CourseResponse, error)
	GetCourse(id uint) (*dto.CourseResponse, error)
	ListCourses() ([]dto.CourseResponse, error)
	UpdateCourse(id uint, req dto.CourseUpdateRequest) (*dto.CourseResponse, error)
	DeleteCourse(id uint) error
	AddOutcome(courseID uint, req dto.CourseOutcomeCreateRequest) (*dto.CourseOutcomeResponse, error)
	ListOutcomes(courseID uint) ([]dto.CourseOutcomeResponse, error)
	DeleteOutcome(courseID, outcomeID uint) error
}

type courseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

func (s *courseService) CreateCourse(req dto.CourseCreateRequest) (*dto.CourseResponse, error) {
	course := model.Course{Code: req.Code, Title: req.Title}
	if err := s.courseRepo.Create(&course); err != nil {
		return nil, fmt.Errorf("creating course: %w", err)
	}
	var resp dto.CourseResponse
	copier.Copy(&resp, &course)
	return &resp, nil
}

func (s *courseService) GetCourse(id uint) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByIDWithOutcomes(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("loading course %d: %w", id, err)
	}
	var resp dto.CourseResponse
	copier.Copy(&resp, course)
	return &resp, nil
}

func (s *courseService) ListCourses() ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	resp := make([]dto.CourseResponse, 0, len(courses))
	copier.Copy(&resp, &courses)
	return resp, nil
}

func (s *courseService) UpdateCourse(id uint, req dto.CourseUpdateRequest) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("loading course %d: %w", id, err)
	}
	course.Code = req.Code
	course.Title = req.Title
	if err := s.courseRepo.Update(course); err != nil {
		return nil, fmt.Errorf("updating course %d: %w", id, err)
	}
	var resp dto.CourseResponse
	copier.Copy(&resp, course)
	return &resp, nil
}

func (s *courseService) DeleteCourse(id uint) error {
	if _, err := s.courseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("loading course %d: %w", id, err)
	}
	return s.courseRepo.Delete(id)
}

func (s *courseService) AddOutcome(courseID uint, req dto.CourseOutcomeCreateRequest) (*dto.CourseOutcomeResponse, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("loading course %d: %w", courseID, err)
	}
	outcome := model.CourseOutcome{CourseID: courseID, Code: req.Code, Description: req.Description}
	if err := s.courseRepo.CreateOutcome(&outcome); err != nil {
		return nil, fmt.Errorf("creating course outcome: %w", err)
	}
	var resp dto.CourseOutcomeResponse
	copier.Copy(&resp, &outcome)
	return &resp, nil
}

func (s *courseService) ListOutcomes(courseID uint) ([]dto.CourseOutcomeResponse, error) {
	outcomes, err := s.courseRepo.FindOutcomesByCourse(courseID)
	if err != nil {
		return nil, fmt.Errorf("listing outcomes of course %d: %w", courseID, err)
	}
	resp := make([]dto.CourseOutcomeResponse, 0, len(outcomes))
	copier.Copy(&resp, &outcomes)
	return resp, nil
}

func (s *courseService) DeleteOutcome(courseID, outcomeID uint) error {
	outcome, err := s.courseRepo.FindOutcomeByID(outcomeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("loading course outcome %d: %w", outcomeID, err)
	}
	if outcome.CourseID != courseID {
		return apperr.ErrNotFound
	}
	return s.courseRepo.DeleteOutcome(outcomeID)
}
