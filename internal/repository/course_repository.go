package repository

import (
	"github.com/lshigami/Margay/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	FindByIDWithOutcomes(id uint) (*model.Course, error)
	FindAll() ([]model.Course, error)
	Update(course *model.Course) error
	Delete(id uint) error

	CreateOutcome(outcome *model.CourseOutcome) error
	FindOutcomeByID(id uint) (*model.CourseOutcome, error)
	FindOutcomesByCourse(courseID uint) ([]model.CourseOutcome, error)
	DeleteOutcome(id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByIDWithOutcomes(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.Preload("Outcomes").First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Order("code ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

func (r *courseRepository) Delete(id uint) error {
	return r.db.Delete(&model.Course{}, id).Error
}

func (r *courseRepository) CreateOutcome(outcome *model.CourseOutcome) error {
	return r.db.Create(outcome).Error
}

func (r *courseRepository) FindOutcomeByID(id uint) (*model.CourseOutcome, error) {
	var outcome model.CourseOutcome
	if err := r.db.First(&outcome, id).Error; err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (r *courseRepository) FindOutcomesByCourse(courseID uint) ([]model.CourseOutcome, error) {
	var outcomes []model.CourseOutcome
	err := r.db.Where("course_id = ?", courseID).Order("code ASC").Find(&outcomes).Error
	return outcomes, err
}

func (r *courseRepository) DeleteOutcome(id uint) error {
	return r.db.Delete(&model.CourseOutcome{}, id).Error
}
