package repository

import (
	"github.com/lshigami/Margay/internal/model"
	"gorm.io/gorm"
)

type PaperRepository interface {
	Create(paper *model.Paper) error
	FindByID(id uint) (*model.Paper, error)
	FindByIDWithQuestions(id uint) (*model.Paper, error)
	FindAllWithQuestionCount(status *string, authorID *uint) ([]PaperWithQuestionCount, error)
	Update(paper *model.Paper) error
	Delete(id uint) error
}

type PaperWithQuestionCount struct {
	model.Paper
	QuestionCount int
}

type paperRepository struct {
	db *gorm.DB
}

func NewPaperRepository(db *gorm.DB) PaperRepository {
	return &paperRepository{db: db}
}

func (r *paperRepository) Create(paper *model.Paper) error {
	return r.db.Create(paper).Error
}

func (r *paperRepository) FindByID(id uint) (*model.Paper, error) {
	var paper model.Paper
	if err := r.db.First(&paper, id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *paperRepository) FindByIDWithQuestions(id uint) (*model.Paper, error) {
	var paper model.Paper
	err := r.db.
		Preload("Course").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.sequence_number ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.position ASC")
		}).
		First(&paper, id).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *paperRepository) FindAllWithQuestionCount(status *string, authorID *uint) ([]PaperWithQuestionCount, error) {
	var results []PaperWithQuestionCount
	query := r.db.Model(&model.Paper{}).
		Select("papers.*, (SELECT COUNT(*) FROM questions WHERE questions.paper_id = papers.id AND questions.deleted_at IS NULL) as question_count").
		Where("papers.deleted_at IS NULL")
	if status != nil {
		query = query.Where("papers.status = ?", *status)
	}
	if authorID != nil {
		query = query.Where("papers.author_id = ?", *authorID)
	}
	err := query.Order("papers.updated_at DESC").Scan(&results).Error
	return results, err
}

func (r *paperRepository) Update(paper *model.Paper) error {
	return r.db.Save(paper).Error
}

func (r *paperRepository) Delete(id uint) error {
	return r.db.Delete(&model.Paper{}, id).Error
}
