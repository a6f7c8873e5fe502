package repository

import (
	"github.com/lshigami/Margay/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDWithOptions(id uint) (*model.Question, error)
	FindByPaperID(paperID uint) ([]model.Question, error)
	CountActiveByPaper(paperID uint) (int64, error)
	NextSequenceNumber(paperID uint) (int, error)
	Update(question *model.Question) error
	ReplaceOptions(questionID uint, options []model.QuestionOption) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDWithOptions(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.position ASC")
	}).First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByPaperID(paperID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.position ASC")
	}).Where("paper_id = ?", paperID).Order("sequence_number ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) CountActiveByPaper(paperID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("paper_id = ?", paperID).Count(&count).Error
	return count, err
}

func (r *questionRepository) NextSequenceNumber(paperID uint) (int, error) {
	var max int
	// COALESCE over soft-deleted rows too, so a revived sequence never collides
	err := r.db.Model(&model.Question{}).Unscoped().
		Where("paper_id = ?", paperID).
		Select("COALESCE(MAX(sequence_number), 0)").Scan(&max).Error
	return max + 1, err
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) ReplaceOptions(questionID uint, options []model.QuestionOption) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].QuestionID = questionID
		}
		if len(options) == 0 {
			return nil
		}
		return tx.Create(&options).Error
	})
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}
