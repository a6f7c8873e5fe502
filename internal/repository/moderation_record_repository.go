package repository

import (
	"github.com/lshigami/Margay/internal/model"
	"gorm.io/gorm"
)

type ModerationRecordRepository interface {
	// CreateClaim inserts a new record in status "claimed". The partial unique
	// index on (target_type, target_id) WHERE status = 'claimed' makes this an
	// atomic check-and-insert: a concurrent duplicate surfaces as
	// gorm.ErrDuplicatedKey.
	CreateClaim(record *model.ModerationRecord) error
	FindByID(id uint) (*model.ModerationRecord, error)
	FindByTarget(targetType string, targetID uint) ([]model.ModerationRecord, error)
	FindActiveByTarget(targetType string, targetID uint) (*model.ModerationRecord, error)
	FindActiveByModeratorAndType(moderatorID uint, targetType string) ([]model.ModerationRecord, error)
	FindByModerator(moderatorID uint, status *string) ([]model.ModerationRecord, error)
	FindByTargets(targetType string, targetIDs []uint) ([]model.ModerationRecord, error)
	Update(record *model.ModerationRecord) error
}

type moderationRecordRepository struct {
	db *gorm.DB
}

func NewModerationRecordRepository(db *gorm.DB) ModerationRecordRepository {
	return &moderationRecordRepository{db: db}
}

func (r *moderationRecordRepository) CreateClaim(record *model.ModerationRecord) error {
	return r.db.Create(record).Error
}

func (r *moderationRecordRepository) FindByID(id uint) (*model.ModerationRecord, error) {
	var record model.ModerationRecord
	if err := r.db.First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *moderationRecordRepository) FindByTarget(targetType string, targetID uint) ([]model.ModerationRecord, error) {
	var records []model.ModerationRecord
	err := r.db.
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("claimed_at DESC").
		Find(&records).Error
	return records, err
}

func (r *moderationRecordRepository) FindActiveByTarget(targetType string, targetID uint) (*model.ModerationRecord, error) {
	var record model.ModerationRecord
	err := r.db.
		Where("target_type = ? AND target_id = ? AND status = ?", targetType, targetID, model.RecordStatusClaimed).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *moderationRecordRepository) FindActiveByModeratorAndType(moderatorID uint, targetType string) ([]model.ModerationRecord, error) {
	var records []model.ModerationRecord
	err := r.db.
		Where("moderator_id = ? AND target_type = ? AND status = ?", moderatorID, targetType, model.RecordStatusClaimed).
		Find(&records).Error
	return records, err
}

func (r *moderationRecordRepository) FindByModerator(moderatorID uint, status *string) ([]model.ModerationRecord, error) {
	var records []model.ModerationRecord
	query := r.db.Where("moderator_id = ?", moderatorID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("claimed_at DESC").Find(&records).Error
	return records, err
}

func (r *moderationRecordRepository) FindByTargets(targetType string, targetIDs []uint) ([]model.ModerationRecord, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	var records []model.ModerationRecord
	err := r.db.
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Order("claimed_at DESC").
		Find(&records).Error
	return records, err
}

func (r *moderationRecordRepository) Update(record *model.ModerationRecord) error {
	return r.db.Save(record).Error
}
