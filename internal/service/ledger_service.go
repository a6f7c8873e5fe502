package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Margay/internal/apperr"
	"github.com/lshigami/Margay/internal/dto"
	"github.com/lshigami/Margay/internal/model"
	"github.com/lshigami/Margay/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ModerationLedgerService is the append-mostly store of moderation events.
// Resolved records are immutable history; corrections are new records.
type ModerationLedgerService interface {
	CreateClaim(targetType string, targetID, moderatorID uint) (*dto.ModerationRecordResponse, error)
	Resolve(recordID uint, outcome, comments string) (*dto.ModerationRecordResponse, error)
	RecordsFor(targetType string, targetID uint) ([]dto.ModerationRecordResponse, error)
	ActiveClaimFor(targetType string, targetID uint) (*dto.ModerationRecordResponse, error)
	ClaimsByModerator(moderatorID uint, status *string) ([]dto.ModerationRecordResponse, error)
}

type moderationLedgerService struct {
	recordRepo repository.ModerationRecordRepository
}

func NewModerationLedgerService(recordRepo repository.ModerationRecordRepository) ModerationLedgerService {
	return &moderationLedgerService{recordRepo: recordRepo}
}

func (s *moderationLedgerService) CreateClaim(targetType string, targetID, moderatorID uint) (*dto.ModerationRecordResponse, error) {
	record, err := claimTarget(s.recordRepo, targetType, targetID, moderatorID)
	if err != nil {
		return nil, err
	}
	return recordToDTO(record), nil
}

func (s *moderationLedgerService) Resolve(recordID uint, outcome, comments string) (*dto.ModerationRecordResponse, error) {
	if outcome != model.RecordStatusApproved && outcome != model.RecordStatusRejected {
		return nil, fmt.Errorf("invalid resolution outcome %q", outcome)
	}
	record, err := s.recordRepo.FindByID(recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("loading moderation record %d: %w", recordID, err)
	}
	if err := resolveRecord(s.recordRepo, record, outcome, comments); err != nil {
		return nil, err
	}
	return recordToDTO(record), nil
}

func (s *moderationLedgerService) RecordsFor(targetType string, targetID uint) ([]dto.ModerationRecordResponse, error) {
	records, err := s.recordRepo.FindByTarget(targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("querying records for %s %d: %w", targetType, targetID, err)
	}
	return recordsToDTO(records), nil
}

func (s *moderationLedgerService) ActiveClaimFor(targetType string, targetID uint) (*dto.ModerationRecordResponse, error) {
	record, err := s.recordRepo.FindActiveByTarget(targetType, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("querying active claim for %s %d: %w", targetType, targetID, err)
	}
	return recordToDTO(record), nil
}

func (s *moderationLedgerService) ClaimsByModerator(moderatorID uint, status *string) ([]dto.ModerationRecordResponse, error) {
	records, err := s.recordRepo.FindByModerator(moderatorID, status)
	if err != nil {
		return nil, fmt.Errorf("querying claims for moderator %d: %w", moderatorID, err)
	}
	return recordsToDTO(records), nil
}

// claimTarget is the atomic check-and-insert shared by the ledger and the
// claim coordinator. The store's partial unique index rejects a second active
// claim; the duplicate is looked up so the conflict names its holder.
func claimTarget(repo repository.ModerationRecordRepository, targetType string, targetID, moderatorID uint) (*model.ModerationRecord, error) {
	for attempt := 0; attempt < 2; attempt++ {
		record := &model.ModerationRecord{
			TargetType:  targetType,
			TargetID:    targetID,
			ModeratorID: moderatorID,
			Status:      model.RecordStatusClaimed,
			ClaimedAt:   time.Now(),
		}
		err := repo.CreateClaim(record)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("inserting claim for %s %d: %w", targetType, targetID, err)
		}
		holder, lookupErr := repo.FindActiveByTarget(targetType, targetID)
		if lookupErr == nil {
			return nil, &apperr.AlreadyClaimedError{
				TargetType:  targetType,
				TargetID:    targetID,
				ModeratorID: holder.ModeratorID,
			}
		}
		if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("looking up claim holder for %s %d: %w", targetType, targetID, lookupErr)
		}
		// Holder resolved between our insert and the lookup; the slot is free
		// again, take another pass.
		log.Debug().Str("target_type", targetType).Uint("target_id", targetID).Msg("claim slot freed mid-conflict, retrying insert")
	}
	// Both passes raced; report whoever holds the slot now so the conflict
	// still names its holder.
	holder, err := repo.FindActiveByTarget(targetType, targetID)
	if err == nil {
		return nil, &apperr.AlreadyClaimedError{
			TargetType:  targetType,
			TargetID:    targetID,
			ModeratorID: holder.ModeratorID,
		}
	}
	return nil, fmt.Errorf("claim slot for %s %d contended on every attempt", targetType, targetID)
}

// resolveRecord moves a claimed record to a terminal state. Resolved records
// never change again.
func resolveRecord(repo repository.ModerationRecordRepository, record *model.ModerationRecord, outcome, comments string) error {
	if record.Resolved() {
		return apperr.ErrAlreadyResolved
	}
	if outcome == model.RecordStatusRejected && strings.TrimSpace(comments) == "" {
		return apperr.ErrMissingComments
	}
	now := time.Now()
	record.Status = outcome
	record.Comments = comments
	record.ResolvedAt = &now
	if err := repo.Update(record); err != nil {
		return fmt.Errorf("resolving moderation record %d: %w", record.ID, err)
	}
	return nil
}

func recordToDTO(record *model.ModerationRecord) *dto.ModerationRecordResponse {
	var resp dto.ModerationRecordResponse
	copier.Copy(&resp, record)
	return &resp
}

func recordsToDTO(records []model.ModerationRecord) []dto.ModerationRecordResponse {
	resp := make([]dto.ModerationRecordResponse, 0, len(records))
	for i := range records {
		resp = append(resp, *recordToDTO(&records[i]))
	}
	return resp
}
