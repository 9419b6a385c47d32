package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"daily-quest/internal/model"
)

// ProgressRepository appends and reads progress records.
type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Create(ctx context.Context, record *model.ProgressRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create progress: %w", err)
	}
	return nil
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID uint) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return records, nil
}

// CompletedSince returns completed records dated at or after since, oldest first.
func (r *ProgressRepository) CompletedSince(ctx context.Context, userID uint, since time.Time) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND date >= ?", userID, model.ProgressCompleted, since.UTC()).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list completed progress: %w", err)
	}
	return records, nil
}

// Counts returns the number of completed records and the total number of records.
func (r *ProgressRepository) Counts(ctx context.Context, userID uint) (completed, total int64, err error) {
	if err := r.db.WithContext(ctx).Model(&model.ProgressRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count progress: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&model.ProgressRecord{}).
		Where("user_id = ? AND status = ?", userID, model.ProgressCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, fmt.Errorf("count completed progress: %w", err)
	}
	return completed, total, nil
}
