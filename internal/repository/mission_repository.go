package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"daily-quest/internal/model"
)

// MissionFilter narrows a mission query. A nil Difficulty matches any tier.
type MissionFilter struct {
	UserID     uint
	MaxMinutes int
	Difficulty *model.Difficulty
	Limit      int
}

// MissionRepository handles CRUD for missions.
type MissionRepository struct {
	db *gorm.DB
}

func NewMissionRepository(db *gorm.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

func (r *MissionRepository) Create(ctx context.Context, mission *model.Mission) error {
	if err := r.db.WithContext(ctx).Create(mission).Error; err != nil {
		return fmt.Errorf("create mission: %w", err)
	}
	return nil
}

func (r *MissionRepository) FindByID(ctx context.Context, userID, id uint) (*model.Mission, error) {
	var mission model.Mission
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&mission).Error; err != nil {
		return nil, fmt.Errorf("find mission: %w", err)
	}
	return &mission, nil
}

func (r *MissionRepository) ListByUser(ctx context.Context, userID uint) ([]model.Mission, error) {
	var missions []model.Mission
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&missions).Error; err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	return missions, nil
}

// Find returns the newest missions matching f.
func (r *MissionRepository) Find(ctx context.Context, f MissionFilter) ([]model.Mission, error) {
	q := r.db.WithContext(ctx).Where("user_id = ? AND time_required <= ?", f.UserID, f.MaxMinutes)
	if f.Difficulty != nil {
		q = q.Where("difficulty = ?", *f.Difficulty)
	}
	q = q.Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var missions []model.Mission
	if err := q.Find(&missions).Error; err != nil {
		return nil, fmt.Errorf("find missions: %w", err)
	}
	return missions, nil
}
