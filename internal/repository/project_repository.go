package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"daily-quest/internal/model"
)

// ProjectRepository handles CRUD for projects.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, userID, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&project).Error; err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &project, nil
}

// ListByUser keeps creation order so the first project is the oldest.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID uint) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) UpdateAmount(ctx context.Context, project *model.Project, current int64) error {
	if err := r.db.WithContext(ctx).Model(project).Update("current_amount", current).Error; err != nil {
		return fmt.Errorf("update project amount: %w", err)
	}
	return nil
}
