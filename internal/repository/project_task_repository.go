package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"daily-quest/internal/model"
)

// ProjectTaskRepository handles CRUD for project tasks.
type ProjectTaskRepository struct {
	db *gorm.DB
}

func NewProjectTaskRepository(db *gorm.DB) *ProjectTaskRepository {
	return &ProjectTaskRepository{db: db}
}

func (r *ProjectTaskRepository) Create(ctx context.Context, task *model.ProjectTask) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create project task: %w", err)
	}
	return nil
}

// ListByProject orders by deadline, tasks without one last.
func (r *ProjectTaskRepository) ListByProject(ctx context.Context, userID, projectID uint) ([]model.ProjectTask, error) {
	var tasks []model.ProjectTask
	if err := r.db.WithContext(ctx).Where("user_id = ? AND project_id = ?", userID, projectID).
		Order("deadline IS NULL, deadline ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}
	return tasks, nil
}

func (r *ProjectTaskRepository) FindByID(ctx context.Context, userID, projectID, taskID uint) (*model.ProjectTask, error) {
	var task model.ProjectTask
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ? AND id = ?", userID, projectID, taskID).
		First(&task).Error; err != nil {
		return nil, fmt.Errorf("find project task: %w", err)
	}
	return &task, nil
}

// UpdateStatus stamps CompletedAt when the task becomes completed and clears it otherwise.
func (r *ProjectTaskRepository) UpdateStatus(ctx context.Context, task *model.ProjectTask, status model.ProjectTaskStatus, at time.Time) error {
	task.Status = status
	task.CompletedAt = nil
	if status == model.TaskCompleted {
		done := at.UTC()
		task.CompletedAt = &done
	}
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("update project task: %w", err)
	}
	return nil
}
