package model

import "time"

type ProjectTaskStatus string

const (
	TaskPending    ProjectTaskStatus = "pending"
	TaskInProgress ProjectTaskStatus = "in_progress"
	TaskCompleted  ProjectTaskStatus = "completed"
)

func (s ProjectTaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// ProjectTask is a sub-mission of a project. UserID mirrors the project's owner.
type ProjectTask struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	ProjectID   uint              `gorm:"index;not null" json:"project_id"`
	UserID      uint              `gorm:"index;not null" json:"user_id"`
	Title       string            `gorm:"not null" json:"title"`
	Description string            `json:"description,omitempty"`
	Status      ProjectTaskStatus `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	Deadline    *time.Time        `json:"deadline,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
