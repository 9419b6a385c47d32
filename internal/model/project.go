package model

import "time"

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectPaused    ProjectStatus = "paused"
	ProjectCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectPaused, ProjectCompleted:
		return true
	}
	return false
}

// Project is a long-running goal. CurrentAmount and TargetAmount back the goal progress bar.
type Project struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"index;not null" json:"user_id"`
	Name          string        `gorm:"not null" json:"name"`
	Description   string        `json:"description,omitempty"`
	Status        ProjectStatus `gorm:"type:varchar(16);not null" json:"status"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       *time.Time    `json:"end_date,omitempty"`
	CurrentAmount int64         `gorm:"default:0" json:"current_amount"`
	TargetAmount  int64         `gorm:"default:0" json:"target_amount"`
	CreatedAt     time.Time     `json:"created_at"`
}
