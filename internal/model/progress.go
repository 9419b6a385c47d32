package model

import "time"

type ProgressStatus string

const (
	ProgressCompleted ProgressStatus = "completed"
	ProgressSkipped   ProgressStatus = "skipped"
	ProgressDelayed   ProgressStatus = "delayed"
)

func (s ProgressStatus) Valid() bool {
	switch s {
	case ProgressCompleted, ProgressSkipped, ProgressDelayed:
		return true
	}
	return false
}

// ProgressRecord logs what the user did with a mission. Records are append-only.
type ProgressRecord struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	MissionID   uint           `gorm:"index;not null" json:"mission_id"`
	Date        time.Time      `gorm:"index" json:"date"`
	Status      ProgressStatus `gorm:"type:varchar(16);not null" json:"status"`
	Mood        *Mood          `gorm:"type:varchar(16)" json:"mood,omitempty"`
	EnergyLevel *int           `json:"energy_level,omitempty"`
	Notes       string         `json:"notes,omitempty"`
}
