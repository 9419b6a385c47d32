package model

import "time"

// Difficulty tiers ordered Easy < Medium < Hard.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Rank orders difficulties for comparison.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 0
	}
}

func (d Difficulty) Valid() bool { return d.Rank() > 0 }

// Mood is the user's self-reported state.
type Mood string

const (
	MoodFocused   Mood = "focused"
	MoodMotivated Mood = "motivated"
	MoodDrained   Mood = "drained"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodFocused, MoodMotivated, MoodDrained:
		return true
	}
	return false
}

// Mission is a user-authored task with a difficulty and a time cost in minutes.
type Mission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `json:"description,omitempty"`
	Category     string     `gorm:"not null" json:"category"`
	Difficulty   Difficulty `gorm:"type:varchar(10);not null" json:"difficulty"`
	TimeRequired int        `gorm:"not null;check:chk_mission_time,time_required > 0" json:"time_required"`
	ProjectID    *uint      `gorm:"index" json:"project_id,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
}

// Persisted reports whether the mission came from storage rather than being a placeholder.
func (m Mission) Persisted() bool { return m.ID != 0 }
