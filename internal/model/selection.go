package model

import "time"

// MaxDailySelections caps how many tasks a user can pick for one day.
const MaxDailySelections = 5

// DayLayout is the storage format of a calendar day.
const DayLayout = "2006-01-02"

// Day is a calendar date without time of day, stored as YYYY-MM-DD.
type Day string

// DayOf returns the calendar day of t in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	return Day(t.In(loc).Format(DayLayout))
}

// ParseDay validates a YYYY-MM-DD string.
func ParseDay(raw string) (Day, error) {
	t, err := time.Parse(DayLayout, raw)
	if err != nil {
		return "", err
	}
	return Day(t.Format(DayLayout)), nil
}

// AddDays shifts the day by n calendar days.
func (d Day) AddDays(n int) Day {
	t, err := time.Parse(DayLayout, string(d))
	if err != nil {
		return d
	}
	return Day(t.AddDate(0, 0, n).Format(DayLayout))
}

// DailySelection is one of the user's picks for a day. Slot is the storage-level
// capacity slot: unique per (user, day) and constrained to 1..MaxDailySelections.
type DailySelection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_selection_slot,unique,priority:1" json:"user_id"`
	TaskName  string    `gorm:"not null" json:"task_name"`
	Priority  int       `gorm:"not null;default:5" json:"priority"`
	Day       Day       `gorm:"type:varchar(10);not null;index:idx_selection_slot,unique,priority:2" json:"day"`
	Slot      int       `gorm:"not null;index:idx_selection_slot,unique,priority:3;check:chk_selection_slot,slot >= 1 AND slot <= 5" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
