package service

import (
	"context"
	"strings"
	"time"

	"daily-quest/internal/model"
	"daily-quest/internal/repository"
)

// ProgressInput represents one logged action on a mission.
type ProgressInput struct {
	MissionID   uint
	Status      model.ProgressStatus
	Mood        *model.Mood
	EnergyLevel *int
	Notes       string
}

// DayCount is the number of completed missions on one weekday.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Summary aggregates a user's progress log.
type Summary struct {
	Streak         int        `json:"streak"`
	TotalCompleted int        `json:"total_completed"`
	Total          int        `json:"total"`
	Rank           string     `json:"rank"`
	RankLabel      string     `json:"rank_label"`
	Weekly         []DayCount `json:"weekly"`
}

// ProgressService records what users did with their missions and summarizes it.
type ProgressService struct {
	progressRepo *repository.ProgressRepository
	missionRepo  *repository.MissionRepository
	loc          *time.Location
}

func NewProgressService(progressRepo *repository.ProgressRepository, missionRepo *repository.MissionRepository, loc *time.Location) *ProgressService {
	if loc == nil {
		loc = time.Local
	}
	return &ProgressService{progressRepo: progressRepo, missionRepo: missionRepo, loc: loc}
}

func (s *ProgressService) Record(ctx context.Context, userID uint, input ProgressInput, at time.Time) (*model.ProgressRecord, error) {
	if !input.Status.Valid() {
		return nil, invalid("unknown status %q", input.Status)
	}
	if input.Mood != nil && !input.Mood.Valid() {
		return nil, invalid("unknown mood %q", *input.Mood)
	}
	if input.EnergyLevel != nil && (*input.EnergyLevel < 1 || *input.EnergyLevel > 5) {
		return nil, invalid("energy level must be between 1 and 5, got %d", *input.EnergyLevel)
	}
	if _, err := s.missionRepo.FindByID(ctx, userID, input.MissionID); err != nil {
		return nil, translate(err)
	}

	record := model.ProgressRecord{
		UserID:      userID,
		MissionID:   input.MissionID,
		Date:        at.UTC(),
		Status:      input.Status,
		Mood:        input.Mood,
		EnergyLevel: input.EnergyLevel,
		Notes:       strings.TrimSpace(input.Notes),
	}
	if err := s.progressRepo.Create(ctx, &record); err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (s *ProgressService) List(ctx context.Context, userID uint) ([]model.ProgressRecord, error) {
	records, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	return records, nil
}

var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// Weekly counts completed missions per weekday over the seven calendar days ending today,
// Monday first. Each weekday bucket holds exactly one day.
func (s *ProgressService) Weekly(ctx context.Context, userID uint, now time.Time) ([]DayCount, error) {
	local := now.In(s.loc)
	since := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -6)
	records, err := s.progressRepo.CompletedSince(ctx, userID, since)
	if err != nil {
		return nil, translate(err)
	}
	counts := make(map[time.Weekday]int, 7)
	for _, r := range records {
		if r.Date.After(now) {
			continue
		}
		counts[r.Date.In(s.loc).Weekday()]++
	}
	out := make([]DayCount, 0, len(weekOrder))
	for _, wd := range weekOrder {
		out = append(out, DayCount{Day: wd.String()[:3], Count: counts[wd]})
	}
	return out, nil
}

// Streak counts consecutive days with at least one completed mission, ending today
// or, when nothing is completed yet today, yesterday.
func (s *ProgressService) Streak(ctx context.Context, userID uint, now time.Time) (int, error) {
	records, err := s.progressRepo.CompletedSince(ctx, userID, time.Time{})
	if err != nil {
		return 0, translate(err)
	}
	days := make(map[model.Day]bool, len(records))
	for _, r := range records {
		days[model.DayOf(r.Date, s.loc)] = true
	}
	return streakFrom(days, model.DayOf(now, s.loc)), nil
}

func streakFrom(days map[model.Day]bool, today model.Day) int {
	cursor := today
	if !days[cursor] {
		cursor = cursor.AddDays(-1)
	}
	streak := 0
	for days[cursor] {
		streak++
		cursor = cursor.AddDays(-1)
	}
	return streak
}

// Summarize gathers streak, totals, rank and the weekly histogram.
func (s *ProgressService) Summarize(ctx context.Context, userID uint, now time.Time) (*Summary, error) {
	completed, total, err := s.progressRepo.Counts(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	streak, err := s.Streak(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	weekly, err := s.Weekly(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Streak:         streak,
		TotalCompleted: int(completed),
		Total:          int(total),
		Rank:           RankOf(int(completed), int(total)),
		RankLabel:      RankLabel(int(completed), int(total)),
		Weekly:         weekly,
	}, nil
}
