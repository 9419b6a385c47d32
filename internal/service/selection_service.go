package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"daily-quest/internal/model"
	"daily-quest/internal/repository"
)

// SelectionService manages the capped list of tasks a user commits to for a day.
type SelectionService struct {
	repo *repository.SelectionRepository
	loc  *time.Location
	now  func() time.Time
}

func NewSelectionService(repo *repository.SelectionRepository, loc *time.Location) *SelectionService {
	if loc == nil {
		loc = time.Local
	}
	return &SelectionService{repo: repo, loc: loc, now: time.Now}
}

// WithClock replaces the time source; used by tests and the scheduler.
func (s *SelectionService) WithClock(now func() time.Time) *SelectionService {
	s.now = now
	return s
}

// Today returns the current calendar day in the service's time zone.
func (s *SelectionService) Today() model.Day {
	return model.DayOf(s.now(), s.loc)
}

// Add picks taskName for today. A nil priority defaults to the number of existing picks plus one.
func (s *SelectionService) Add(ctx context.Context, userID uint, taskName string, priority *int) (*model.DailySelection, error) {
	name := strings.TrimSpace(taskName)
	if name == "" {
		return nil, invalid("task name is required")
	}
	if priority != nil {
		if err := validPriority(*priority); err != nil {
			return nil, err
		}
	}

	day := s.Today()
	// Each failed claim means another writer took a slot, so the day fills within the limit.
	for attempt := 0; attempt < model.MaxDailySelections; attempt++ {
		sel := model.DailySelection{UserID: userID, TaskName: name, Day: day}
		if priority != nil {
			sel.Priority = *priority
		}
		err := s.repo.Claim(ctx, &sel, model.MaxDailySelections)
		if errors.Is(err, repository.ErrSlotTaken) {
			continue
		}
		if err != nil {
			return nil, translate(err)
		}
		return &sel, nil
	}
	return nil, ErrCapacityExceeded
}

// Reorder sets one selection's priority. Uniqueness of priorities is not enforced.
func (s *SelectionService) Reorder(ctx context.Context, userID, selectionID uint, priority int) (*model.DailySelection, error) {
	if err := validPriority(priority); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePriority(ctx, userID, selectionID, priority); err != nil {
		return nil, translate(err)
	}
	sel, err := s.repo.FindByID(ctx, userID, selectionID)
	if err != nil {
		return nil, translate(err)
	}
	return sel, nil
}

// Swap exchanges the priorities of two selections in one transaction.
func (s *SelectionService) Swap(ctx context.Context, userID, a, b uint) error {
	if a == b {
		return invalid("cannot swap a selection with itself")
	}
	return translate(s.repo.Swap(ctx, userID, a, b))
}

// MoveUp moves a selection of today one place up and renumbers today's picks 1..n,
// so tied priorities still change the order. It returns today's list.
func (s *SelectionService) MoveUp(ctx context.Context, userID, selectionID uint) ([]model.DailySelection, error) {
	today := s.Today()
	picks, err := s.repo.List(ctx, userID, &today)
	if err != nil {
		return nil, translate(err)
	}
	idx := -1
	ids := make([]uint, len(picks))
	for i, sel := range picks {
		ids[i] = sel.ID
		if sel.ID == selectionID {
			idx = i
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	if idx > 0 {
		ids[idx-1], ids[idx] = ids[idx], ids[idx-1]
	}
	if err := s.repo.Renumber(ctx, userID, ids); err != nil {
		return nil, translate(err)
	}
	return s.List(ctx, userID, &today)
}

func (s *SelectionService) Remove(ctx context.Context, userID, selectionID uint) error {
	return translate(s.repo.Delete(ctx, userID, selectionID))
}

// Clear deletes the user's selections for day, or all of them when day is nil.
func (s *SelectionService) Clear(ctx context.Context, userID uint, day *model.Day) (int64, error) {
	n, err := s.repo.Clear(ctx, userID, day)
	if err != nil {
		return 0, translate(err)
	}
	return n, nil
}

// List returns selections by ascending priority, scoped to day when given.
func (s *SelectionService) List(ctx context.Context, userID uint, day *model.Day) ([]model.DailySelection, error) {
	selections, err := s.repo.List(ctx, userID, day)
	if err != nil {
		return nil, translate(err)
	}
	return selections, nil
}

// Prune removes every user's selections older than keepDays days before today.
func (s *SelectionService) Prune(ctx context.Context, keepDays int) (int64, error) {
	if keepDays <= 0 {
		return 0, invalid("retention must be positive, got %d", keepDays)
	}
	n, err := s.repo.DeleteBefore(ctx, s.Today().AddDays(-keepDays))
	if err != nil {
		return 0, translate(err)
	}
	return n, nil
}

func validPriority(p int) error {
	if p < 1 || p > model.MaxDailySelections {
		return invalid("priority must be between 1 and %d, got %d", model.MaxDailySelections, p)
	}
	return nil
}
