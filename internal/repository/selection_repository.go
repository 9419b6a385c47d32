package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"daily-quest/internal/model"
)

var (
	// ErrDayFull is returned by Claim when every slot of the day is taken.
	ErrDayFull = errors.New("all daily slots taken")
	// ErrSlotTaken is returned by Claim when a concurrent writer took the chosen slot.
	ErrSlotTaken = errors.New("daily slot taken concurrently")
)

// SelectionRepository stores the per-day task picks.
type SelectionRepository struct {
	db *gorm.DB
}

func NewSelectionRepository(db *gorm.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// Claim inserts sel into the lowest free slot of its (user, day) inside one transaction.
// A zero Priority becomes the number of existing picks plus one.
func (r *SelectionRepository) Claim(ctx context.Context, sel *model.DailySelection, limit int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slots []int
		if err := tx.Model(&model.DailySelection{}).
			Where("user_id = ? AND day = ?", sel.UserID, sel.Day).
			Order("slot ASC").
			Pluck("slot", &slots).Error; err != nil {
			return fmt.Errorf("count selections: %w", err)
		}
		if len(slots) >= limit {
			return ErrDayFull
		}

		sel.Slot = lowestFreeSlot(slots)
		if sel.Priority == 0 {
			sel.Priority = len(slots) + 1
		}
		if err := tx.Create(sel).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return fmt.Errorf("create selection: %w", err)
		}
		return nil
	})
}

// lowestFreeSlot expects slots sorted ascending.
func lowestFreeSlot(slots []int) int {
	next := 1
	for _, s := range slots {
		if s != next {
			break
		}
		next++
	}
	return next
}

func (r *SelectionRepository) FindByID(ctx context.Context, userID, id uint) (*model.DailySelection, error) {
	var sel model.DailySelection
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&sel).Error; err != nil {
		return nil, fmt.Errorf("find selection: %w", err)
	}
	return &sel, nil
}

// UpdatePriority returns gorm.ErrRecordNotFound when no row matched.
func (r *SelectionRepository) UpdatePriority(ctx context.Context, userID, id uint, priority int) error {
	res := r.db.WithContext(ctx).Model(&model.DailySelection{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("priority", priority)
	if res.Error != nil {
		return fmt.Errorf("update priority: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update priority: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// Swap exchanges the priorities of two selections atomically.
func (r *SelectionRepository) Swap(ctx context.Context, userID, a, b uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pair []model.DailySelection
		if err := tx.Where("user_id = ? AND id IN ?", userID, []uint{a, b}).Find(&pair).Error; err != nil {
			return fmt.Errorf("find selections: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("swap selections: %w", gorm.ErrRecordNotFound)
		}
		for i, other := range []model.DailySelection{pair[1], pair[0]} {
			if err := tx.Model(&model.DailySelection{}).Where("id = ?", pair[i].ID).
				Update("priority", other.Priority).Error; err != nil {
				return fmt.Errorf("swap selections: %w", err)
			}
		}
		return nil
	})
}

// Renumber sets priorities 1..n following the order of ids in one transaction.
func (r *SelectionRepository) Renumber(ctx context.Context, userID uint, ids []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(&model.DailySelection{}).
				Where("user_id = ? AND id = ?", userID, id).
				Update("priority", i+1)
			if res.Error != nil {
				return fmt.Errorf("renumber selections: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("renumber selections: %w", gorm.ErrRecordNotFound)
			}
		}
		return nil
	})
}

// Delete returns gorm.ErrRecordNotFound when no row matched.
func (r *SelectionRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&model.DailySelection{})
	if res.Error != nil {
		return fmt.Errorf("delete selection: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete selection: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// Clear removes the user's selections for day, or for every day when day is nil.
func (r *SelectionRepository) Clear(ctx context.Context, userID uint, day *model.Day) (int64, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if day != nil {
		q = q.Where("day = ?", *day)
	}
	res := q.Delete(&model.DailySelection{})
	if res.Error != nil {
		return 0, fmt.Errorf("clear selections: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// List orders by ascending priority, ties broken by insertion order.
func (r *SelectionRepository) List(ctx context.Context, userID uint, day *model.Day) ([]model.DailySelection, error) {
	var selections []model.DailySelection
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if day != nil {
		q = q.Where("day = ?", *day)
	}
	if err := q.Order("priority ASC, id ASC").Find(&selections).Error; err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return selections, nil
}

// DeleteBefore prunes selections of every user older than day.
func (r *SelectionRepository) DeleteBefore(ctx context.Context, day model.Day) (int64, error) {
	res := r.db.WithContext(ctx).Where("day < ?", day).Delete(&model.DailySelection{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune selections: %w", res.Error)
	}
	return res.RowsAffected, nil
}
