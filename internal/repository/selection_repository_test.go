package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"daily-quest/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestLowestFreeSlot(t *testing.T) {
	cases := []struct {
		slots []int
		want  int
	}{
		{nil, 1},
		{[]int{1}, 2},
		{[]int{1, 2, 3}, 4},
		{[]int{2, 3}, 1},
		{[]int{1, 3, 4}, 2},
	}
	for _, tc := range cases {
		if got := lowestFreeSlot(tc.slots); got != tc.want {
			t.Errorf("lowestFreeSlot(%v) = %d, want %d", tc.slots, got, tc.want)
		}
	}
}

func TestClaimFillsDayThenRejects(t *testing.T) {
	repo := NewSelectionRepository(setupTestDB(t))
	ctx := context.Background()
	day := model.Day("2024-03-10")

	for i := 1; i <= model.MaxDailySelections; i++ {
		sel := model.DailySelection{UserID: 1, TaskName: "task", Day: day}
		if err := repo.Claim(ctx, &sel, model.MaxDailySelections); err != nil {
			t.Fatalf("claim %d: %v", i, err)
		}
		if sel.Slot != i || sel.Priority != i {
			t.Fatalf("claim %d: slot=%d priority=%d", i, sel.Slot, sel.Priority)
		}
	}

	sel := model.DailySelection{UserID: 1, TaskName: "extra", Day: day}
	if err := repo.Claim(ctx, &sel, model.MaxDailySelections); !errors.Is(err, ErrDayFull) {
		t.Fatalf("sixth claim: got %v, want ErrDayFull", err)
	}

	other := model.DailySelection{UserID: 2, TaskName: "task", Day: day}
	if err := repo.Claim(ctx, &other, model.MaxDailySelections); err != nil {
		t.Fatalf("other user should have free slots: %v", err)
	}
	next := model.DailySelection{UserID: 1, TaskName: "task", Day: day.AddDays(1)}
	if err := repo.Claim(ctx, &next, model.MaxDailySelections); err != nil {
		t.Fatalf("next day should have free slots: %v", err)
	}
}

func TestClaimReusesFreedSlot(t *testing.T) {
	repo := NewSelectionRepository(setupTestDB(t))
	ctx := context.Background()
	day := model.Day("2024-03-10")

	var ids []uint
	for i := 0; i < 3; i++ {
		sel := model.DailySelection{UserID: 1, TaskName: "task", Day: day}
		if err := repo.Claim(ctx, &sel, model.MaxDailySelections); err != nil {
			t.Fatalf("claim: %v", err)
		}
		ids = append(ids, sel.ID)
	}
	if err := repo.Delete(ctx, 1, ids[0]); err != nil {
		t.Fatalf("delete: %v", err)
	}

	sel := model.DailySelection{UserID: 1, TaskName: "again", Day: day, Priority: 4}
	if err := repo.Claim(ctx, &sel, model.MaxDailySelections); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if sel.Slot != 1 {
		t.Fatalf("expected freed slot 1, got %d", sel.Slot)
	}
	if sel.Priority != 4 {
		t.Fatalf("explicit priority overwritten: %d", sel.Priority)
	}
}

func TestSlotConstraintRejectsDirectInsert(t *testing.T) {
	db := setupTestDB(t)
	bad := model.DailySelection{UserID: 1, TaskName: "task", Day: "2024-03-10", Priority: 1, Slot: 6}
	if err := db.Create(&bad).Error; err == nil {
		t.Fatal("expected check constraint violation for slot 6")
	}
}

func TestSwapAndOwnership(t *testing.T) {
	repo := NewSelectionRepository(setupTestDB(t))
	ctx := context.Background()
	day := model.Day("2024-03-10")

	a := model.DailySelection{UserID: 1, TaskName: "a", Day: day}
	b := model.DailySelection{UserID: 1, TaskName: "b", Day: day}
	foreign := model.DailySelection{UserID: 2, TaskName: "c", Day: day}
	for _, sel := range []*model.DailySelection{&a, &b, &foreign} {
		if err := repo.Claim(ctx, sel, model.MaxDailySelections); err != nil {
			t.Fatalf("claim: %v", err)
		}
	}

	if err := repo.Swap(ctx, 1, a.ID, b.ID); err != nil {
		t.Fatalf("swap: %v", err)
	}
	list, err := repo.List(ctx, 1, &day)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].TaskName != "b" || list[1].TaskName != "a" {
		t.Fatalf("unexpected order after swap: %+v", list)
	}

	if err := repo.Swap(ctx, 1, a.ID, foreign.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("swap with foreign selection: got %v", err)
	}
	if err := repo.Delete(ctx, 1, foreign.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("delete foreign selection: got %v", err)
	}
	if err := repo.UpdatePriority(ctx, 1, foreign.ID, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("update foreign selection: got %v", err)
	}
}

func TestClearAndDeleteBefore(t *testing.T) {
	repo := NewSelectionRepository(setupTestDB(t))
	ctx := context.Background()
	old := model.Day("2024-03-01")
	today := model.Day("2024-03-10")

	for _, day := range []model.Day{old, old, today} {
		sel := model.DailySelection{UserID: 1, TaskName: "task", Day: day}
		if err := repo.Claim(ctx, &sel, model.MaxDailySelections); err != nil {
			t.Fatalf("claim: %v", err)
		}
	}

	n, err := repo.DeleteBefore(ctx, today)
	if err != nil {
		t.Fatalf("delete before: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 pruned, got %d", n)
	}

	n, err = repo.Clear(ctx, 1, nil)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 cleared, got %d", n)
	}
}
