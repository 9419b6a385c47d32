package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"daily-quest/internal/model"
)

func TestDailySummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	env.selections.WithClock(fixedClock(now))

	if _, err := env.selections.Add(ctx, 1, "Workout <am>", nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := env.quotes.Seed(ctx, DefaultQuotes[:1]); err != nil {
		t.Fatalf("seed quotes: %v", err)
	}

	text, err := env.reminders.DailySummary(ctx, model.User{ID: 1}, now)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"10.03.2024", "1. Workout &lt;am&gt;", "Rank E", DefaultQuotes[0].Text} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}

	empty, err := env.reminders.DailySummary(ctx, model.User{ID: 2}, now)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(empty, "nothing picked yet") {
		t.Errorf("expected empty-day hint:\n%s", empty)
	}
}
