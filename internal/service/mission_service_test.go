package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"daily-quest/internal/model"
)

func TestDifficultyHeuristic(t *testing.T) {
	cases := []struct {
		energy int
		mood   model.Mood
		want   model.Difficulty
	}{
		{5, model.MoodFocused, model.DifficultyHard},
		{4, model.MoodMotivated, model.DifficultyHard},
		{3, model.MoodFocused, model.DifficultyMedium},
		{2, model.MoodFocused, model.DifficultyEasy},
		{5, model.MoodDrained, model.DifficultyEasy},
		{1, model.MoodDrained, model.DifficultyEasy},
	}
	for _, tc := range cases {
		if got := Difficulty(tc.energy, tc.mood); got != tc.want {
			t.Errorf("Difficulty(%d, %s) = %s, want %s", tc.energy, tc.mood, got, tc.want)
		}
	}
}

func TestDifficultyMonotonicInEnergy(t *testing.T) {
	for _, mood := range []model.Mood{model.MoodFocused, model.MoodMotivated, model.MoodDrained} {
		prev := 0
		for energy := 1; energy <= 5; energy++ {
			rank := Difficulty(energy, mood).Rank()
			if rank < prev {
				t.Fatalf("mood %s: difficulty dropped at energy %d", mood, energy)
			}
			prev = rank
		}
	}
}

func seedMission(t *testing.T, env *testEnv, userID uint, title string, d model.Difficulty, minutes int, createdAt time.Time) model.Mission {
	t.Helper()
	m := model.Mission{
		UserID:       userID,
		Title:        title,
		Category:     "Work",
		Difficulty:   d,
		TimeRequired: minutes,
		CreatedAt:    createdAt.UTC(),
	}
	if err := env.db.Create(&m).Error; err != nil {
		t.Fatalf("seed mission: %v", err)
	}
	return m
}

func TestGenerateFiltersByTierAndTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	seedMission(t, env, 1, "hard long", model.DifficultyHard, 120, base)
	seedMission(t, env, 1, "hard 1", model.DifficultyHard, 30, base.Add(time.Hour))
	seedMission(t, env, 1, "hard 2", model.DifficultyHard, 45, base.Add(2*time.Hour))
	seedMission(t, env, 1, "hard 3", model.DifficultyHard, 20, base.Add(3*time.Hour))
	seedMission(t, env, 1, "hard 4", model.DifficultyHard, 60, base.Add(4*time.Hour))
	seedMission(t, env, 1, "easy", model.DifficultyEasy, 10, base.Add(5*time.Hour))
	seedMission(t, env, 2, "foreign hard", model.DifficultyHard, 10, base.Add(6*time.Hour))

	got, err := env.missions.Generate(ctx, 1, GenerateRequest{Energy: 5, Mood: model.MoodFocused, TimeAvailable: 60})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := []string{"hard 4", "hard 3", "hard 2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d missions, got %d: %+v", len(want), len(got), got)
	}
	for i, m := range got {
		if m.Title != want[i] {
			t.Errorf("mission %d = %q, want %q", i, m.Title, want[i])
		}
		if m.Difficulty != model.DifficultyHard || m.TimeRequired > 60 {
			t.Errorf("mission %q violates filter", m.Title)
		}
	}
}

func TestGenerateFallsBackToTimeOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	seedMission(t, env, 1, "easy 1", model.DifficultyEasy, 15, base)
	seedMission(t, env, 1, "easy 2", model.DifficultyEasy, 15, base.Add(time.Minute))

	got, err := env.missions.Generate(ctx, 1, GenerateRequest{Energy: 5, Mood: model.MoodFocused, TimeAvailable: 60})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(got) != 2 || got[0].Title != "easy 2" {
		t.Fatalf("expected time-only fallback, got %+v", got)
	}
}

func TestGenerateDrainedIgnoresTier(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	seedMission(t, env, 1, "easy", model.DifficultyEasy, 15, base)
	seedMission(t, env, 1, "hard", model.DifficultyHard, 15, base.Add(time.Minute))

	got, err := env.missions.Generate(ctx, 1, GenerateRequest{Energy: 2, Mood: model.MoodDrained, TimeAvailable: 30})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(got) != 2 || got[0].Title != "hard" {
		t.Fatalf("drained mode should match any tier, got %+v", got)
	}
}

func TestGeneratePlaceholder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedMission(t, env, 1, "too long", model.DifficultyEasy, 90, time.Now())

	got, err := env.missions.Generate(ctx, 1, GenerateRequest{Energy: 3, Mood: model.MoodMotivated, TimeAvailable: 30})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected placeholder only, got %+v", got)
	}
	p := got[0]
	if p.Persisted() || p.Title != "Create your first mission" || p.Difficulty != model.DifficultyEasy || p.TimeRequired != 10 {
		t.Fatalf("unexpected placeholder: %+v", p)
	}

	var count int64
	if err := env.db.Model(&model.Mission{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("placeholder must not be stored, found %d missions", count)
	}
}

func TestGenerateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	bad := []GenerateRequest{
		{Energy: 0, Mood: model.MoodFocused, TimeAvailable: 30},
		{Energy: 6, Mood: model.MoodFocused, TimeAvailable: 30},
		{Energy: 3, Mood: "sleepy", TimeAvailable: 30},
		{Energy: 3, Mood: model.MoodFocused, TimeAvailable: 0},
	}
	for _, req := range bad {
		if _, err := env.missions.Generate(ctx, 1, req); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Generate(%+v): got %v, want ErrInvalidArgument", req, err)
		}
	}
}

func TestCreateMission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project, err := env.projects.Create(ctx, 1, ProjectInput{Name: "Side project"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	m, err := env.missions.Create(ctx, 1, MissionInput{
		Title:        " Ship it ",
		Category:     "Work",
		Difficulty:   model.DifficultyMedium,
		TimeRequired: 25,
		ProjectID:    &project.ID,
	})
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}
	if m.Title != "Ship it" || !m.Persisted() {
		t.Fatalf("unexpected mission: %+v", m)
	}

	if _, err := env.missions.Create(ctx, 2, MissionInput{
		Title: "x", Category: "Work", Difficulty: model.DifficultyEasy, TimeRequired: 5, ProjectID: &project.ID,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign project: got %v", err)
	}
	if _, err := env.missions.Create(ctx, 1, MissionInput{
		Title: "x", Category: "Work", Difficulty: "Legendary", TimeRequired: 5,
	}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad difficulty: got %v", err)
	}
	if _, err := env.missions.Create(ctx, 1, MissionInput{
		Title: "x", Category: "Work", Difficulty: model.DifficultyEasy, TimeRequired: 0,
	}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero time: got %v", err)
	}

	list, err := env.missions.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 mission, got %d", len(list))
	}
}
