package service

import (
	"context"
	"testing"
	"time"
)

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("08:30")
	if err != nil {
		t.Fatalf("build spec: %v", err)
	}
	if spec != "0 30 8 * * *" {
		t.Fatalf("spec = %q", spec)
	}
	for _, bad := range []string{"8", "24:00", "07:60", "aa:bb", ""} {
		if _, err := buildDailySpec(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDailyAtSchedulesNextRun(t *testing.T) {
	s := NewSchedulerService(time.UTC, time.Second)
	id, err := s.DailyAt("noop", "03:00", func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("daily at: %v", err)
	}
	s.Start()
	defer s.Stop()

	next := s.Next(id)
	if next.IsZero() {
		t.Fatal("expected next run to be scheduled")
	}
	if next.UTC().Hour() != 3 || next.UTC().Minute() != 0 {
		t.Fatalf("next run at %v, want 03:00 UTC", next)
	}
	if _, err := s.Every("bad", 0, func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected error for zero interval")
	}
}
