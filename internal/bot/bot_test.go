package bot

import (
	"strings"
	"testing"

	"daily-quest/internal/model"
	"daily-quest/internal/service"
)

func TestParseID(t *testing.T) {
	for raw, want := range map[string]uint{"12": 12, " #7 ": 7} {
		got, err := parseID(raw)
		if err != nil || got != want {
			t.Errorf("parseID(%q) = %d, %v; want %d", raw, got, err, want)
		}
	}
	for _, raw := range []string{"", "0", "-3", "abc"} {
		if _, err := parseID(raw); err == nil {
			t.Errorf("parseID(%q) should fail", raw)
		}
	}
}

func TestParsePriorityArgs(t *testing.T) {
	id, priority, err := parsePriorityArgs("12 1")
	if err != nil || id != 12 || priority != 1 {
		t.Fatalf("got %d %d %v", id, priority, err)
	}
	for _, args := range []string{"", "12", "12 x", "x 1", "1 2 3"} {
		if _, _, err := parsePriorityArgs(args); err == nil {
			t.Errorf("parsePriorityArgs(%q) should fail", args)
		}
	}
}

func TestParseGenerateArgs(t *testing.T) {
	req, err := parseGenerateArgs("4 Focused 60")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := service.GenerateRequest{Energy: 4, Mood: model.MoodFocused, TimeAvailable: 60}
	if req != want {
		t.Fatalf("got %+v, want %+v", req, want)
	}
	for _, args := range []string{"", "4 focused", "x focused 60", "4 focused y"} {
		if _, err := parseGenerateArgs(args); err == nil {
			t.Errorf("parseGenerateArgs(%q) should fail", args)
		}
	}
}

func TestMenuCommand(t *testing.T) {
	if cmd, ok := menuCommand(menuLabelToday); !ok || cmd != "today" {
		t.Fatalf("today label mapped to %q, %v", cmd, ok)
	}
	if _, ok := menuCommand("hello"); ok {
		t.Fatal("free text must not map to a command")
	}
}

func TestFormatMissions(t *testing.T) {
	missions := []model.Mission{
		{ID: 3, Title: "Write <report>", Difficulty: model.DifficultyHard, TimeRequired: 45},
		service.Placeholder(1),
	}
	text := formatMissions(missions, model.DifficultyHard)
	if !strings.Contains(text, "Write &lt;report&gt;") || !strings.Contains(text, "#3") {
		t.Fatalf("unexpected text:\n%s", text)
	}
	if strings.Contains(text, "#0") {
		t.Fatalf("placeholder must not show an id:\n%s", text)
	}
}

func TestShortTitle(t *testing.T) {
	if got := shortTitle("Deep work block", 40); got != "Deep work block" {
		t.Errorf("short title changed: %q", got)
	}
	if got := shortTitle("Привет, мир и все остальные", 6); got != "Приве…" {
		t.Errorf("truncated = %q", got)
	}
}
