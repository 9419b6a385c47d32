package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"daily-quest/internal/model"
)

func TestMainProject(t *testing.T) {
	projects := []model.Project{
		{ID: 1, Name: "Learn Go"},
		{ID: 2, Name: "Fund", Description: "Become a Billionaire"},
	}
	if p := MainProject(projects, "billionaire"); p == nil || p.ID != 2 {
		t.Fatalf("expected keyword match, got %+v", p)
	}
	if p := MainProject(projects, "astronaut"); p == nil || p.ID != 1 {
		t.Fatalf("expected first project fallback, got %+v", p)
	}
	if p := MainProject(nil, "billionaire"); p != nil {
		t.Fatalf("expected nil for no projects, got %+v", p)
	}
}

func TestProjectLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.projects.Create(ctx, 1, ProjectInput{Name: "Billionaire", TargetAmount: 1_000_000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Status != model.ProjectPlanning {
		t.Fatalf("default status = %s", p.Status)
	}

	updated, err := env.projects.UpdateAmount(ctx, 1, p.ID, 250_000)
	if err != nil {
		t.Fatalf("update amount: %v", err)
	}
	pct, err := GoalPercent(*updated)
	if err != nil || pct != 25 {
		t.Fatalf("goal percent = %d, %v", pct, err)
	}

	if _, err := env.projects.UpdateAmount(ctx, 2, p.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign project: got %v", err)
	}
	if _, err := env.projects.UpdateAmount(ctx, 1, p.ID, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("negative amount: got %v", err)
	}

	list, err := env.projects.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].CurrentAmount != 250_000 {
		t.Fatalf("unexpected projects: %+v", list)
	}
}

func TestProjectValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	bad := []ProjectInput{
		{Name: ""},
		{Name: "x", Status: "abandoned"},
		{Name: "x", TargetAmount: -1},
		{Name: "x", StartDate: &start, EndDate: &end},
	}
	for _, input := range bad {
		if _, err := env.projects.Create(ctx, 1, input); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Create(%+v): got %v, want ErrInvalidArgument", input, err)
		}
	}
	if _, err := GoalPercent(model.Project{CurrentAmount: 5}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero target: got %v", err)
	}
}

func TestProjectTasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project, err := env.projects.Create(ctx, 1, ProjectInput{Name: "Launch"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	soon := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	later := soon.AddDate(0, 1, 0)

	inputs := []ProjectTaskInput{
		{Title: "Backlog idea"},
		{Title: "Write landing page", Deadline: &later},
		{Title: "Buy domain", Deadline: &soon, Status: model.TaskInProgress},
	}
	for _, input := range inputs {
		if _, err := env.projects.AddTask(ctx, 1, project.ID, input); err != nil {
			t.Fatalf("add task %q: %v", input.Title, err)
		}
	}

	tasks, err := env.projects.ListTasks(ctx, 1, project.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	want := []string{"Buy domain", "Write landing page", "Backlog idea"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %+v", len(want), tasks)
	}
	for i, task := range tasks {
		if task.Title != want[i] {
			t.Errorf("task %d = %q, want %q", i, task.Title, want[i])
		}
	}
	if tasks[2].Status != model.TaskPending {
		t.Errorf("default status = %s, want pending", tasks[2].Status)
	}

	at := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	done, err := env.projects.SetTaskStatus(ctx, 1, project.ID, tasks[0].ID, model.TaskCompleted, at)
	if err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if done.Status != model.TaskCompleted || done.CompletedAt == nil || !done.CompletedAt.Equal(at) {
		t.Fatalf("unexpected completed task: %+v", done)
	}
	reopened, err := env.projects.SetTaskStatus(ctx, 1, project.ID, tasks[0].ID, model.TaskInProgress, at)
	if err != nil {
		t.Fatalf("reopen task: %v", err)
	}
	if reopened.CompletedAt != nil {
		t.Fatalf("reopened task keeps completion time: %+v", reopened)
	}
}

func TestProjectTasksRequireOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project, err := env.projects.Create(ctx, 1, ProjectInput{Name: "Private"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	task, err := env.projects.AddTask(ctx, 1, project.ID, ProjectTaskInput{Title: "Secret"})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if _, err := env.projects.AddTask(ctx, 2, project.ID, ProjectTaskInput{Title: "Intruder"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("add to foreign project: got %v", err)
	}
	if _, err := env.projects.ListTasks(ctx, 2, project.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("list foreign project: got %v", err)
	}
	if _, err := env.projects.SetTaskStatus(ctx, 2, project.ID, task.ID, model.TaskCompleted, time.Now()); !errors.Is(err, ErrNotFound) {
		t.Errorf("update foreign task: got %v", err)
	}
	if _, err := env.projects.AddTask(ctx, 1, project.ID, ProjectTaskInput{Title: " "}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("blank title: got %v", err)
	}
	if _, err := env.projects.AddTask(ctx, 1, project.ID, ProjectTaskInput{Title: "x", Status: "blocked"}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad status: got %v", err)
	}
	if _, err := env.projects.SetTaskStatus(ctx, 1, project.ID, task.ID, "blocked", time.Now()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad status update: got %v", err)
	}
}
