package service

import (
	"context"
	"strings"
	"time"

	"daily-quest/internal/model"
	"daily-quest/internal/repository"
)

// ProjectInput represents data required to create a project.
type ProjectInput struct {
	Name          string
	Description   string
	Status        model.ProjectStatus
	StartDate     *time.Time
	EndDate       *time.Time
	CurrentAmount int64
	TargetAmount  int64
}

// ProjectTaskInput represents data required to add a task to a project.
type ProjectTaskInput struct {
	Title       string
	Description string
	Status      model.ProjectTaskStatus
	Deadline    *time.Time
}

// ProjectService wraps project-related business logic.
type ProjectService struct {
	repo     *repository.ProjectRepository
	taskRepo *repository.ProjectTaskRepository
}

func NewProjectService(repo *repository.ProjectRepository, taskRepo *repository.ProjectTaskRepository) *ProjectService {
	return &ProjectService{repo: repo, taskRepo: taskRepo}
}

func (s *ProjectService) Create(ctx context.Context, userID uint, input ProjectInput) (*model.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	status := input.Status
	if status == "" {
		status = model.ProjectPlanning
	}
	if !status.Valid() {
		return nil, invalid("unknown status %q", status)
	}
	if input.TargetAmount < 0 || input.CurrentAmount < 0 {
		return nil, invalid("amounts must not be negative")
	}

	start := time.Now().UTC()
	if input.StartDate != nil {
		start = input.StartDate.UTC()
	}
	if input.EndDate != nil && input.EndDate.Before(start) {
		return nil, invalid("end date precedes start date")
	}

	project := model.Project{
		UserID:        userID,
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		Status:        status,
		StartDate:     start,
		EndDate:       input.EndDate,
		CurrentAmount: input.CurrentAmount,
		TargetAmount:  input.TargetAmount,
	}
	if err := s.repo.Create(ctx, &project); err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (s *ProjectService) List(ctx context.Context, userID uint) ([]model.Project, error) {
	projects, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	return projects, nil
}

// UpdateAmount records new progress toward the project's target.
func (s *ProjectService) UpdateAmount(ctx context.Context, userID, projectID uint, current int64) (*model.Project, error) {
	if current < 0 {
		return nil, invalid("amount must not be negative")
	}
	project, err := s.repo.FindByID(ctx, userID, projectID)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.repo.UpdateAmount(ctx, project, current); err != nil {
		return nil, translate(err)
	}
	project.CurrentAmount = current
	return project, nil
}

// AddTask attaches a task to one of the user's projects.
func (s *ProjectService) AddTask(ctx context.Context, userID, projectID uint, input ProjectTaskInput) (*model.ProjectTask, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalid("title is required")
	}
	status := input.Status
	if status == "" {
		status = model.TaskPending
	}
	if !status.Valid() {
		return nil, invalid("unknown task status %q", status)
	}
	if _, err := s.repo.FindByID(ctx, userID, projectID); err != nil {
		return nil, translate(err)
	}

	task := model.ProjectTask{
		ProjectID:   projectID,
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
	}
	if input.Deadline != nil {
		deadline := input.Deadline.UTC()
		task.Deadline = &deadline
	}
	if status == model.TaskCompleted {
		done := time.Now().UTC()
		task.CompletedAt = &done
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

// ListTasks returns the tasks of one of the user's projects, nearest deadline first.
func (s *ProjectService) ListTasks(ctx context.Context, userID, projectID uint) ([]model.ProjectTask, error) {
	if _, err := s.repo.FindByID(ctx, userID, projectID); err != nil {
		return nil, translate(err)
	}
	tasks, err := s.taskRepo.ListByProject(ctx, userID, projectID)
	if err != nil {
		return nil, translate(err)
	}
	return tasks, nil
}

func (s *ProjectService) SetTaskStatus(ctx context.Context, userID, projectID, taskID uint, status model.ProjectTaskStatus, at time.Time) (*model.ProjectTask, error) {
	if !status.Valid() {
		return nil, invalid("unknown task status %q", status)
	}
	task, err := s.taskRepo.FindByID(ctx, userID, projectID, taskID)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.taskRepo.UpdateStatus(ctx, task, status, at); err != nil {
		return nil, translate(err)
	}
	return task, nil
}

// MainProject picks the project whose name or description mentions keyword,
// falling back to the first one. It returns nil for an empty list.
func MainProject(projects []model.Project, keyword string) *model.Project {
	if len(projects) == 0 {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle != "" {
		for i := range projects {
			if strings.Contains(strings.ToLower(projects[i].Name), needle) ||
				strings.Contains(strings.ToLower(projects[i].Description), needle) {
				return &projects[i]
			}
		}
	}
	return &projects[0]
}

// GoalPercent is GoalProgressPercent over the project's persisted amounts.
func GoalPercent(p model.Project) (int, error) {
	return GoalProgressPercent(p.CurrentAmount, p.TargetAmount)
}
