package service

import (
	"context"
	"strings"

	"daily-quest/internal/model"
	"daily-quest/internal/repository"
)

const (
	// MaxGeneratedMissions bounds one Generate call.
	MaxGeneratedMissions = 3
	placeholderMinutes   = 10
)

// MissionInput represents data required to author a mission.
type MissionInput struct {
	Title        string
	Description  string
	Category     string
	Difficulty   model.Difficulty
	TimeRequired int
	ProjectID    *uint
}

// GenerateRequest is the user's self-reported state.
type GenerateRequest struct {
	Energy        int
	Mood          model.Mood
	TimeAvailable int
}

// MissionService authors missions and picks the ones that fit the user's state.
type MissionService struct {
	missionRepo *repository.MissionRepository
	projectRepo *repository.ProjectRepository
}

func NewMissionService(missionRepo *repository.MissionRepository, projectRepo *repository.ProjectRepository) *MissionService {
	return &MissionService{missionRepo: missionRepo, projectRepo: projectRepo}
}

// Difficulty derives the tier from energy (1..5) and mood.
func Difficulty(energy int, mood model.Mood) model.Difficulty {
	engaged := mood == model.MoodFocused || mood == model.MoodMotivated
	switch {
	case energy >= 4 && engaged:
		return model.DifficultyHard
	case energy >= 3 && engaged:
		return model.DifficultyMedium
	default:
		return model.DifficultyEasy
	}
}

// Placeholder is returned by Generate when the user has no mission that fits at all.
func Placeholder(userID uint) model.Mission {
	return model.Mission{
		UserID:       userID,
		Title:        "Create your first mission",
		Description:  "Get started by creating your first mission task",
		Category:     "System",
		Difficulty:   model.DifficultyEasy,
		TimeRequired: placeholderMinutes,
	}
}

// Generate selects up to three existing missions. Drained users skip the difficulty
// filter; an empty tier falls back to time-only matching, then to Placeholder.
func (s *MissionService) Generate(ctx context.Context, userID uint, req GenerateRequest) ([]model.Mission, error) {
	if req.Energy < 1 || req.Energy > 5 {
		return nil, invalid("energy must be between 1 and 5, got %d", req.Energy)
	}
	if !req.Mood.Valid() {
		return nil, invalid("unknown mood %q", req.Mood)
	}
	if req.TimeAvailable <= 0 {
		return nil, invalid("time available must be positive, got %d", req.TimeAvailable)
	}

	filter := repository.MissionFilter{
		UserID:     userID,
		MaxMinutes: req.TimeAvailable,
		Limit:      MaxGeneratedMissions,
	}
	if req.Mood != model.MoodDrained {
		tier := Difficulty(req.Energy, req.Mood)
		filter.Difficulty = &tier
	}

	missions, err := s.missionRepo.Find(ctx, filter)
	if err != nil {
		return nil, translate(err)
	}
	if len(missions) > 0 {
		return missions, nil
	}

	if filter.Difficulty != nil {
		filter.Difficulty = nil
		missions, err = s.missionRepo.Find(ctx, filter)
		if err != nil {
			return nil, translate(err)
		}
		if len(missions) > 0 {
			return missions, nil
		}
	}

	return []model.Mission{Placeholder(userID)}, nil
}

func (s *MissionService) Create(ctx context.Context, userID uint, input MissionInput) (*model.Mission, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalid("title is required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, invalid("category is required")
	}
	if !input.Difficulty.Valid() {
		return nil, invalid("unknown difficulty %q", input.Difficulty)
	}
	if input.TimeRequired <= 0 {
		return nil, invalid("time required must be positive, got %d", input.TimeRequired)
	}
	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(ctx, userID, *input.ProjectID); err != nil {
			return nil, translate(err)
		}
	}

	mission := model.Mission{
		UserID:       userID,
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		Category:     category,
		Difficulty:   input.Difficulty,
		TimeRequired: input.TimeRequired,
		ProjectID:    input.ProjectID,
	}
	if err := s.missionRepo.Create(ctx, &mission); err != nil {
		return nil, translate(err)
	}
	return &mission, nil
}

func (s *MissionService) List(ctx context.Context, userID uint) ([]model.Mission, error) {
	missions, err := s.missionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	return missions, nil
}
