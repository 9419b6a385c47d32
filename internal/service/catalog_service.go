package service

import (
	"context"
	"sort"
	"strings"

	"daily-quest/internal/model"
	"daily-quest/internal/repository"
)

// CategoryGroup is a catalog category with its templates.
type CategoryGroup struct {
	Category  string               `json:"category"`
	Templates []model.TaskTemplate `json:"templates"`
}

// DefaultTemplates seeds an empty catalog.
var DefaultTemplates = []model.TaskTemplate{
	{Name: "Deep work block", Category: "Work", Icon: "briefcase"},
	{Name: "Inbox zero", Category: "Work", Icon: "mail"},
	{Name: "Workout", Category: "Health", Icon: "dumbbell"},
	{Name: "Meditate", Category: "Health", Icon: "leaf"},
	{Name: "Read 20 pages", Category: "Learning", Icon: "book"},
	{Name: "Practice a skill", Category: "Learning", Icon: "target"},
	{Name: "Review finances", Category: "Finance", Icon: "wallet"},
	{Name: "Plan tomorrow", Icon: "calendar"},
}

// CatalogService exposes the task template catalog.
type CatalogService struct {
	repo *repository.TemplateRepository
}

func NewCatalogService(repo *repository.TemplateRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Seed inserts templates missing from the catalog; existing names are left untouched.
func (s *CatalogService) Seed(ctx context.Context, templates []model.TaskTemplate) error {
	for _, tmpl := range templates {
		if strings.TrimSpace(tmpl.Name) == "" {
			return invalid("template name is required")
		}
		if _, err := s.repo.GetOrCreate(ctx, tmpl); err != nil {
			return translate(err)
		}
	}
	return nil
}

func (s *CatalogService) List(ctx context.Context) ([]model.TaskTemplate, error) {
	templates, err := s.repo.List(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return templates, nil
}

// Search matches query case-insensitively against name and category.
func (s *CatalogService) Search(ctx context.Context, query string) ([]model.TaskTemplate, error) {
	templates, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return templates, nil
	}
	var out []model.TaskTemplate
	for _, t := range templates {
		if strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Category), needle) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Grouped buckets templates by category, uncategorized ones under model.DefaultCategory.
func Grouped(templates []model.TaskTemplate) []CategoryGroup {
	byCategory := make(map[string][]model.TaskTemplate)
	for _, t := range templates {
		label := t.CategoryLabel()
		byCategory[label] = append(byCategory[label], t)
	}
	groups := make([]CategoryGroup, 0, len(byCategory))
	for category, items := range byCategory {
		groups = append(groups, CategoryGroup{Category: category, Templates: items})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})
	return groups
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*model.TaskTemplate, error) {
	tmpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return tmpl, nil
}
