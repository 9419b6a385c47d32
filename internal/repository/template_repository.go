package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"daily-quest/internal/model"
)

// TemplateRepository reads and seeds the task catalog.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetOrCreate returns the template with the given name, inserting it when missing.
func (r *TemplateRepository) GetOrCreate(ctx context.Context, tmpl model.TaskTemplate) (*model.TaskTemplate, error) {
	var existing model.TaskTemplate
	db := r.db.WithContext(ctx)
	err := db.Where("name = ?", tmpl.Name).First(&existing).Error
	switch {
	case err == nil:
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(&tmpl).Error; err != nil {
			return nil, fmt.Errorf("create template: %w", err)
		}
		return &tmpl, nil
	default:
		return nil, fmt.Errorf("find template: %w", err)
	}
}

func (r *TemplateRepository) List(ctx context.Context) ([]model.TaskTemplate, error) {
	var templates []model.TaskTemplate
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id uint) (*model.TaskTemplate, error) {
	var tmpl model.TaskTemplate
	if err := r.db.WithContext(ctx).First(&tmpl, id).Error; err != nil {
		return nil, fmt.Errorf("find template: %w", err)
	}
	return &tmpl, nil
}
