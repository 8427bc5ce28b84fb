package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"everyday-planner/internal/model"
)

// TemplateRepository handles CRUD for task templates.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *TemplateRepository) WithTx(tx *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: tx}
}

func (r *TemplateRepository) Create(ctx context.Context, template *model.TaskTemplate) error {
	if err := r.db.WithContext(ctx).Create(template).Error; err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) Save(ctx context.Context, template *model.TaskTemplate) error {
	if err := r.db.WithContext(ctx).Save(template).Error; err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, userID, templateID uint) (*model.TaskTemplate, error) {
	var template model.TaskTemplate
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, templateID).
		First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepository) ListByUser(ctx context.Context, userID uint) ([]model.TaskTemplate, error) {
	var templates []model.TaskTemplate
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id DESC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// ListEnabled returns the user's enabled templates in creation order.
// Activity bounds are evaluated by the recurrence schedule, not here.
func (r *TemplateRepository) ListEnabled(ctx context.Context, userID uint) ([]model.TaskTemplate, error) {
	var templates []model.TaskTemplate
	if err := r.db.WithContext(ctx).Where("user_id = ? AND enabled = ?", userID, true).
		Order("id ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Delete removes a template. Generated instances keep their template id and
// are left untouched.
func (r *TemplateRepository) Delete(ctx context.Context, userID, templateID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, templateID).
		Delete(&model.TaskTemplate{}).Error; err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
