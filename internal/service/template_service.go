package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"everyday-planner/internal/apperr"
	"everyday-planner/internal/model"
	"everyday-planner/internal/recurrence"
	"everyday-planner/internal/repository"
)

// TemplateInput carries the fields for creating or updating a template.
type TemplateInput struct {
	Title            string
	Description      string
	EstimatedMinutes int
	Priority         int
	RecurrenceKind   recurrence.Kind
	DayOfWeek        *int
	SpecificDate     *time.Time
	IntervalDays     *int
	DefaultStartTime *string
	ActiveFrom       *time.Time
	ActiveTo         *time.Time
}

// TemplateService owns task-template CRUD.
type TemplateService struct {
	templateRepo *repository.TemplateRepository
}

func NewTemplateService(templateRepo *repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

func (s *TemplateService) Create(ctx context.Context, userID uint, input TemplateInput) (*model.TaskTemplate, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	template := model.TaskTemplate{
		UserID:           userID,
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		EstimatedMinutes: input.EstimatedMinutes,
		Priority:         input.Priority,
		RecurrenceKind:   input.RecurrenceKind,
		DayOfWeek:        input.DayOfWeek,
		SpecificDate:     normalizeDatePtr(input.SpecificDate),
		IntervalDays:     input.IntervalDays,
		DefaultStartTime: input.DefaultStartTime,
		ActiveFrom:       normalizeDatePtr(input.ActiveFrom),
		ActiveTo:         normalizeDatePtr(input.ActiveTo),
		Enabled:          true,
	}
	if err := s.templateRepo.Create(ctx, &template); err != nil {
		return nil, apperr.Integrityf(err, "create template")
	}
	return &template, nil
}

func (s *TemplateService) Update(ctx context.Context, userID, templateID uint, input TemplateInput, enabled bool) (*model.TaskTemplate, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	template, err := s.requireOwned(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	template.Title = strings.TrimSpace(input.Title)
	template.Description = input.Description
	template.EstimatedMinutes = input.EstimatedMinutes
	template.Priority = input.Priority
	template.RecurrenceKind = input.RecurrenceKind
	template.DayOfWeek = input.DayOfWeek
	template.SpecificDate = normalizeDatePtr(input.SpecificDate)
	template.IntervalDays = input.IntervalDays
	template.DefaultStartTime = input.DefaultStartTime
	template.ActiveFrom = normalizeDatePtr(input.ActiveFrom)
	template.ActiveTo = normalizeDatePtr(input.ActiveTo)
	template.Enabled = enabled

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, apperr.Integrityf(err, "update template")
	}
	return template, nil
}

func (s *TemplateService) SetEnabled(ctx context.Context, userID, templateID uint, enabled bool) (*model.TaskTemplate, error) {
	template, err := s.requireOwned(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}
	template.Enabled = enabled
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, apperr.Integrityf(err, "set template enabled")
	}
	return template, nil
}

// Delete removes the template. Already-generated instances are untouched.
func (s *TemplateService) Delete(ctx context.Context, userID, templateID uint) error {
	if _, err := s.requireOwned(ctx, userID, templateID); err != nil {
		return err
	}
	if err := s.templateRepo.Delete(ctx, userID, templateID); err != nil {
		return apperr.Integrityf(err, "delete template")
	}
	return nil
}

func (s *TemplateService) List(ctx context.Context, userID uint) ([]model.TaskTemplate, error) {
	templates, err := s.templateRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Integrityf(err, "list templates")
	}
	return templates, nil
}

func (s *TemplateService) validate(input TemplateInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperr.Validationf("title is required")
	}
	if input.EstimatedMinutes <= 0 {
		return apperr.Validationf("estimatedMinutes must be greater than 0")
	}
	if input.Priority < 1 || input.Priority > 5 {
		return apperr.Validationf("priority must be between 1 and 5")
	}
	if input.DefaultStartTime != nil {
		if _, err := time.Parse("15:04", *input.DefaultStartTime); err != nil {
			return apperr.Validationf("defaultStartTime must be HH:MM")
		}
	}
	if input.ActiveFrom != nil && input.ActiveTo != nil && input.ActiveFrom.After(*input.ActiveTo) {
		return apperr.Validationf("activeFrom cannot be later than activeTo")
	}
	// Kind/parameter combinations are checked by the recurrence rule.
	if _, err := recurrence.New(input.RecurrenceKind, recurrence.Params{
		DayOfWeek:    input.DayOfWeek,
		SpecificDate: input.SpecificDate,
		IntervalDays: input.IntervalDays,
		ActiveFrom:   input.ActiveFrom,
	}); err != nil {
		return err
	}
	return nil
}

func (s *TemplateService) requireOwned(ctx context.Context, userID, templateID uint) (*model.TaskTemplate, error) {
	template, err := s.templateRepo.FindByID(ctx, userID, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("template not found")
		}
		return nil, apperr.Integrityf(err, "find template")
	}
	return template, nil
}

func normalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := model.DateOnly(*t)
	return &d
}
