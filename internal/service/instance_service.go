package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"everyday-planner/internal/apperr"
	"everyday-planner/internal/model"
	"everyday-planner/internal/repository"
)

// ManualTaskInput carries the fields for a user-created task instance.
type ManualTaskInput struct {
	Title            string
	Description      string
	PlanDate         time.Time
	PlannedStartTime *string
	PlannedMinutes   int
}

// UpdateTaskInput carries the editable fields of a task instance.
type UpdateTaskInput struct {
	Title            string
	Description      string
	PlanDate         time.Time
	PlannedStartTime *string
	PlannedMinutes   int
	Status           model.TaskStatus
}

// InstanceService owns task-instance CRUD. Minute accounting from checkins
// lives in CheckinService; this service covers direct user edits.
type InstanceService struct {
	instanceRepo *repository.InstanceRepository
}

func NewInstanceService(instanceRepo *repository.InstanceRepository) *InstanceService {
	return &InstanceService{instanceRepo: instanceRepo}
}

// CreateManual inserts a user-created instance with no template reference.
func (s *InstanceService) CreateManual(ctx context.Context, userID uint, input ManualTaskInput) (*model.TaskInstance, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.Validationf("title is required")
	}
	if input.PlannedMinutes <= 0 {
		return nil, apperr.Validationf("plannedMinutes must be greater than 0")
	}
	if input.PlannedStartTime != nil {
		if _, err := time.Parse("15:04", *input.PlannedStartTime); err != nil {
			return nil, apperr.Validationf("plannedStartTime must be HH:MM")
		}
	}

	instance := model.TaskInstance{
		UserID:           userID,
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		PlanDate:         model.DateOnly(input.PlanDate),
		PlannedStartTime: input.PlannedStartTime,
		PlannedMinutes:   input.PlannedMinutes,
		Status:           model.StatusPending,
		AdHoc:            true,
	}
	if err := s.instanceRepo.Create(ctx, &instance); err != nil {
		return nil, apperr.Integrityf(err, "create manual task")
	}
	return &instance, nil
}

func (s *InstanceService) ListByDate(ctx context.Context, userID uint, date time.Time) ([]model.TaskInstance, error) {
	instances, err := s.instanceRepo.ListByDate(ctx, userID, date)
	if err != nil {
		return nil, apperr.Integrityf(err, "list tasks")
	}
	return instances, nil
}

// Update replaces the editable fields. CANCELLED is honored as requested;
// any other requested status is re-derived from the minute totals, except
// that an untouched task may stay PENDING.
func (s *InstanceService) Update(ctx context.Context, userID, instanceID uint, input UpdateTaskInput) (*model.TaskInstance, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.Validationf("title is required")
	}
	if input.PlannedMinutes <= 0 {
		return nil, apperr.Validationf("plannedMinutes must be greater than 0")
	}
	if !model.ValidStatus(input.Status) {
		return nil, apperr.Validationf("unknown task status %q", input.Status)
	}

	instance, err := s.requireOwned(ctx, userID, instanceID)
	if err != nil {
		return nil, err
	}

	instance.Title = strings.TrimSpace(input.Title)
	instance.Description = input.Description
	instance.PlanDate = model.DateOnly(input.PlanDate)
	instance.PlannedStartTime = input.PlannedStartTime
	instance.PlannedMinutes = input.PlannedMinutes

	if input.Status == model.StatusCancelled {
		instance.Status = model.StatusCancelled
	} else {
		instance.Status = statusForMinutes(instance.CompletedMinutes, instance.PlannedMinutes)
		if input.Status == model.StatusPending && instance.CompletedMinutes == 0 {
			instance.Status = model.StatusPending
		}
	}

	if err := s.instanceRepo.Save(ctx, instance); err != nil {
		return nil, apperr.Integrityf(err, "update task")
	}
	return instance, nil
}

// SetStatus moves the instance to the requested state. PENDING is refused
// once minutes have been logged.
func (s *InstanceService) SetStatus(ctx context.Context, userID, instanceID uint, status model.TaskStatus) (*model.TaskInstance, error) {
	if !model.ValidStatus(status) {
		return nil, apperr.Validationf("unknown task status %q", status)
	}

	instance, err := s.requireOwned(ctx, userID, instanceID)
	if err != nil {
		return nil, err
	}
	if status == model.StatusPending && instance.CompletedMinutes > 0 {
		return nil, apperr.Validationf("cannot set task to PENDING when completed minutes is greater than 0")
	}

	instance.Status = status
	if err := s.instanceRepo.Save(ctx, instance); err != nil {
		return nil, apperr.Integrityf(err, "set task status")
	}
	return instance, nil
}

func (s *InstanceService) Delete(ctx context.Context, userID, instanceID uint) error {
	if _, err := s.requireOwned(ctx, userID, instanceID); err != nil {
		return err
	}
	if err := s.instanceRepo.Delete(ctx, userID, instanceID); err != nil {
		return apperr.Integrityf(err, "delete task")
	}
	return nil
}

func (s *InstanceService) requireOwned(ctx context.Context, userID, instanceID uint) (*model.TaskInstance, error) {
	instance, err := s.instanceRepo.FindByID(ctx, userID, instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("task instance not found")
		}
		return nil, apperr.Integrityf(err, "find task instance")
	}
	return instance, nil
}

func statusForMinutes(completedMinutes, plannedMinutes int) model.TaskStatus {
	switch {
	case completedMinutes >= plannedMinutes:
		return model.StatusCompleted
	case completedMinutes > 0:
		return model.StatusInProgress
	default:
		return model.StatusPending
	}
}
