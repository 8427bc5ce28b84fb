package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"everyday-planner/internal/model"
)

// InstanceRepository handles CRUD for task instances.
type InstanceRepository struct {
	db *gorm.DB
}

func NewInstanceRepository(db *gorm.DB) *InstanceRepository {
	return &InstanceRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *InstanceRepository) WithTx(tx *gorm.DB) *InstanceRepository {
	return &InstanceRepository{db: tx}
}

func (r *InstanceRepository) Create(ctx context.Context, instance *model.TaskInstance) error {
	if err := r.db.WithContext(ctx).Create(instance).Error; err != nil {
		return fmt.Errorf("create task instance: %w", err)
	}
	return nil
}

func (r *InstanceRepository) Save(ctx context.Context, instance *model.TaskInstance) error {
	if err := r.db.WithContext(ctx).Save(instance).Error; err != nil {
		return fmt.Errorf("save task instance: %w", err)
	}
	return nil
}

func (r *InstanceRepository) FindByID(ctx context.Context, userID, instanceID uint) (*model.TaskInstance, error) {
	var instance model.TaskInstance
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, instanceID).
		First(&instance).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

func (r *InstanceRepository) ListByDate(ctx context.Context, userID uint, date time.Time) ([]model.TaskInstance, error) {
	var instances []model.TaskInstance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND plan_date = ?", userID, model.DateOnly(date)).
		Order("planned_start_time ASC, id DESC").
		Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

// ListActiveByDate returns the date's instances excluding CANCELLED ones,
// the candidate set for a check-in window on that date.
func (r *InstanceRepository) ListActiveByDate(ctx context.Context, userID uint, date time.Time) ([]model.TaskInstance, error) {
	var instances []model.TaskInstance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND plan_date = ? AND status <> ?", userID, model.DateOnly(date), model.StatusCancelled).
		Order("planned_start_time ASC, id DESC").
		Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

// ListByDateRange returns instances with plan date in [start, endExclusive).
func (r *InstanceRepository) ListByDateRange(ctx context.Context, userID uint, start, endExclusive time.Time) ([]model.TaskInstance, error) {
	var instances []model.TaskInstance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND plan_date >= ? AND plan_date < ?",
			userID, model.DateOnly(start), model.DateOnly(endExclusive)).
		Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

// ExistsForTemplate reports whether a generated instance already exists for
// the (user, template, date) triple.
func (r *InstanceRepository) ExistsForTemplate(ctx context.Context, userID, templateID uint, date time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.TaskInstance{}).
		Where("user_id = ? AND template_id = ? AND plan_date = ?", userID, templateID, model.DateOnly(date)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count instances: %w", err)
	}
	return count > 0, nil
}

func (r *InstanceRepository) Delete(ctx context.Context, userID, instanceID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, instanceID).
		Delete(&model.TaskInstance{}).Error; err != nil {
		return fmt.Errorf("delete task instance: %w", err)
	}
	return nil
}
