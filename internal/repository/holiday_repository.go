package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"everyday-planner/internal/model"
)

// HolidayRepository handles per-user holiday overrides.
type HolidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// FindByDate returns the override for date, or nil when none exists.
func (r *HolidayRepository) FindByDate(ctx context.Context, userID uint, date time.Time) (*model.HolidayOverride, error) {
	var override model.HolidayOverride
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, model.DateOnly(date)).
		First(&override).Error
	switch {
	case err == nil:
		return &override, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find holiday override: %w", err)
	}
}

// ListRange returns overrides with date in [from, to], ascending.
func (r *HolidayRepository) ListRange(ctx context.Context, userID uint, from, to time.Time) ([]model.HolidayOverride, error) {
	var overrides []model.HolidayOverride
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, model.DateOnly(from), model.DateOnly(to)).
		Order("date ASC").
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

// Upsert creates or replaces the override for the date.
func (r *HolidayRepository) Upsert(ctx context.Context, userID uint, date time.Time, isHoliday bool, name string) (*model.HolidayOverride, error) {
	existing, err := r.FindByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if existing == nil {
		override := model.HolidayOverride{
			UserID:    userID,
			Date:      model.DateOnly(date),
			IsHoliday: isHoliday,
			Name:      name,
		}
		if err := db.Create(&override).Error; err != nil {
			return nil, fmt.Errorf("create holiday override: %w", err)
		}
		return &override, nil
	}

	existing.IsHoliday = isHoliday
	existing.Name = name
	if err := db.Save(existing).Error; err != nil {
		return nil, fmt.Errorf("update holiday override: %w", err)
	}
	return existing, nil
}

// Delete removes the override for the date; no-op when none exists.
func (r *HolidayRepository) Delete(ctx context.Context, userID uint, date time.Time) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, model.DateOnly(date)).
		Delete(&model.HolidayOverride{}).Error; err != nil {
		return fmt.Errorf("delete holiday override: %w", err)
	}
	return nil
}
