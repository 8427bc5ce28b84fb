package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"everyday-planner/internal/model"
)

// CheckinRepository handles hourly checkins and their records.
type CheckinRepository struct {
	db *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *CheckinRepository) WithTx(tx *gorm.DB) *CheckinRepository {
	return &CheckinRepository{db: tx}
}

// Create inserts the checkin together with its records.
func (r *CheckinRepository) Create(ctx context.Context, checkin *model.HourlyCheckin) error {
	if err := r.db.WithContext(ctx).Create(checkin).Error; err != nil {
		return fmt.Errorf("create checkin: %w", err)
	}
	return nil
}

func (r *CheckinRepository) Save(ctx context.Context, checkin *model.HourlyCheckin) error {
	if err := r.db.WithContext(ctx).Omit("Records").Save(checkin).Error; err != nil {
		return fmt.Errorf("save checkin: %w", err)
	}
	return nil
}

func (r *CheckinRepository) FindByID(ctx context.Context, userID, checkinID uint) (*model.HourlyCheckin, error) {
	var checkin model.HourlyCheckin
	if err := r.db.WithContext(ctx).
		Preload("Records", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ? AND id = ?", userID, checkinID).
		First(&checkin).Error; err != nil {
		return nil, err
	}
	return &checkin, nil
}

// ExistsForWindow reports whether a checkin exists for exactly the given
// (start, end) pair.
func (r *CheckinRepository) ExistsForWindow(ctx context.Context, userID uint, start, end time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.HourlyCheckin{}).
		Where("user_id = ? AND window_start = ? AND window_end = ?", userID, start, end).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count checkins: %w", err)
	}
	return count > 0, nil
}

// ListByWindowRange returns checkins whose window start falls in
// [start, endExclusive), newest window first, records preloaded.
func (r *CheckinRepository) ListByWindowRange(ctx context.Context, userID uint, start, endExclusive time.Time) ([]model.HourlyCheckin, error) {
	var checkins []model.HourlyCheckin
	if err := r.db.WithContext(ctx).
		Preload("Records", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ? AND window_start >= ? AND window_start < ?", userID, start, endExclusive).
		Order("window_start DESC, id DESC").
		Find(&checkins).Error; err != nil {
		return nil, err
	}
	return checkins, nil
}

// Page returns one page of the user's checkins ordered by window start
// descending, optionally restricted to windows starting on a single date,
// plus the total row count for the same filter.
func (r *CheckinRepository) Page(ctx context.Context, userID uint, date *time.Time, offset, limit int) ([]model.HourlyCheckin, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.HourlyCheckin{}).Where("user_id = ?", userID)
	if date != nil {
		dayStart := model.DateOnly(*date)
		query = query.Where("window_start >= ? AND window_start < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count checkins: %w", err)
	}

	var checkins []model.HourlyCheckin
	if err := query.
		Preload("Records", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("window_start DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&checkins).Error; err != nil {
		return nil, 0, err
	}
	return checkins, total, nil
}

// ReplaceRecords swaps the checkin's record rows for the given set.
func (r *CheckinRepository) ReplaceRecords(ctx context.Context, checkinID uint, records []model.CheckinRecord) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("checkin_id = ?", checkinID).Delete(&model.CheckinRecord{}).Error; err != nil {
		return fmt.Errorf("delete checkin records: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		records[i].ID = 0
		records[i].CheckinID = checkinID
	}
	if err := db.Create(&records).Error; err != nil {
		return fmt.Errorf("insert checkin records: %w", err)
	}
	return nil
}

// Delete removes the checkin and its records.
func (r *CheckinRepository) Delete(ctx context.Context, userID, checkinID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("checkin_id = ?", checkinID).Delete(&model.CheckinRecord{}).Error; err != nil {
		return fmt.Errorf("delete checkin records: %w", err)
	}
	if err := db.Where("user_id = ? AND id = ?", userID, checkinID).
		Delete(&model.HourlyCheckin{}).Error; err != nil {
		return fmt.Errorf("delete checkin: %w", err)
	}
	return nil
}
