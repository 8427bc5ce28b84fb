package service

import (
	"context"
	"time"

	"everyday-planner/internal/apperr"
	"everyday-planner/internal/model"
	"everyday-planner/internal/repository"
)

// HolidayService resolves dates to holiday/workday, layering user overrides
// over the default weekend rule.
type HolidayService struct {
	holidayRepo *repository.HolidayRepository
}

func NewHolidayService(holidayRepo *repository.HolidayRepository) *HolidayService {
	return &HolidayService{holidayRepo: holidayRepo}
}

// Classify returns the resolved status of a single date.
func (s *HolidayService) Classify(ctx context.Context, userID uint, date time.Time) (model.DayClassification, error) {
	override, err := s.holidayRepo.FindByDate(ctx, userID, date)
	if err != nil {
		return model.DayClassification{}, apperr.Integrityf(err, "classify date")
	}
	if override != nil {
		return model.DayClassification{
			Date:       override.Date,
			IsHoliday:  override.IsHoliday,
			Customized: true,
			Name:       override.Name,
		}, nil
	}
	return model.DayClassification{
		Date:      model.DateOnly(date),
		IsHoliday: model.IsWeekend(date),
	}, nil
}

// ListRange returns one classification per day in [from, to].
func (s *HolidayService) ListRange(ctx context.Context, userID uint, from, to time.Time) ([]model.DayClassification, error) {
	from, to = model.DateOnly(from), model.DateOnly(to)
	if from.After(to) {
		return nil, apperr.Validationf("from cannot be later than to")
	}

	overrides, err := s.holidayRepo.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, apperr.Integrityf(err, "list holiday overrides")
	}
	byDate := make(map[time.Time]model.HolidayOverride, len(overrides))
	for _, o := range overrides {
		byDate[model.DateOnly(o.Date)] = o
	}

	var days []model.DayClassification
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if o, ok := byDate[d]; ok {
			days = append(days, model.DayClassification{
				Date:       d,
				IsHoliday:  o.IsHoliday,
				Customized: true,
				Name:       o.Name,
			})
			continue
		}
		days = append(days, model.DayClassification{Date: d, IsHoliday: model.IsWeekend(d)})
	}
	return days, nil
}

// Upsert creates or replaces the override for the date; idempotent.
func (s *HolidayService) Upsert(ctx context.Context, userID uint, date time.Time, isHoliday bool, name string) (model.DayClassification, error) {
	override, err := s.holidayRepo.Upsert(ctx, userID, date, isHoliday, name)
	if err != nil {
		return model.DayClassification{}, apperr.Integrityf(err, "upsert holiday override")
	}
	return model.DayClassification{
		Date:       override.Date,
		IsHoliday:  override.IsHoliday,
		Customized: true,
		Name:       override.Name,
	}, nil
}

// Remove deletes the override; the date reverts to the weekend rule.
func (s *HolidayService) Remove(ctx context.Context, userID uint, date time.Time) error {
	if err := s.holidayRepo.Delete(ctx, userID, date); err != nil {
		return apperr.Integrityf(err, "remove holiday override")
	}
	return nil
}
