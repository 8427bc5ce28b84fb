package service

import (
	"context"
	"math"
	"time"

	"everyday-planner/internal/apperr"
	"everyday-planner/internal/model"
	"everyday-planner/internal/repository"
)

// SummaryPeriod selects the calendar span of a completion summary.
type SummaryPeriod string

const (
	PeriodWeek  SummaryPeriod = "WEEK"
	PeriodMonth SummaryPeriod = "MONTH"
	PeriodYear  SummaryPeriod = "YEAR"
)

// CompletionSummary aggregates task and minute completion over a period.
// Rates are percentages rounded to two decimals; both are 0 when the
// denominator is 0.
type CompletionSummary struct {
	Period               SummaryPeriod `json:"period"`
	StartDate            time.Time     `json:"startDate"`
	EndDate              time.Time     `json:"endDate"`
	TotalTasks           int           `json:"totalTasks"`
	CompletedTasks       int           `json:"completedTasks"`
	AdHocTasks           int           `json:"adHocTasks"`
	PlannedMinutes       int           `json:"plannedMinutes"`
	CompletedMinutes     int           `json:"completedMinutes"`
	TaskCompletionRate   float64       `json:"taskCompletionRate"`
	MinuteCompletionRate float64       `json:"minuteCompletionRate"`
}

// ReviewPage is one page of checkin history, newest window first.
type ReviewPage struct {
	Items      []model.HourlyCheckin `json:"items"`
	Page       int                   `json:"page"`
	Size       int                   `json:"size"`
	Total      int64                 `json:"total"`
	TotalPages int64                 `json:"totalPages"`
}

const (
	defaultReviewPageSize = 10
	maxReviewPageSize     = 50
)

// StatsService computes completion statistics and checkin history pages.
type StatsService struct {
	instanceRepo *repository.InstanceRepository
	checkinRepo  *repository.CheckinRepository
}

func NewStatsService(instanceRepo *repository.InstanceRepository, checkinRepo *repository.CheckinRepository) *StatsService {
	return &StatsService{instanceRepo: instanceRepo, checkinRepo: checkinRepo}
}

// Summarize aggregates the calendar week (Monday start), month or year
// containing referenceDate.
func (s *StatsService) Summarize(ctx context.Context, userID uint, period SummaryPeriod, referenceDate time.Time) (*CompletionSummary, error) {
	start, endExclusive, err := periodRange(period, referenceDate)
	if err != nil {
		return nil, err
	}

	instances, err := s.instanceRepo.ListByDateRange(ctx, userID, start, endExclusive)
	if err != nil {
		return nil, apperr.Integrityf(err, "list instances for summary")
	}

	summary := CompletionSummary{
		Period:    period,
		StartDate: start,
		EndDate:   endExclusive.AddDate(0, 0, -1),
	}
	for _, instance := range instances {
		summary.TotalTasks++
		if instance.Status == model.StatusCompleted {
			summary.CompletedTasks++
		}
		if instance.AdHoc {
			summary.AdHocTasks++
		}
		summary.PlannedMinutes += instance.PlannedMinutes
		summary.CompletedMinutes += instance.CompletedMinutes
	}

	if summary.TotalTasks > 0 {
		summary.TaskCompletionRate = round2(float64(summary.CompletedTasks) / float64(summary.TotalTasks) * 100)
	}
	if summary.PlannedMinutes > 0 {
		summary.MinuteCompletionRate = round2(float64(summary.CompletedMinutes) / float64(summary.PlannedMinutes) * 100)
	}
	return &summary, nil
}

// PaginatedReviews returns one page of checkins ordered by window start
// descending, optionally filtered to a single calendar date. A page past
// the end is an empty page, not an error.
func (s *StatsService) PaginatedReviews(ctx context.Context, userID uint, page, size int, date *time.Time) (*ReviewPage, error) {
	if page < 1 {
		return nil, apperr.Validationf("page must be positive")
	}
	if size < 1 {
		size = defaultReviewPageSize
	}
	if size > maxReviewPageSize {
		size = maxReviewPageSize
	}

	items, total, err := s.checkinRepo.Page(ctx, userID, date, (page-1)*size, size)
	if err != nil {
		return nil, apperr.Integrityf(err, "page checkins")
	}
	if items == nil {
		items = []model.HourlyCheckin{}
	}

	totalPages := int64(0)
	if total > 0 {
		totalPages = (total + int64(size) - 1) / int64(size)
	}
	return &ReviewPage{
		Items:      items,
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// periodRange computes [start, endExclusive) for the calendar period
// containing the reference date. Weeks start on Monday.
func periodRange(period SummaryPeriod, referenceDate time.Time) (time.Time, time.Time, error) {
	ref := model.DateOnly(referenceDate)
	switch period {
	case PeriodWeek:
		offset := int(ref.Weekday()+6) % 7 // days since Monday
		start := ref.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil
	case PeriodMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), nil
	case PeriodYear:
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, apperr.Validationf("unknown summary period %q", period)
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
