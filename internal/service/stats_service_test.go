package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"everyday-planner/internal/apperr"
	"everyday-planner/internal/model"
)

func (e *testEnv) taskOn(t *testing.T, userID uint, day time.Time, planned, completed int, status model.TaskStatus, adHoc bool) {
	t.Helper()
	instance := model.TaskInstance{
		UserID:           userID,
		Title:            "Task",
		PlanDate:         day,
		PlannedMinutes:   planned,
		CompletedMinutes: completed,
		Status:           status,
		AdHoc:            adHoc,
	}
	require.NoError(t, e.db.Create(&instance).Error)
}

func TestSummarizeWeek(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	// 2024-01-10 is a Wednesday; its week runs Mon 2024-01-08 .. Sun 2024-01-14.
	monday := date(2024, 1, 8)
	env.taskOn(t, user.ID, monday, 60, 60, model.StatusCompleted, false)
	env.taskOn(t, user.ID, monday.AddDate(0, 0, 2), 90, 30, model.StatusInProgress, false)
	env.taskOn(t, user.ID, monday.AddDate(0, 0, 6), 30, 30, model.StatusCompleted, true)
	// Outside the week on both sides.
	env.taskOn(t, user.ID, monday.AddDate(0, 0, -1), 45, 45, model.StatusCompleted, false)
	env.taskOn(t, user.ID, monday.AddDate(0, 0, 7), 45, 0, model.StatusPending, false)

	summary, err := env.stats.Summarize(ctx, user.ID, PeriodWeek, date(2024, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, monday, summary.StartDate)
	assert.Equal(t, date(2024, 1, 14), summary.EndDate)
	assert.Equal(t, 3, summary.TotalTasks)
	assert.Equal(t, 2, summary.CompletedTasks)
	assert.Equal(t, 1, summary.AdHocTasks)
	assert.Equal(t, 180, summary.PlannedMinutes)
	assert.Equal(t, 120, summary.CompletedMinutes)
	assert.InDelta(t, 66.67, summary.TaskCompletionRate, 0.001)
	assert.InDelta(t, 66.67, summary.MinuteCompletionRate, 0.001)
}

func TestSummarizeSundayBelongsToItsWeek(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	// 2024-01-14 is a Sunday; its week starts Monday 2024-01-08.
	summary, err := env.stats.Summarize(ctx, user.ID, PeriodWeek, date(2024, 1, 14))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 8), summary.StartDate)
	assert.Equal(t, date(2024, 1, 14), summary.EndDate)
}

func TestSummarizeMonthAndYear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	env.taskOn(t, user.ID, date(2024, 2, 1), 30, 30, model.StatusCompleted, false)
	env.taskOn(t, user.ID, date(2024, 2, 29), 30, 0, model.StatusPending, false)
	env.taskOn(t, user.ID, date(2024, 3, 1), 30, 30, model.StatusCompleted, false)

	month, err := env.stats.Summarize(ctx, user.ID, PeriodMonth, date(2024, 2, 15))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 1), month.StartDate)
	assert.Equal(t, date(2024, 2, 29), month.EndDate)
	assert.Equal(t, 2, month.TotalTasks)

	year, err := env.stats.Summarize(ctx, user.ID, PeriodYear, date(2024, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), year.StartDate)
	assert.Equal(t, date(2024, 12, 31), year.EndDate)
	assert.Equal(t, 3, year.TotalTasks)
}

func TestSummarizeZeroDenominators(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	summary, err := env.stats.Summarize(ctx, user.ID, PeriodWeek, date(2024, 1, 10))
	require.NoError(t, err)
	assert.Zero(t, summary.TotalTasks)
	assert.Zero(t, summary.TaskCompletionRate)
	assert.Zero(t, summary.MinuteCompletionRate)
}

func TestSummarizeUnknownPeriod(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "alice")

	_, err := env.stats.Summarize(context.Background(), user.ID, SummaryPeriod("QUARTER"), date(2024, 1, 10))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func (e *testEnv) submitWindow(t *testing.T, userID uint, start time.Time) *model.HourlyCheckin {
	t.Helper()
	checkin, err := e.checkins.Submit(context.Background(), userID, SubmitCheckinInput{
		WindowStart: start,
		WindowEnd:   start.Add(time.Hour),
		Records:     []RecordInput{{Title: "Read", AddedMinutes: 5}},
	})
	require.NoError(t, err)
	return checkin
}

func TestPaginatedReviews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")
	day := date(2024, 1, 2)

	for hour := 9; hour < 14; hour++ {
		env.submitWindow(t, user.ID, day.Add(time.Duration(hour)*time.Hour))
	}

	page, err := env.stats.PaginatedReviews(ctx, user.ID, 1, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, int64(3), page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, day.Add(13*time.Hour), page.Items[0].WindowStart, "newest first")
	assert.Equal(t, day.Add(12*time.Hour), page.Items[1].WindowStart)

	last, err := env.stats.PaginatedReviews(ctx, user.ID, 3, 2, nil)
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	assert.Equal(t, day.Add(9*time.Hour), last.Items[0].WindowStart)

	beyond, err := env.stats.PaginatedReviews(ctx, user.ID, 4, 2, nil)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(5), beyond.Total)
}

func TestPaginatedReviewsDateFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	env.submitWindow(t, user.ID, date(2024, 1, 2).Add(9*time.Hour))
	env.submitWindow(t, user.ID, date(2024, 1, 3).Add(9*time.Hour))

	day := date(2024, 1, 3)
	page, err := env.stats.PaginatedReviews(ctx, user.ID, 1, 10, &day)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, day.Add(9*time.Hour), page.Items[0].WindowStart)
	assert.Equal(t, int64(1), page.Total)
}

func TestPaginatedReviewsSizeBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	page, err := env.stats.PaginatedReviews(ctx, user.ID, 1, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultReviewPageSize, page.Size)

	page, err = env.stats.PaginatedReviews(ctx, user.ID, 1, 500, nil)
	require.NoError(t, err)
	assert.Equal(t, maxReviewPageSize, page.Size)

	_, err = env.stats.PaginatedReviews(ctx, user.ID, 0, 10, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}
