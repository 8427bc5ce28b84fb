package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"everyday-planner/internal/apperr"
	"everyday-planner/internal/recurrence"
)

func TestCreateTemplateDefaultsToEnabled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	template, err := env.templates.Create(ctx, user.ID, TemplateInput{
		Title:            "  Weekly review  ",
		EstimatedMinutes: 45,
		Priority:         2,
		RecurrenceKind:   recurrence.KindWeekly,
		DayOfWeek:        intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Weekly review", template.Title, "title is trimmed")
	assert.True(t, template.Enabled)
	assert.NotZero(t, template.ID)
}

func TestCreateTemplateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	tests := []struct {
		name  string
		input TemplateInput
	}{
		{
			name:  "blank title",
			input: TemplateInput{Title: "   ", EstimatedMinutes: 30, Priority: 3, RecurrenceKind: recurrence.KindDaily},
		},
		{
			name:  "non-positive minutes",
			input: TemplateInput{Title: "t", EstimatedMinutes: 0, Priority: 3, RecurrenceKind: recurrence.KindDaily},
		},
		{
			name:  "priority out of range",
			input: TemplateInput{Title: "t", EstimatedMinutes: 30, Priority: 6, RecurrenceKind: recurrence.KindDaily},
		},
		{
			name: "bad start time",
			input: TemplateInput{
				Title: "t", EstimatedMinutes: 30, Priority: 3,
				RecurrenceKind:   recurrence.KindDaily,
				DefaultStartTime: strPtr("9am"),
			},
		},
		{
			name: "inverted activity bounds",
			input: TemplateInput{
				Title: "t", EstimatedMinutes: 30, Priority: 3,
				RecurrenceKind: recurrence.KindDaily,
				ActiveFrom:     datePtr(date(2024, 2, 1)),
				ActiveTo:       datePtr(date(2024, 1, 1)),
			},
		},
		{
			name:  "weekly without day of week",
			input: TemplateInput{Title: "t", EstimatedMinutes: 30, Priority: 3, RecurrenceKind: recurrence.KindWeekly},
		},
		{
			name: "weekly day out of range",
			input: TemplateInput{
				Title: "t", EstimatedMinutes: 30, Priority: 3,
				RecurrenceKind: recurrence.KindWeekly,
				DayOfWeek:      intPtr(8),
			},
		},
		{
			name:  "specific date without date",
			input: TemplateInput{Title: "t", EstimatedMinutes: 30, Priority: 3, RecurrenceKind: recurrence.KindSpecificDate},
		},
		{
			name: "interval without active from",
			input: TemplateInput{
				Title: "t", EstimatedMinutes: 30, Priority: 3,
				RecurrenceKind: recurrence.KindIntervalDays,
				IntervalDays:   intPtr(3),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.templates.Create(ctx, user.ID, tt.input)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.Validation))
		})
	}
}

func TestUpdateTemplate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	template, err := env.templates.Create(ctx, user.ID, dailyTemplate(30))
	require.NoError(t, err)

	updated, err := env.templates.Update(ctx, user.ID, template.ID, TemplateInput{
		Title:            "Evening review",
		EstimatedMinutes: 20,
		Priority:         1,
		RecurrenceKind:   recurrence.KindWorkday,
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "Evening review", updated.Title)
	assert.Equal(t, recurrence.KindWorkday, updated.RecurrenceKind)
	assert.False(t, updated.Enabled)
}

func TestSetEnabled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	template, err := env.templates.Create(ctx, user.ID, dailyTemplate(30))
	require.NoError(t, err)

	disabled, err := env.templates.SetEnabled(ctx, user.ID, template.ID, false)
	require.NoError(t, err)
	assert.False(t, disabled.Enabled)

	enabled, err := env.templates.SetEnabled(ctx, user.ID, template.ID, true)
	require.NoError(t, err)
	assert.True(t, enabled.Enabled)
}

func TestTemplateOwnershipHidesForeignIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	template, err := env.templates.Create(ctx, alice.ID, dailyTemplate(30))
	require.NoError(t, err)

	_, err = env.templates.SetEnabled(ctx, bob.ID, template.ID, false)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))

	err = env.templates.Delete(ctx, bob.ID, template.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDeleteTemplateLeavesInstances(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")
	day := date(2024, 1, 2)

	template, err := env.templates.Create(ctx, user.ID, dailyTemplate(30))
	require.NoError(t, err)
	created, err := env.plans.GenerateForDate(ctx, user.ID, day)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	require.NoError(t, env.templates.Delete(ctx, user.ID, template.ID))

	templates, err := env.templates.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, templates)

	tasks, err := env.instances.ListByDate(ctx, user.ID, day)
	require.NoError(t, err)
	require.Len(t, tasks, 1, "generated instance survives template deletion")
}

func TestListTemplatesNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	first, err := env.templates.Create(ctx, user.ID, dailyTemplate(30))
	require.NoError(t, err)
	second, err := env.templates.Create(ctx, user.ID, dailyTemplate(45))
	require.NoError(t, err)

	templates, err := env.templates.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, second.ID, templates[0].ID)
	assert.Equal(t, first.ID, templates[1].ID)
}
