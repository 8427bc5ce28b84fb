package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"everyday-planner/internal/apperr"
	"everyday-planner/internal/model"
)

func TestCreateManualTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")

	task, err := env.instances.CreateManual(ctx, user.ID, ManualTaskInput{
		Title:            "  Write report  ",
		PlanDate:         date(2024, 1, 2),
		PlannedStartTime: strPtr("14:30"),
		PlannedMinutes:   90,
	})
	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, model.StatusPending, task.Status)
	assert.True(t, task.AdHoc)
	assert.Nil(t, task.TemplateID)
}

func TestCreateManualTaskValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")
	day := date(2024, 1, 2)

	tests := []struct {
		name  string
		input ManualTaskInput
	}{
		{"blank title", ManualTaskInput{Title: " ", PlanDate: day, PlannedMinutes: 30}},
		{"non-positive minutes", ManualTaskInput{Title: "t", PlanDate: day, PlannedMinutes: 0}},
		{"bad start time", ManualTaskInput{Title: "t", PlanDate: day, PlannedMinutes: 30, PlannedStartTime: strPtr("noon")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.instances.CreateManual(ctx, user.ID, tt.input)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.Validation))
		})
	}
}

func TestUpdateTaskDerivesStatusFromMinutes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")
	day := date(2024, 1, 2)
	task := env.manualTask(t, user.ID, day, 60)

	// Put 30 completed minutes on the task via a checkin.
	start, end := window10(day)
	_, err := env.checkins.Submit(ctx, user.ID, SubmitCheckinInput{
		WindowStart: start,
		WindowEnd:   end,
		Records:     []RecordInput{{TaskInstanceID: &task.ID, AddedMinutes: 30}},
	})
	require.NoError(t, err)

	// Requested COMPLETED is overruled: 30 of 60 minutes is IN_PROGRESS.
	updated, err := env.instances.Update(ctx, user.ID, task.ID, UpdateTaskInput{
		Title:          "Deep work",
		PlanDate:       day,
		PlannedMinutes: 60,
		Status:         model.StatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, updated.Status)

	// Shrinking the plan below the logged minutes completes it.
	updated, err = env.instances.Update(ctx, user.ID, task.ID, UpdateTaskInput{
		Title:          "Deep work",
		PlanDate:       day,
		PlannedMinutes: 25,
		Status:         model.StatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, updated.Status)
}

func TestUpdateTaskHonorsCancelled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")
	day := date(2024, 1, 2)
	task := env.manualTask(t, user.ID, day, 60)

	updated, err := env.instances.Update(ctx, user.ID, task.ID, UpdateTaskInput{
		Title:          "Deep work",
		PlanDate:       day,
		PlannedMinutes: 60,
		Status:         model.StatusCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, updated.Status)
}

func TestUpdateTaskKeepsPendingWhenUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")
	day := date(2024, 1, 2)
	task := env.manualTask(t, user.ID, day, 60)

	updated, err := env.instances.Update(ctx, user.ID, task.ID, UpdateTaskInput{
		Title:          "Deep work",
		PlanDate:       day,
		PlannedMinutes: 45,
		Status:         model.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, updated.Status)
}

func TestSetStatusRejectsPendingWithLoggedMinutes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")
	day := date(2024, 1, 2)
	task := env.manualTask(t, user.ID, day, 60)

	start, end := window10(day)
	_, err := env.checkins.Submit(ctx, user.ID, SubmitCheckinInput{
		WindowStart: start,
		WindowEnd:   end,
		Records:     []RecordInput{{TaskInstanceID: &task.ID, AddedMinutes: 10}},
	})
	require.NoError(t, err)

	_, err = env.instances.SetStatus(ctx, user.ID, task.ID, model.StatusPending)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	done, err := env.instances.SetStatus(ctx, user.ID, task.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, done.Status)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	user := env.user(t, "alice")
	task := env.manualTask(t, user.ID, date(2024, 1, 2), 60)

	_, err := env.instances.SetStatus(context.Background(), user.ID, task.ID, model.TaskStatus("DONE"))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestInstanceOwnershipHidesForeignIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	task := env.manualTask(t, alice.ID, date(2024, 1, 2), 60)

	_, err := env.instances.SetStatus(ctx, bob.ID, task.ID, model.StatusCompleted)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))

	err = env.instances.Delete(ctx, bob.ID, task.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDeleteTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.user(t, "alice")
	day := date(2024, 1, 2)
	task := env.manualTask(t, user.ID, day, 60)

	require.NoError(t, env.instances.Delete(ctx, user.ID, task.ID))

	tasks, err := env.instances.ListByDate(ctx, user.ID, day)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
