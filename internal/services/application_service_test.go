package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpify.com/helpify/internal/constants"
	apperrors "helpify.com/helpify/internal/errors"
	model "helpify.com/helpify/internal/models"
)

func TestApplicationService_AcceptFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t)
	helper := f.helper(t, "Hank Helper")

	task := f.task(t, client, "Assemble IKEA wardrobe", 100)
	app := f.apply(t, helper, task.ID, 90)
	assert.Equal(t, constants.ApplicationStatusPending, app.Status)

	apps, err := f.applications.ListApplicationsForTask(ctx, client, task.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, constants.ApplicationStatusPending, apps[0].Status)
	assert.True(t, decimal.NewFromInt(90).Equal(apps[0].BidAmount))
	assert.EqualValues(t, 1, f.notificationsFor(t, client.UserID, constants.NotificationApplication))

	decided, err := f.applications.DecideApplication(ctx, client, app.ID, constants.DecisionAccept)
	require.NoError(t, err)
	assert.Equal(t, constants.ApplicationStatusAccepted, decided.Status)

	stored := f.reloadTask(t, task.ID)
	assert.Equal(t, constants.TaskStatusInProgress, stored.Status)
	require.NotNil(t, stored.AssignedHelperID)
	assert.Equal(t, helper.UserID, *stored.AssignedHelperID)
	assert.EqualValues(t, 1, f.notificationsFor(t, helper.UserID, constants.NotificationApplication))
}

func TestApplicationService_AcceptRejectsPendingSiblings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t)
	winner := f.helper(t, "Winner")
	loser := f.helper(t, "Loser")

	task := f.task(t, client, "Assemble IKEA wardrobe", 100)
	winning := f.apply(t, winner, task.ID, 90)
	losing := f.apply(t, loser, task.ID, 95)

	_, err := f.applications.DecideApplication(ctx, client, winning.ID, constants.DecisionAccept)
	require.NoError(t, err)

	var sibling model.Application
	require.NoError(t, f.db.First(&sibling, "id = ?", losing.ID).Error)
	assert.Equal(t, constants.ApplicationStatusRejected, sibling.Status)
	assert.EqualValues(t, 1, f.notificationsFor(t, loser.UserID, constants.NotificationApplication))

	_, err = f.applications.DecideApplication(ctx, client, losing.ID, constants.DecisionAccept)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
}

func TestApplicationService_Reject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t)
	helper := f.helper(t, "Hank Helper")

	task := f.task(t, client, "Assemble IKEA wardrobe", 100)
	app := f.apply(t, helper, task.ID, 90)

	decided, err := f.applications.DecideApplication(ctx, client, app.ID, constants.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, constants.ApplicationStatusRejected, decided.Status)
	assert.Equal(t, constants.TaskStatusOpen, f.reloadTask(t, task.ID).Status)
	assert.EqualValues(t, 1, f.notificationsFor(t, helper.UserID, constants.NotificationApplication))

	_, err = f.applications.DecideApplication(ctx, client, app.ID, constants.DecisionReject)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))

	// A rejected helper may bid again.
	again := f.apply(t, helper, task.ID, 80)
	assert.NotEqual(t, app.ID, again.ID)
}

func TestApplicationService_SubmitRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t)
	helper := f.helper(t, "Hank Helper")

	task := f.task(t, client, "Assemble IKEA wardrobe", 100)
	f.apply(t, helper, task.ID, 90)

	_, err := f.applications.SubmitApplication(ctx, helper, task.ID, "Trying once more with a lower bid.", decimal.NewFromInt(70))
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.EqualValues(t, 1, f.count(t, &model.Application{}, "task_id = ?", task.ID))
}

func TestApplicationService_SubmitValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t)
	helper := f.helper(t, "Hank Helper")
	task := f.task(t, client, "Assemble IKEA wardrobe", 100)

	_, err := f.applications.SubmitApplication(ctx, helper, task.ID, "short", decimal.NewFromInt(50))
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = f.applications.SubmitApplication(ctx, helper, task.ID, "A perfectly fine proposal.", decimal.Zero)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = f.applications.SubmitApplication(ctx, helper, "missing", "A perfectly fine proposal.", decimal.NewFromInt(50))
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	_, err = f.applications.SubmitApplication(ctx, client, task.ID, "A perfectly fine proposal.", decimal.NewFromInt(50))
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestApplicationService_SubmitRequiresOpenTask(t *testing.T) {
	for _, status := range []constants.TaskStatus{
		constants.TaskStatusInProgress,
		constants.TaskStatusCompleted,
		constants.TaskStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			client := f.client(t)
			helper := f.helper(t, "Hank Helper")

			task := f.task(t, client, "Assemble IKEA wardrobe", 100)
			require.NoError(t, f.db.Model(&model.Task{}).Where("id = ?", task.ID).Update("status", status).Error)

			_, err := f.applications.SubmitApplication(
				context.Background(), helper, task.ID, "A perfectly fine proposal.", decimal.NewFromInt(50))
			assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
			assert.EqualValues(t, 0, f.count(t, &model.Application{}, "task_id = ?", task.ID))
		})
	}
}

func TestApplicationService_DecideErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t)
	intruder := f.client(t)
	helper := f.helper(t, "Hank Helper")

	task := f.task(t, client, "Assemble IKEA wardrobe", 100)
	app := f.apply(t, helper, task.ID, 90)

	_, err := f.applications.DecideApplication(ctx, intruder, app.ID, constants.DecisionAccept)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	_, err = f.applications.DecideApplication(ctx, client, "missing", constants.DecisionAccept)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	_, err = f.applications.DecideApplication(ctx, client, app.ID, "maybe")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = f.applications.DecideApplication(ctx, helper, app.ID, constants.DecisionAccept)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	_, err = f.tasks.UpdateTaskStatus(ctx, client, task.ID, constants.TaskStatusCancelled)
	require.NoError(t, err)
	_, err = f.applications.DecideApplication(ctx, client, app.ID, constants.DecisionAccept)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
}

func TestApplicationService_ListApplicationsForHelper(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.client(t)
	helper := f.helper(t, "Hank Helper")
	other := f.helper(t, "Olga Other")

	t1 := f.task(t, client, "Assemble IKEA wardrobe", 100)
	t2 := f.task(t, client, "Water the plants", 20)
	f.apply(t, helper, t1.ID, 90)
	f.apply(t, helper, t2.ID, 15)
	f.apply(t, other, t1.ID, 95)

	apps, err := f.applications.ListApplicationsForHelper(ctx, helper)
	require.NoError(t, err)
	assert.Len(t, apps, 2)
	for _, app := range apps {
		assert.Equal(t, helper.UserID, app.HelperID)
	}

	_, err = f.applications.ListApplicationsForTask(ctx, f.client(t), t1.ID)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}
