package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"helpify.com/helpify/internal/constants"
	model "helpify.com/helpify/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTask(clientID, title string) *model.Task {
	return &model.Task{
		ClientID:      clientID,
		Title:         title,
		Description:   "A description long enough to be valid.",
		Location:      "Berlin",
		ScheduledTime: time.Now().Add(24 * time.Hour),
		Budget:        decimal.NewFromInt(50),
		Status:        constants.TaskStatusOpen,
	}
}

func TestTaskRepository_UpdateDetectsStaleVersion(t *testing.T) {
	repos := New(setupTestDB(t))
	ctx := context.Background()

	task := newTask("client-1", "Move the sofa")
	require.NoError(t, repos.Tasks.Create(ctx, task))
	assert.EqualValues(t, 1, task.Version)

	stale := *task

	task.Status = constants.TaskStatusInProgress
	require.NoError(t, repos.Tasks.Update(ctx, task))
	assert.EqualValues(t, 2, task.Version)

	stale.Status = constants.TaskStatusCancelled
	err := repos.Tasks.Update(ctx, &stale)
	assert.ErrorIs(t, err, ErrOptimisticLock)

	stored, err := repos.Tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskStatusInProgress, stored.Status)
}

func TestTaskRepository_FindByIDNotFound(t *testing.T) {
	repos := New(setupTestDB(t))

	_, err := repos.Tasks.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepository_SearchEscapesWildcards(t *testing.T) {
	repos := New(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repos.Tasks.Create(ctx, newTask("client-1", "Paint 100% of the wall")))
	require.NoError(t, repos.Tasks.Create(ctx, newTask("client-1", "Paint 1000 fence posts")))
	require.NoError(t, repos.Tasks.Create(ctx, newTask("client-1", "Fix snake_case sign")))

	tasks, err := repos.Tasks.ListOpenForHelper(ctx, "helper-1", OpenTaskFilter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Paint 100% of the wall", tasks[0].Title)

	tasks, err = repos.Tasks.ListOpenForHelper(ctx, "helper-1", OpenTaskFilter{Search: "E_C"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Fix snake_case sign", tasks[0].Title)
}

func TestTaskRepository_SearchFoldsNonASCII(t *testing.T) {
	repos := New(setupTestDB(t))
	ctx := context.Background()

	moving := newTask("client-1", "Über den Umzug helfen")
	moving.Location = "München"
	require.NoError(t, repos.Tasks.Create(ctx, moving))
	require.NoError(t, repos.Tasks.Create(ctx, newTask("client-1", "Mow the lawn")))

	for _, term := range []string{"über", "ÜBER", "Über"} {
		tasks, err := repos.Tasks.ListOpenForHelper(ctx, "helper-1", OpenTaskFilter{Search: term})
		require.NoError(t, err)
		require.Len(t, tasks, 1, term)
		assert.Equal(t, moving.ID, tasks[0].ID)
	}

	tasks, err := repos.Tasks.ListOpenForHelper(ctx, "helper-1", OpenTaskFilter{Location: "MÜNCHEN"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, moving.ID, tasks[0].ID)

	rows, err := repos.Tasks.ListForClient(ctx, "client-1", ClientTaskFilter{Search: "münchen"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, moving.ID, rows[0].ID)
}

func TestTaskRepository_UpdateRefreshesSearchText(t *testing.T) {
	repos := New(setupTestDB(t))
	ctx := context.Background()

	task := newTask("client-1", "Move the sofa")
	require.NoError(t, repos.Tasks.Create(ctx, task))

	task.Title = "Straße kehren"
	require.NoError(t, repos.Tasks.Update(ctx, task))

	tasks, err := repos.Tasks.ListOpenForHelper(ctx, "helper-1", OpenTaskFilter{Search: "STRASSE"})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tasks, err = repos.Tasks.ListOpenForHelper(ctx, "helper-1", OpenTaskFilter{Search: "STRAßE"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Straße kehren", tasks[0].Title)

	tasks, err = repos.Tasks.ListOpenForHelper(ctx, "helper-1", OpenTaskFilter{Search: "sofa"})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repos := New(setupTestDB(t))
	ctx := context.Background()

	first := &model.User{Fullname: "Ada", Email: "ada@example.com", PasswordHash: "x", UserType: constants.UserTypeClient}
	require.NoError(t, repos.Users.Create(ctx, first))

	second := &model.User{Fullname: "Ada Again", Email: " ADA@example.com ", PasswordHash: "x", UserType: constants.UserTypeHelper}
	err := repos.Users.Create(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	repos := New(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repos.WithTx(ctx, func(tx *Repositories) error {
		if err := tx.Tasks.Create(ctx, newTask("client-1", "Rolled back")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&model.Task{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplicationRepository_UpdateStatusRequiresPending(t *testing.T) {
	repos := New(setupTestDB(t))
	ctx := context.Background()

	app := &model.Application{
		TaskID:    "task-1",
		HelperID:  "helper-1",
		Proposal:  "I can do it this week.",
		BidAmount: decimal.NewFromInt(40),
		Status:    constants.ApplicationStatusPending,
	}
	require.NoError(t, repos.Applications.Create(ctx, app))
	require.NoError(t, repos.Applications.UpdateStatus(ctx, app, constants.ApplicationStatusRejected))

	err := repos.Applications.UpdateStatus(ctx, app, constants.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, ErrOptimisticLock)

	active, err := repos.Applications.HasActive(ctx, "task-1", "helper-1")
	require.NoError(t, err)
	assert.False(t, active)

	exists, err := repos.Applications.Exists(ctx, "task-1", "helper-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%abc%", containsPattern("ABC"))
	assert.Equal(t, "%50!%!_off!!%", containsPattern("50%_off!"))
}
