package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"helpify.com/helpify/internal/auth"
	"helpify.com/helpify/internal/constants"
	model "helpify.com/helpify/internal/models"
	repository "helpify.com/helpify/internal/repositories"
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

type fixture struct {
	db            *gorm.DB
	repos         *repository.Repositories
	accounts      *AccountService
	tasks         *TaskService
	applications  *ApplicationService
	messages      *MessageService
	notifications *NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	repos := repository.New(db)
	log := zap.NewNop()

	return &fixture{
		db:            db,
		repos:         repos,
		accounts:      NewAccountService(repos, auth.NewTokenIssuer("0123456789abcdef0123456789abcdef", time.Hour), log),
		tasks:         NewTaskService(repos, log),
		applications:  NewApplicationService(repos, log),
		messages:      NewMessageService(repos, log),
		notifications: NewNotificationService(repos, log),
	}
}

func (f *fixture) user(t *testing.T, name string, userType constants.UserType) Actor {
	t.Helper()

	u := &model.User{
		Fullname:     name,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "unused",
		UserType:     userType,
	}
	require.NoError(t, f.repos.Users.Create(context.Background(), u))
	return Actor{UserID: u.ID, UserType: userType}
}

func (f *fixture) client(t *testing.T) Actor {
	return f.user(t, "Carla Client", constants.UserTypeClient)
}

func (f *fixture) helper(t *testing.T, name string) Actor {
	return f.user(t, name, constants.UserTypeHelper)
}

func taskInput(title string, budget int64) TaskInput {
	return TaskInput{
		Title:         title,
		Description:   "Need a hand with this job for a few hours on the weekend.",
		Location:      "Berlin Mitte",
		ScheduledTime: time.Now().Add(48 * time.Hour),
		Budget:        decimal.NewFromInt(budget),
	}
}

func (f *fixture) task(t *testing.T, client Actor, title string, budget int64) *model.Task {
	t.Helper()

	task, err := f.tasks.CreateTask(context.Background(), client, taskInput(title, budget))
	require.NoError(t, err)
	return task
}

func (f *fixture) apply(t *testing.T, helper Actor, taskID string, bid int64) *model.Application {
	t.Helper()

	app, err := f.applications.SubmitApplication(
		context.Background(), helper, taskID, "I have done this many times before.", decimal.NewFromInt(bid))
	require.NoError(t, err)
	return app
}

func (f *fixture) reloadTask(t *testing.T, id string) *model.Task {
	t.Helper()

	task, err := f.repos.Tasks.FindByID(context.Background(), id)
	require.NoError(t, err)
	return task
}

func (f *fixture) count(t *testing.T, m any, query string, args ...any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, f.db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}

func (f *fixture) notificationsFor(t *testing.T, userID string, kind constants.NotificationType) int64 {
	return f.count(t, &model.Notification{}, "user_id = ? AND type = ?", userID, kind)
}
