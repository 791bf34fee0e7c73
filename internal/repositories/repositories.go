package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrOptimisticLock = errors.New("optimistic locking conflict")
	ErrDuplicate      = errors.New("duplicate record")
)

// Repositories groups the table repositories sharing one gorm handle, which
// is either the root connection or an open transaction.
type Repositories struct {
	db *gorm.DB

	Users         *UserRepository
	Tasks         *TaskRepository
	Applications  *ApplicationRepository
	Messages      *MessageRepository
	Notifications *NotificationRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:            db,
		Users:         NewUserRepository(db),
		Tasks:         NewTaskRepository(db),
		Applications:  NewApplicationRepository(db),
		Messages:      NewMessageRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

// WithTx runs fn inside a single transaction. Any returned error rolls the
// whole transaction back.
func (r *Repositories) WithTx(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func (r *Repositories) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a lower-cased LIKE pattern matching s anywhere,
// with wildcards in s escaped by '!'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
