package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"helpify.com/helpify/internal/constants"
	apperrors "helpify.com/helpify/internal/errors"
	model "helpify.com/helpify/internal/models"
	repository "helpify.com/helpify/internal/repositories"
)

const (
	NotificationPageSize = 20
	// MaxNotificationPage bounds the offset so it cannot overflow.
	MaxNotificationPage = 10000
)

type NotificationFilter struct {
	Type   string
	Status string
	Page   int
}

type NotificationPage struct {
	Items       []model.Notification `json:"items"`
	Total       int64                `json:"total"`
	UnreadCount int64                `json:"unread_count"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

type NotificationService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewNotificationService(repos *repository.Repositories, logger *zap.Logger) *NotificationService {
	return &NotificationService{repos: repos, logger: logger}
}

func (s *NotificationService) ListNotifications(ctx context.Context, actor Actor, f NotificationFilter) (*NotificationPage, error) {
	if err := actor.requireUser(); err != nil {
		return nil, err
	}

	filter := repository.NotificationFilter{Limit: NotificationPageSize}

	kind := constants.NotificationType(strings.ToLower(strings.TrimSpace(f.Type)))
	if kind != "" && kind != "all" {
		if !kind.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("unknown notification type %q", f.Type))
		}
		filter.Type = kind
	}

	switch strings.ToLower(strings.TrimSpace(f.Status)) {
	case "", "all":
	case "read":
		read := true
		filter.IsRead = &read
	case "unread":
		unread := false
		filter.IsRead = &unread
	default:
		return nil, apperrors.Validation(fmt.Sprintf("unknown notification status %q", f.Status))
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	if page > MaxNotificationPage {
		page = MaxNotificationPage
	}
	filter.Offset = (page - 1) * NotificationPageSize

	items, total, err := s.repos.Notifications.List(ctx, actor.UserID, filter)
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	unread, err := s.repos.Notifications.CountUnread(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}

	if items == nil {
		items = []model.Notification{}
	}
	return &NotificationPage{
		Items:       items,
		Total:       total,
		UnreadCount: unread,
		Page:        page,
		PageSize:    NotificationPageSize,
	}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	if err := actor.requireUser(); err != nil {
		return 0, err
	}
	n, err := s.repos.Notifications.CountUnread(ctx, actor.UserID)
	if err != nil {
		return 0, apperrors.Infrastructure(err)
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, id string) error {
	if err := s.requireOwned(ctx, actor, id); err != nil {
		return err
	}
	_, err := s.repos.Notifications.MarkRead(ctx, actor.UserID, []string{id})
	return apperrors.Infrastructure(err)
}

// MarkManyRead marks the given notifications read. Ids that belong to other
// users are ignored.
func (s *NotificationService) MarkManyRead(ctx context.Context, actor Actor, ids []string) (int64, error) {
	if err := actor.requireUser(); err != nil {
		return 0, err
	}
	n, err := s.repos.Notifications.MarkRead(ctx, actor.UserID, ids)
	if err != nil {
		return 0, apperrors.Infrastructure(err)
	}
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actor Actor) (int64, error) {
	if err := actor.requireUser(); err != nil {
		return 0, err
	}
	n, err := s.repos.Notifications.MarkAllRead(ctx, actor.UserID)
	if err != nil {
		return 0, apperrors.Infrastructure(err)
	}
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := s.requireOwned(ctx, actor, id); err != nil {
		return err
	}
	_, err := s.repos.Notifications.Delete(ctx, actor.UserID, []string{id})
	return apperrors.Infrastructure(err)
}

func (s *NotificationService) DeleteMany(ctx context.Context, actor Actor, ids []string) (int64, error) {
	if err := actor.requireUser(); err != nil {
		return 0, err
	}
	n, err := s.repos.Notifications.Delete(ctx, actor.UserID, ids)
	if err != nil {
		return 0, apperrors.Infrastructure(err)
	}
	return n, nil
}

func (s *NotificationService) DeleteAllRead(ctx context.Context, actor Actor) (int64, error) {
	if err := actor.requireUser(); err != nil {
		return 0, err
	}
	n, err := s.repos.Notifications.DeleteRead(ctx, actor.UserID)
	if err != nil {
		return 0, apperrors.Infrastructure(err)
	}
	return n, nil
}

func (s *NotificationService) requireOwned(ctx context.Context, actor Actor, id string) error {
	if err := actor.requireUser(); err != nil {
		return err
	}
	n, err := s.repos.Notifications.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, apperrors.ErrNotificationNotFound)
	}
	if n.UserID != actor.UserID {
		return apperrors.Forbidden("this notification belongs to another user")
	}
	return nil
}
