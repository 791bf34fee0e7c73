package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"helpify.com/helpify/internal/constants"
	apperrors "helpify.com/helpify/internal/errors"
	model "helpify.com/helpify/internal/models"
	repository "helpify.com/helpify/internal/repositories"
)

// Conversation summarizes the messages exchanged between the actor and one
// counterparty about one task.
type Conversation struct {
	TaskID           string               `json:"task_id"`
	TaskTitle        string               `json:"task_title"`
	TaskStatus       constants.TaskStatus `json:"task_status"`
	CounterpartyID   string               `json:"counterparty_id"`
	CounterpartyName string               `json:"counterparty_name"`
	LastMessage      model.Message        `json:"last_message"`
	UnreadCount      int                  `json:"unread_count"`
}

type MessageService struct {
	repos  *repository.Repositories
	logger *zap.Logger
	now    func() time.Time
}

func NewMessageService(repos *repository.Repositories, logger *zap.Logger) *MessageService {
	return &MessageService{
		repos:  repos,
		logger: logger,
		now:    time.Now,
	}
}

func (s *MessageService) SendMessage(ctx context.Context, actor Actor, taskID, receiverID, body string) (*model.Message, error) {
	if err := actor.requireUser(); err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.Validation("message cannot be empty")
	}
	if utf8.RuneCountInString(body) > maxMessageLength {
		return nil, apperrors.Validation("message cannot exceed 2000 characters")
	}
	if receiverID == "" || receiverID == actor.UserID {
		return nil, apperrors.Validation("receiver must be another user")
	}

	now := s.now().UTC()
	var msg *model.Message
	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		task, err := tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return storeErr(err, apperrors.ErrTaskNotFound)
		}
		ok, err := validPair(ctx, tx, task, actor.UserID, receiverID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.Forbidden("you cannot message this user about this task")
		}

		sender, err := tx.Users.FindByID(ctx, actor.UserID)
		if err != nil {
			return storeErr(err, apperrors.ErrUserNotFound)
		}

		msg = &model.Message{
			TaskID:     task.ID,
			SenderID:   actor.UserID,
			ReceiverID: receiverID,
			Message:    body,
			CreatedAt:  now,
		}
		if err := tx.Messages.Create(ctx, msg); err != nil {
			return apperrors.Infrastructure(err)
		}

		content := fmt.Sprintf("New message from %s about %q.", sender.Fullname, task.Title)
		return apperrors.Infrastructure(notify(ctx, tx, now, receiverID, constants.NotificationMessage, task.ID, content))
	})
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return msg, nil
}

// ListConversations groups the actor's messages by task and counterparty,
// most recent conversation first. Conversations whose task relationship no
// longer holds are left out.
func (s *MessageService) ListConversations(ctx context.Context, actor Actor) ([]Conversation, error) {
	if err := actor.requireUser(); err != nil {
		return nil, err
	}
	msgs, err := s.repos.Messages.ListForUser(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}

	type key struct{ task, counterparty string }
	var (
		order   []key
		grouped = make(map[key]*Conversation)
	)
	for _, m := range msgs {
		counterparty := m.ReceiverID
		if m.ReceiverID == actor.UserID {
			counterparty = m.SenderID
		}
		k := key{task: m.TaskID, counterparty: counterparty}
		conv, seen := grouped[k]
		if !seen {
			conv = &Conversation{TaskID: m.TaskID, CounterpartyID: counterparty, LastMessage: m}
			grouped[k] = conv
			order = append(order, k)
		}
		if m.ReceiverID == actor.UserID && !m.IsRead {
			conv.UnreadCount++
		}
	}
	if len(order) == 0 {
		return []Conversation{}, nil
	}

	taskIDs := make([]string, 0, len(order))
	userIDs := make([]string, 0, len(order))
	for _, k := range order {
		taskIDs = append(taskIDs, k.task)
		userIDs = append(userIDs, k.counterparty)
	}
	tasks, err := s.repos.Tasks.FindByIDs(ctx, taskIDs)
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	users, err := s.repos.Users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}

	taskByID := make(map[string]*model.Task, len(tasks))
	for i := range tasks {
		taskByID[tasks[i].ID] = &tasks[i]
	}
	nameByID := make(map[string]string, len(users))
	for _, u := range users {
		nameByID[u.ID] = u.Fullname
	}

	out := make([]Conversation, 0, len(order))
	for _, k := range order {
		task, ok := taskByID[k.task]
		if !ok {
			continue
		}
		valid, err := validPair(ctx, s.repos, task, actor.UserID, k.counterparty)
		if err != nil {
			return nil, err
		}
		if !valid {
			continue
		}
		conv := grouped[k]
		conv.TaskTitle = task.Title
		conv.TaskStatus = task.Status
		conv.CounterpartyName = nameByID[k.counterparty]
		out = append(out, *conv)
	}
	return out, nil
}

func (s *MessageService) ListConversationMessages(ctx context.Context, actor Actor, taskID, counterpartyID string) ([]model.Message, error) {
	if err := actor.requireUser(); err != nil {
		return nil, err
	}
	task, err := s.repos.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, storeErr(err, apperrors.ErrTaskNotFound)
	}
	ok, err := validPair(ctx, s.repos, task, actor.UserID, counterpartyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Forbidden("you are not part of this conversation")
	}

	msgs, err := s.repos.Messages.ListConversation(ctx, taskID, actor.UserID, counterpartyID)
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return msgs, nil
}

// MarkConversationRead marks every message the counterparty sent the actor
// about the task as read and returns how many changed.
func (s *MessageService) MarkConversationRead(ctx context.Context, actor Actor, taskID, counterpartyID string) (int64, error) {
	if err := actor.requireUser(); err != nil {
		return 0, err
	}
	if _, err := s.repos.Tasks.FindByID(ctx, taskID); err != nil {
		return 0, storeErr(err, apperrors.ErrTaskNotFound)
	}

	n, err := s.repos.Messages.MarkConversationRead(ctx, taskID, actor.UserID, counterpartyID)
	if err != nil {
		return 0, apperrors.Infrastructure(err)
	}
	return n, nil
}

// validPair reports whether a and b may talk about the task: one of them must
// be its client and the other a helper assigned to or applying for it.
func validPair(ctx context.Context, repos *repository.Repositories, task *model.Task, a, b string) (bool, error) {
	switch {
	case a == b:
		return false, nil
	case a == task.ClientID:
		return helperRelated(ctx, repos, task, b)
	case b == task.ClientID:
		return helperRelated(ctx, repos, task, a)
	}
	return false, nil
}
