package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"helpify.com/helpify/internal/constants"
	apperrors "helpify.com/helpify/internal/errors"
	model "helpify.com/helpify/internal/models"
	repository "helpify.com/helpify/internal/repositories"
)

type OpenTaskFilter struct {
	Search    string
	Location  string
	MinBudget *decimal.Decimal
	MaxBudget *decimal.Decimal
	Sort      string
	Order     string
}

type ClientTaskFilter struct {
	Status string
	Search string
	Sort   string
	Order  string
}

type TaskService struct {
	repos  *repository.Repositories
	logger *zap.Logger
	now    func() time.Time
}

func NewTaskService(repos *repository.Repositories, logger *zap.Logger) *TaskService {
	return &TaskService{
		repos:  repos,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, actor Actor, in TaskInput) (*model.Task, error) {
	if err := actor.requireClient(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	in.normalize()
	if err := in.validate(now); err != nil {
		return nil, err
	}

	task := &model.Task{
		ClientID:      actor.UserID,
		Title:         in.Title,
		Description:   in.Description,
		Location:      in.Location,
		ScheduledTime: in.ScheduledTime.UTC(),
		Budget:        in.Budget,
		Status:        constants.TaskStatusOpen,
		CreatedAt:     now,
	}
	if err := s.repos.Tasks.Create(ctx, task); err != nil {
		return nil, apperrors.Infrastructure(err)
	}

	s.logger.Info("task created", zap.String("task_id", task.ID), zap.String("client_id", actor.UserID))
	return task, nil
}

// GetTask returns a task visible to the actor: the owner always sees it,
// helpers see it while it is open or once they have applied to it. Other
// clients never do.
func (s *TaskService) GetTask(ctx context.Context, actor Actor, id string) (*model.Task, error) {
	if err := actor.requireUser(); err != nil {
		return nil, err
	}
	task, err := s.repos.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, apperrors.ErrTaskNotFound)
	}

	if task.ClientID == actor.UserID {
		return task, nil
	}
	if actor.IsHelper() {
		if task.Status == constants.TaskStatusOpen {
			return task, nil
		}
		related, err := helperRelated(ctx, s.repos, task, actor.UserID)
		if err != nil {
			return nil, err
		}
		if related {
			return task, nil
		}
	}
	return nil, apperrors.Forbidden("you do not have access to this task")
}

func (s *TaskService) UpdateTask(ctx context.Context, actor Actor, id string, in TaskInput) (*model.Task, error) {
	if err := actor.requireClient(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	in.normalize()
	if err := in.validate(now); err != nil {
		return nil, err
	}

	var task *model.Task
	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		var err error
		task, err = tx.Tasks.FindByID(ctx, id)
		if err != nil {
			return storeErr(err, apperrors.ErrTaskNotFound)
		}
		if task.ClientID != actor.UserID {
			return apperrors.Forbidden("only the task owner can edit it")
		}
		if task.Status != constants.TaskStatusOpen {
			return apperrors.InvalidState("only open tasks can be edited")
		}

		task.Title = in.Title
		task.Description = in.Description
		task.Location = in.Location
		task.ScheduledTime = in.ScheduledTime.UTC()
		task.Budget = in.Budget
		return storeErr(tx.Tasks.Update(ctx, task), apperrors.ErrTaskNotFound)
	})
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return task, nil
}

func (s *TaskService) ListOpenTasksForHelper(ctx context.Context, actor Actor, f OpenTaskFilter) ([]model.Task, error) {
	if err := actor.requireHelper(); err != nil {
		return nil, err
	}
	if f.MinBudget != nil && f.MinBudget.IsNegative() {
		return nil, apperrors.Validation("min_budget cannot be negative")
	}
	if f.MaxBudget != nil && f.MaxBudget.IsNegative() {
		return nil, apperrors.Validation("max_budget cannot be negative")
	}
	if f.MinBudget != nil && f.MaxBudget != nil && f.MinBudget.GreaterThan(*f.MaxBudget) {
		return nil, apperrors.Validation("min_budget cannot exceed max_budget")
	}

	tasks, err := s.repos.Tasks.ListOpenForHelper(ctx, actor.UserID, repository.OpenTaskFilter{
		Search:    f.Search,
		Location:  f.Location,
		MinBudget: f.MinBudget,
		MaxBudget: f.MaxBudget,
		Sort:      f.Sort,
		Order:     f.Order,
	})
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return tasks, nil
}

func (s *TaskService) ListTasksForClient(ctx context.Context, actor Actor, f ClientTaskFilter) ([]model.TaskWithCounts, error) {
	if err := actor.requireClient(); err != nil {
		return nil, err
	}

	status := constants.TaskStatus(strings.ToLower(strings.TrimSpace(f.Status)))
	if status == "all" {
		status = ""
	}
	if status != "" && !status.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown task status %q", f.Status))
	}

	tasks, err := s.repos.Tasks.ListForClient(ctx, actor.UserID, repository.ClientTaskFilter{
		Status: status,
		Search: f.Search,
		Sort:   f.Sort,
		Order:  f.Order,
	})
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return tasks, nil
}

// UpdateTaskStatus moves the task along its state machine and notifies the
// helpers affected by the change.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, actor Actor, id string, next constants.TaskStatus) (*model.Task, error) {
	if err := actor.requireClient(); err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown task status %q", next))
	}

	now := s.now().UTC()
	var (
		task     *model.Task
		notified int
	)
	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		var err error
		task, err = tx.Tasks.FindByID(ctx, id)
		if err != nil {
			return storeErr(err, apperrors.ErrTaskNotFound)
		}
		if task.ClientID != actor.UserID {
			return apperrors.Forbidden("only the task owner can change its status")
		}
		if !task.Status.CanTransitionTo(next) {
			return apperrors.InvalidState(fmt.Sprintf("task cannot move from %s to %s", task.Status, next))
		}

		task.Status = next
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return storeErr(err, apperrors.ErrTaskNotFound)
		}

		switch next {
		case constants.TaskStatusCancelled:
			apps, err := tx.Applications.ListActiveByTask(ctx, task.ID)
			if err != nil {
				return apperrors.Infrastructure(err)
			}
			content := fmt.Sprintf("The task %q has been cancelled by the client.", task.Title)
			for _, app := range apps {
				if err := notify(ctx, tx, now, app.HelperID, constants.NotificationTaskStatus, task.ID, content); err != nil {
					return apperrors.Infrastructure(err)
				}
				notified++
			}
		case constants.TaskStatusCompleted:
			if task.AssignedHelperID == nil {
				return nil
			}
			content := fmt.Sprintf("The task %q has been marked as completed. You can now leave a review.", task.Title)
			if err := notify(ctx, tx, now, *task.AssignedHelperID, constants.NotificationTaskStatus, task.ID, content); err != nil {
				return apperrors.Infrastructure(err)
			}
			notified++
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}

	s.logger.Info("task status changed",
		zap.String("task_id", task.ID),
		zap.String("status", string(task.Status)),
		zap.Int("notified", notified),
	)
	return task, nil
}

// helperRelated reports whether the helper is assigned to the task or has
// applied to it.
func helperRelated(ctx context.Context, repos *repository.Repositories, task *model.Task, helperID string) (bool, error) {
	if helperID == "" || helperID == task.ClientID {
		return false, nil
	}
	if task.AssignedHelperID != nil && *task.AssignedHelperID == helperID {
		return true, nil
	}
	exists, err := repos.Applications.Exists(ctx, task.ID, helperID)
	if err != nil {
		return false, apperrors.Infrastructure(err)
	}
	return exists, nil
}
