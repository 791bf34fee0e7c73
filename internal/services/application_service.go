package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"helpify.com/helpify/internal/constants"
	apperrors "helpify.com/helpify/internal/errors"
	model "helpify.com/helpify/internal/models"
	repository "helpify.com/helpify/internal/repositories"
)

type ApplicationService struct {
	repos  *repository.Repositories
	logger *zap.Logger
	now    func() time.Time
}

func NewApplicationService(repos *repository.Repositories, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		repos:  repos,
		logger: logger,
		now:    time.Now,
	}
}

// SubmitApplication records a helper's bid on an open task and notifies the
// task's client.
func (s *ApplicationService) SubmitApplication(
	ctx context.Context,
	actor Actor,
	taskID string,
	proposal string,
	bidAmount decimal.Decimal,
) (*model.Application, error) {
	if err := actor.requireHelper(); err != nil {
		return nil, err
	}
	proposal = strings.TrimSpace(proposal)
	if utf8.RuneCountInString(proposal) < minProposalLength {
		return nil, apperrors.Validation("proposal must be at least 10 characters")
	}
	if !bidAmount.IsPositive() {
		return nil, apperrors.Validation("bid_amount must be positive")
	}

	now := s.now().UTC()
	var app *model.Application
	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		task, err := tx.Tasks.FindByID(ctx, taskID)
		if err != nil {
			return storeErr(err, apperrors.ErrTaskNotFound)
		}
		if task.ClientID == actor.UserID {
			return apperrors.Forbidden("you cannot apply to your own task")
		}
		if task.Status != constants.TaskStatusOpen {
			return apperrors.InvalidState("task is not open for applications")
		}

		active, err := tx.Applications.HasActive(ctx, task.ID, actor.UserID)
		if err != nil {
			return apperrors.Infrastructure(err)
		}
		if active {
			return apperrors.Conflict("you have already applied to this task")
		}

		helper, err := tx.Users.FindByID(ctx, actor.UserID)
		if err != nil {
			return storeErr(err, apperrors.ErrUserNotFound)
		}

		app = &model.Application{
			TaskID:    task.ID,
			HelperID:  actor.UserID,
			Proposal:  proposal,
			BidAmount: bidAmount,
			Status:    constants.ApplicationStatusPending,
			CreatedAt: now,
		}
		if err := tx.Applications.Create(ctx, app); err != nil {
			return apperrors.Infrastructure(err)
		}

		content := fmt.Sprintf("%s applied to your task %q with a bid of %s.", helper.Fullname, task.Title, bidAmount.StringFixed(2))
		if err := notify(ctx, tx, now, task.ClientID, constants.NotificationApplication, task.ID, content); err != nil {
			return apperrors.Infrastructure(err)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}

	s.logger.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("task_id", app.TaskID),
		zap.String("helper_id", app.HelperID),
	)
	return app, nil
}

// DecideApplication accepts or rejects a pending application. Accepting
// assigns the helper, starts the task and rejects the remaining pending
// applications on it.
func (s *ApplicationService) DecideApplication(
	ctx context.Context,
	actor Actor,
	applicationID string,
	decision constants.Decision,
) (*model.Application, error) {
	if err := actor.requireClient(); err != nil {
		return nil, err
	}
	if decision != constants.DecisionAccept && decision != constants.DecisionReject {
		return nil, apperrors.Validation("decision must be accept or reject")
	}

	now := s.now().UTC()
	var app *model.Application
	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		var err error
		app, err = tx.Applications.FindByID(ctx, applicationID)
		if err != nil {
			return storeErr(err, apperrors.ErrApplicationNotFound)
		}
		task, err := tx.Tasks.FindByID(ctx, app.TaskID)
		if err != nil {
			return storeErr(err, apperrors.ErrTaskNotFound)
		}
		if task.ClientID != actor.UserID {
			return apperrors.Forbidden("only the task owner can decide on applications")
		}
		if app.Status != constants.ApplicationStatusPending {
			return apperrors.InvalidState(fmt.Sprintf("application is already %s", app.Status))
		}

		if decision == constants.DecisionReject {
			if err := tx.Applications.UpdateStatus(ctx, app, constants.ApplicationStatusRejected); err != nil {
				return storeErr(err, apperrors.ErrApplicationNotFound)
			}
			content := fmt.Sprintf("Your application for %q was not accepted.", task.Title)
			return apperrors.Infrastructure(notify(ctx, tx, now, app.HelperID, constants.NotificationApplication, task.ID, content))
		}

		if task.Status != constants.TaskStatusOpen {
			return apperrors.InvalidState("task is no longer open")
		}
		if err := tx.Applications.UpdateStatus(ctx, app, constants.ApplicationStatusAccepted); err != nil {
			return storeErr(err, apperrors.ErrApplicationNotFound)
		}

		helperID := app.HelperID
		task.Status = constants.TaskStatusInProgress
		task.AssignedHelperID = &helperID
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return storeErr(err, apperrors.ErrTaskNotFound)
		}

		content := fmt.Sprintf("Your application for %q has been accepted.", task.Title)
		if err := notify(ctx, tx, now, app.HelperID, constants.NotificationApplication, task.ID, content); err != nil {
			return apperrors.Infrastructure(err)
		}

		rejected, err := tx.Applications.RejectPendingExcept(ctx, task.ID, app.ID)
		if err != nil {
			return apperrors.Infrastructure(err)
		}
		content = fmt.Sprintf("The task %q has been assigned to another helper.", task.Title)
		for _, sibling := range rejected {
			if err := notify(ctx, tx, now, sibling.HelperID, constants.NotificationApplication, task.ID, content); err != nil {
				return apperrors.Infrastructure(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}

	s.logger.Info("application decided",
		zap.String("application_id", app.ID),
		zap.String("status", string(app.Status)),
	)
	return app, nil
}

func (s *ApplicationService) ListApplicationsForTask(ctx context.Context, actor Actor, taskID string) ([]model.Application, error) {
	if err := actor.requireClient(); err != nil {
		return nil, err
	}
	task, err := s.repos.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, storeErr(err, apperrors.ErrTaskNotFound)
	}
	if task.ClientID != actor.UserID {
		return nil, apperrors.Forbidden("only the task owner can view its applications")
	}

	apps, err := s.repos.Applications.ListByTask(ctx, taskID)
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return apps, nil
}

func (s *ApplicationService) ListApplicationsForHelper(ctx context.Context, actor Actor) ([]model.Application, error) {
	if err := actor.requireHelper(); err != nil {
		return nil, err
	}
	apps, err := s.repos.Applications.ListByHelper(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return apps, nil
}
