package constants

type UserType string

const (
	UserTypeClient UserType = "client"
	UserTypeHelper UserType = "helper"
)

func (t UserType) Valid() bool {
	return t == UserTypeClient || t == UserTypeHelper
}

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusOpen:       {TaskStatusInProgress, TaskStatusCancelled},
	TaskStatusInProgress: {TaskStatusCompleted, TaskStatusCancelled},
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a task may move from s to next.
// Completed and cancelled are terminal.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range taskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ActiveApplicationStatuses are the statuses that block a helper from
// applying again and that receive task status notifications.
var ActiveApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusAccepted,
}

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

type NotificationType string

const (
	NotificationApplication NotificationType = "application"
	NotificationMessage     NotificationType = "message"
	NotificationTaskStatus  NotificationType = "task_status"
	NotificationReview      NotificationType = "review"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationApplication, NotificationMessage, NotificationTaskStatus, NotificationReview:
		return true
	}
	return false
}
