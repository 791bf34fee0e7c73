package services

import (
	"context"
	"time"

	"helpify.com/helpify/internal/constants"
	model "helpify.com/helpify/internal/models"
	repository "helpify.com/helpify/internal/repositories"
)

// notify writes one notification row using the caller's transaction.
func notify(
	ctx context.Context,
	tx *repository.Repositories,
	at time.Time,
	userID string,
	kind constants.NotificationType,
	relatedID string,
	content string,
) error {
	return tx.Notifications.Create(ctx, &model.Notification{
		UserID:    userID,
		Type:      kind,
		Content:   content,
		RelatedID: relatedID,
		CreatedAt: at,
	})
}
