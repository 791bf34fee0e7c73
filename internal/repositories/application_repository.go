package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"helpify.com/helpify/internal/constants"
	model "helpify.com/helpify/internal/models"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}
	app.UpdatedAt = app.CreatedAt

	return r.db.WithContext(ctx).Create(app).Error
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &app, nil
}

// HasActive reports whether the helper holds a pending or accepted
// application on the task.
func (r *ApplicationRepository) HasActive(ctx context.Context, taskID, helperID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("task_id = ? AND helper_id = ? AND status IN ?", taskID, helperID, constants.ActiveApplicationStatuses).
		Count(&count).Error
	return count > 0, err
}

// Exists reports whether the helper ever applied to the task.
func (r *ApplicationRepository) Exists(ctx context.Context, taskID, helperID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("task_id = ? AND helper_id = ?", taskID, helperID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepository) ListByTask(ctx context.Context, taskID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at desc").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) ListByHelper(ctx context.Context, helperID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Where("helper_id = ?", helperID).
		Order("created_at desc").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) ListActiveByTask(ctx context.Context, taskID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND status IN ?", taskID, constants.ActiveApplicationStatuses).
		Order("created_at asc").
		Find(&apps).Error
	return apps, err
}

// UpdateStatus moves a pending application to status. It reports
// ErrOptimisticLock when the application was no longer pending.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, app *model.Application, status constants.ApplicationStatus) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("id = ? AND status = ?", app.ID, constants.ApplicationStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	app.Status = status
	app.UpdatedAt = now
	return nil
}

// RejectPendingExcept rejects every pending application on the task other
// than keepID and returns the rejected rows.
func (r *ApplicationRepository) RejectPendingExcept(ctx context.Context, taskID, keepID string) ([]model.Application, error) {
	var siblings []model.Application
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND id <> ? AND status = ?", taskID, keepID, constants.ApplicationStatusPending).
		Find(&siblings).Error
	if err != nil || len(siblings) == 0 {
		return nil, err
	}

	ids := make([]string, 0, len(siblings))
	for _, s := range siblings {
		ids = append(ids, s.ID)
	}

	now := time.Now().UTC()
	err = r.db.WithContext(ctx).Model(&model.Application{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     constants.ApplicationStatusRejected,
			"updated_at": now,
		}).Error
	if err != nil {
		return nil, err
	}

	for i := range siblings {
		siblings[i].Status = constants.ApplicationStatusRejected
		siblings[i].UpdatedAt = now
	}
	return siblings, nil
}
