package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"helpify.com/helpify/internal/constants"
	model "helpify.com/helpify/internal/models"
)

const (
	MaxOpenTaskResults = 50
	defaultSortColumn  = "created_at"
)

var sortColumns = map[string]string{
	"created_at":     "created_at",
	"scheduled_time": "scheduled_time",
	"budget":         "budget",
	"title":          "title",
}

type OpenTaskFilter struct {
	Search    string
	Location  string
	MinBudget *decimal.Decimal
	MaxBudget *decimal.Decimal
	Sort      string
	Order     string
}

type ClientTaskFilter struct {
	Status constants.TaskStatus
	Search string
	Sort   string
	Order  string
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	task.UpdatedAt = task.CreatedAt
	task.Version = 1
	task.RefreshSearchText()

	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &task, nil
}

func (r *TaskRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tasks).Error
	return tasks, err
}

// ListOpenForHelper returns open tasks the helper does not own and has no
// pending or accepted application on.
func (r *TaskRepository) ListOpenForHelper(ctx context.Context, helperID string, f OpenTaskFilter) ([]model.Task, error) {
	db := r.db.WithContext(ctx)

	active := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Application{}).
		Select("1").
		Where("applications.task_id = tasks.id AND applications.helper_id = ? AND applications.status IN ?",
			helperID, constants.ActiveApplicationStatuses)

	query := db.Model(&model.Task{}).
		Where("tasks.status = ?", constants.TaskStatusOpen).
		Where("tasks.client_id <> ?", helperID).
		Where("NOT EXISTS (?)", active)

	if s := strings.TrimSpace(f.Search); s != "" {
		query = query.Where("tasks.search_text LIKE ? ESCAPE '!'", containsPattern(s))
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		query = query.Where("tasks.location_text LIKE ? ESCAPE '!'", containsPattern(l))
	}
	if f.MinBudget != nil {
		query = query.Where("tasks.budget >= ?", *f.MinBudget)
	}
	if f.MaxBudget != nil {
		query = query.Where("tasks.budget <= ?", *f.MaxBudget)
	}

	var tasks []model.Task
	err := query.
		Order(orderBy(f.Sort, f.Order)).
		Limit(MaxOpenTaskResults).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListForClient(ctx context.Context, clientID string, f ClientTaskFilter) ([]model.TaskWithCounts, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{}).
		Select(`tasks.*,
			(SELECT COUNT(*) FROM applications a WHERE a.task_id = tasks.id) AS application_count,
			(SELECT COUNT(*) FROM applications a WHERE a.task_id = tasks.id AND a.status = ?) AS accepted_application_count`,
			constants.ApplicationStatusAccepted).
		Where("tasks.client_id = ?", clientID)

	if f.Status != "" {
		query = query.Where("tasks.status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := containsPattern(s)
		query = query.Where("(tasks.search_text LIKE ? ESCAPE '!' OR tasks.location_text LIKE ? ESCAPE '!')", p, p)
	}

	var rows []model.TaskWithCounts
	err := query.Order(orderBy(f.Sort, f.Order)).Scan(&rows).Error
	return rows, err
}

// Update writes the mutable task fields guarded by the version column.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()
	task.RefreshSearchText()
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":              task.Title,
			"description":        task.Description,
			"location":           task.Location,
			"scheduled_time":     task.ScheduledTime,
			"budget":             task.Budget,
			"status":             task.Status,
			"assigned_helper_id": task.AssignedHelperID,
			"search_text":        task.SearchText,
			"location_text":      task.LocationText,
			"updated_at":         now,
			"version":            gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	task.Version++
	task.UpdatedAt = now
	return nil
}

// orderBy resolves a user supplied sort key and direction. Unknown keys
// fall back to created_at and unknown directions to descending.
func orderBy(sort, order string) clause.OrderByColumn {
	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(sort))]
	if !ok {
		column = defaultSortColumn
	}
	desc := !strings.EqualFold(strings.TrimSpace(order), "asc")
	return clause.OrderByColumn{
		Column: clause.Column{Table: "tasks", Name: column},
		Desc:   desc,
	}
}
