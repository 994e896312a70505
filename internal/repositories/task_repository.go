package repositories

import (
	"context"
	"errors"

	"taskhub/backend/internal/models"
	"taskhub/backend/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTaskNotFound = errors.New("task not found")

// DefaultPageSize is used when a scan is requested without an explicit limit
// and the repository was built without one.
const DefaultPageSize = 50

// TaskRepository wraps the five store operations on the task table. Each
// method is a single round trip (UpdateFields re-reads once to return the
// full record); failures propagate unchanged, with no retry wrapping.
type TaskRepository struct {
	db       *gorm.DB
	pageSize int
}

func NewTaskRepository(db *gorm.DB, defaultPageSize int) *TaskRepository {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	return &TaskRepository{db: db, pageSize: defaultPageSize}
}

// Put is an unconditional upsert keyed by id. An existing record with the
// same id is overwritten; there is no optimistic-concurrency check.
func (r *TaskRepository) Put(ctx context.Context, task models.Task) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&task).Error
}

// ScanPage returns up to limit records plus the cursor to resume from, or a
// nil cursor when the scan is exhausted. Records come back in key order;
// callers must not rely on any particular ordering. A limit of zero or less
// selects the default page size.
func (r *TaskRepository) ScanPage(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Task, *pagination.Cursor, error) {
	return r.scan(ctx, r.db, limit, cursor)
}

// ScanPageByUser behaves like ScanPage restricted to records the given user
// owns or is assigned to.
func (r *TaskRepository) ScanPageByUser(ctx context.Context, userID string, limit int, cursor *pagination.Cursor) ([]models.Task, *pagination.Cursor, error) {
	tx := r.db.Where("user_id = ? OR assigned_user = ?", userID, userID)
	return r.scan(ctx, tx, limit, cursor)
}

func (r *TaskRepository) scan(ctx context.Context, tx *gorm.DB, limit int, cursor *pagination.Cursor) ([]models.Task, *pagination.Cursor, error) {
	if limit <= 0 {
		limit = r.pageSize
	}

	q := tx.WithContext(ctx).Order("id").Limit(limit + 1)
	if cursor != nil {
		q = q.Where("id > ?", cursor.LastID)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, nil, err
	}

	// One extra row tells us whether another page exists without a second
	// round trip.
	if len(tasks) > limit {
		tasks = tasks[:limit]
		return tasks, &pagination.Cursor{LastID: tasks[limit-1].ID}, nil
	}
	return tasks, nil, nil
}

func (r *TaskRepository) GetByKey(ctx context.Context, id string) (models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateFields rewrites the mutable fields unconditionally and returns the
// resulting record. Omitted payload fields arrive as zero values and are
// written as such; id and user_id are never touched. A zero rows-affected
// result surfaces as ErrTaskNotFound so a missing key is never silently
// created.
func (r *TaskRepository) UpdateFields(ctx context.Context, id string, update models.TaskUpdate) (models.Task, error) {
	result := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":          update.Name,
			"description":   update.Description,
			"status":        update.Status,
			"priority":      update.Priority,
			"due_date":      update.DueDate,
			"assigned_user": update.AssignedUser,
		})
	if result.Error != nil {
		return models.Task{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Task{}, ErrTaskNotFound
	}
	return r.GetByKey(ctx, id)
}

// Delete removes the record by key. Deleting a key that does not exist is
// not an error.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id).Error
}
