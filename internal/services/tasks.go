package services

import (
	"context"
	"errors"

	"taskhub/backend/internal/models"
	"taskhub/backend/internal/pagination"
	"taskhub/backend/internal/repositories"
)

// TaskPage is one page of a task listing plus the token to fetch the next
// page. An empty NextToken means the listing is exhausted.
type TaskPage struct {
	Tasks     []models.Task `json:"tasks"`
	NextToken string        `json:"nextToken,omitempty"`
}

type TaskService interface {
	Create(ctx context.Context, input models.TaskInput, callerID string) (models.Task, error)
	List(ctx context.Context, limit int, token, callerID string) (TaskPage, error)
	Get(ctx context.Context, id, callerID string) (models.Task, error)
	Update(ctx context.Context, id string, update models.TaskUpdate, callerID string) (models.Task, error)
	Remove(ctx context.Context, id, callerID string) error
}

// taskService orchestrates defaulting, ownership and store calls. It holds
// no cache; every operation is a fresh store round trip.
//
// enforceOwnership selects between the two behaviors the API has shipped
// with: when false, any authenticated caller sees and mutates all tasks;
// when true, List is restricted to tasks the caller owns or is assigned to,
// and Get/Update/Remove report a foreign task as not found rather than
// revealing its existence.
type taskService struct {
	repo             *repositories.TaskRepository
	enforceOwnership bool
}

func NewTaskService(repo *repositories.TaskRepository, enforceOwnership bool) TaskService {
	return &taskService{repo: repo, enforceOwnership: enforceOwnership}
}

func (s *taskService) Create(ctx context.Context, input models.TaskInput, callerID string) (models.Task, error) {
	task := models.NewTask(input, callerID)
	if err := s.repo.Put(ctx, task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, limit int, token, callerID string) (TaskPage, error) {
	var cursor *pagination.Cursor
	if token != "" {
		c, err := pagination.Decode(token)
		if err != nil {
			return TaskPage{}, err
		}
		cursor = &c
	}

	var (
		tasks []models.Task
		next  *pagination.Cursor
		err   error
	)
	if s.enforceOwnership {
		tasks, next, err = s.repo.ScanPageByUser(ctx, callerID, limit, cursor)
	} else {
		tasks, next, err = s.repo.ScanPage(ctx, limit, cursor)
	}
	if err != nil {
		return TaskPage{}, err
	}

	page := TaskPage{Tasks: tasks}
	if next != nil {
		page.NextToken = pagination.Encode(*next)
	}
	return page, nil
}

func (s *taskService) Get(ctx context.Context, id, callerID string) (models.Task, error) {
	task, err := s.repo.GetByKey(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if !s.allowed(task, callerID) {
		return models.Task{}, repositories.ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id string, update models.TaskUpdate, callerID string) (models.Task, error) {
	if s.enforceOwnership {
		task, err := s.repo.GetByKey(ctx, id)
		if err != nil {
			return models.Task{}, err
		}
		if !s.allowed(task, callerID) {
			return models.Task{}, repositories.ErrTaskNotFound
		}
	}
	return s.repo.UpdateFields(ctx, id, update)
}

// Remove deletes by key and succeeds whether or not the record existed.
func (s *taskService) Remove(ctx context.Context, id, callerID string) error {
	if s.enforceOwnership {
		task, err := s.repo.GetByKey(ctx, id)
		if err != nil {
			// Deleting an absent key is a success; delete stays idempotent
			// under ownership enforcement too.
			if errors.Is(err, repositories.ErrTaskNotFound) {
				return nil
			}
			return err
		}
		if !s.allowed(task, callerID) {
			return repositories.ErrTaskNotFound
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *taskService) allowed(task models.Task, callerID string) bool {
	if !s.enforceOwnership {
		return true
	}
	return task.UserID == callerID || (task.AssignedUser != "" && task.AssignedUser == callerID)
}
