package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/Adarsh108-tech/MyTaskManager/internal/errors"
	"github.com/Adarsh108-tech/MyTaskManager/internal/model"
	"github.com/Adarsh108-tech/MyTaskManager/internal/repository"
	"github.com/Adarsh108-tech/MyTaskManager/internal/storage"
)

// TaskService handles daily task operations.
type TaskService interface {
	AddTask(ctx context.Context, ownerID uuid.UUID, text string) (*model.Task, error)
	ListToday(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
	CompleteWithImage(ctx context.Context, taskID uuid.UUID, upload *ImageUpload) (*model.Task, error)
	ListHistory(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
	storage  storage.ObjectStorage
	now      func() time.Time
}

// NewTaskService builds a TaskService.
func NewTaskService(taskRepo repository.TaskRepository, objectStorage storage.ObjectStorage) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		storage:  objectStorage,
		now:      time.Now,
	}
}

func (s *taskService) today() string {
	return s.now().UTC().Format(model.DateLayout)
}

// AddTask creates an incomplete task dated to the current UTC calendar day.
func (s *taskService) AddTask(ctx context.Context, ownerID uuid.UUID, text string) (*model.Task, error) {
	task := &model.Task{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Text:    text,
		Date:    s.today(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ListToday returns the owner's tasks for the current UTC calendar day.
func (s *taskService) ListToday(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.taskRepo.ListByOwnerAndDate(ctx, ownerID, s.today())
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// DeleteTask removes the task by id. Any authenticated caller may delete any
// task; ownership is not verified (see DESIGN.md).
func (s *taskService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	if _, err := s.findTask(ctx, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// CompleteWithImage uploads the image, then marks the task completed with the
// returned URL. The two steps are not transactional; a failure after the
// upload leaves an unlinked object behind. Ownership is not verified (see
// DESIGN.md).
func (s *taskService) CompleteWithImage(ctx context.Context, taskID uuid.UUID, upload *ImageUpload) (*model.Task, error) {
	if upload == nil || upload.Body == nil {
		return nil, apperrors.ErrNoImage
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.Upload(ctx, storage.FolderTaskImages, upload.Filename, upload.ContentType, upload.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}

	task.Completed = true
	task.Image = &url
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// ListHistory returns the owner's completed tasks, most recent day first.
func (s *taskService) ListHistory(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.taskRepo.ListCompletedByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return tasks, nil
}

func (s *taskService) findTask(ctx context.Context, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}
