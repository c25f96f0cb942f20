package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/Adarsh108-tech/MyTaskManager/internal/errors"
	"github.com/Adarsh108-tech/MyTaskManager/internal/model"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) ListByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date string) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListCompletedByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func newTaskServiceAt(repo *MockTaskRepository, storage *MockObjectStorage, at time.Time) *taskService {
	svc := NewTaskService(repo, storage).(*taskService)
	svc.now = func() time.Time { return at }
	return svc
}

func TestTaskService_AddTask(t *testing.T) {
	ownerID := uuid.New()
	at := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)

	mockRepo := new(MockTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	svc := newTaskServiceAt(mockRepo, new(MockObjectStorage), at)
	task, err := svc.AddTask(context.Background(), ownerID, "wash dishes")

	assert.NoError(t, err)
	assert.Equal(t, ownerID, task.OwnerID)
	assert.Equal(t, "wash dishes", task.Text)
	assert.False(t, task.Completed)
	assert.Nil(t, task.Image)
	assert.Equal(t, "2024-01-01", task.Date)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_ListToday_DayBoundary(t *testing.T) {
	ownerID := uuid.New()
	dayD := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	dayAfter := dayD.Add(24 * time.Hour)

	task := model.Task{ID: uuid.New(), OwnerID: ownerID, Text: "wash dishes", Date: "2024-01-01"}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListByOwnerAndDate", mock.Anything, ownerID, "2024-01-01").Return([]model.Task{task}, nil)
	mockRepo.On("ListByOwnerAndDate", mock.Anything, ownerID, "2024-01-02").Return([]model.Task{}, nil)

	svc := newTaskServiceAt(mockRepo, new(MockObjectStorage), dayD)
	tasks, err := svc.ListToday(context.Background(), ownerID)
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, "wash dishes", tasks[0].Text)

	// Same query a day later excludes yesterday's task.
	svc.now = func() time.Time { return dayAfter }
	tasks, err = svc.ListToday(context.Background(), ownerID)
	assert.NoError(t, err)
	assert.Empty(t, tasks)

	mockRepo.AssertExpectations(t)
}

func TestTaskService_CompleteWithImage(t *testing.T) {
	taskID := uuid.New()
	task := &model.Task{ID: taskID, OwnerID: uuid.New(), Text: "wash dishes", Date: "2024-01-01"}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, taskID).Return(task, nil)
	mockRepo.On("Update", mock.Anything, task).Return(nil)

	mockStorage := new(MockObjectStorage)
	mockStorage.On("Upload", mock.Anything, "task_images", "proof.jpg", "image/jpeg", mock.Anything).
		Return("https://cdn.example.com/task_images/abc.jpg", nil)

	svc := newTaskServiceAt(mockRepo, mockStorage, time.Now())
	updated, err := svc.CompleteWithImage(context.Background(), taskID, &ImageUpload{
		Filename:    "proof.jpg",
		ContentType: "image/jpeg",
		Body:        strings.NewReader("fake image bytes"),
	})

	assert.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.NotNil(t, updated.Image)
	assert.Equal(t, "https://cdn.example.com/task_images/abc.jpg", *updated.Image)
	mockRepo.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

func TestTaskService_CompleteWithImage_MissingImage(t *testing.T) {
	svc := newTaskServiceAt(new(MockTaskRepository), new(MockObjectStorage), time.Now())

	_, err := svc.CompleteWithImage(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, apperrors.ErrNoImage)
}

func TestTaskService_CompleteWithImage_TaskNotFound(t *testing.T) {
	taskID := uuid.New()
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, taskID).Return(nil, gorm.ErrRecordNotFound)

	svc := newTaskServiceAt(mockRepo, new(MockObjectStorage), time.Now())
	_, err := svc.CompleteWithImage(context.Background(), taskID, &ImageUpload{
		Filename:    "proof.jpg",
		ContentType: "image/jpeg",
		Body:        strings.NewReader("fake image bytes"),
	})

	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestTaskService_CompleteWithImage_UploadFailure(t *testing.T) {
	taskID := uuid.New()
	task := &model.Task{ID: taskID, Text: "wash dishes", Date: "2024-01-01"}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, taskID).Return(task, nil)

	mockStorage := new(MockObjectStorage)
	mockStorage.On("Upload", mock.Anything, "task_images", "proof.jpg", "image/jpeg", mock.Anything).
		Return("", assert.AnError)

	svc := newTaskServiceAt(mockRepo, mockStorage, time.Now())
	_, err := svc.CompleteWithImage(context.Background(), taskID, &ImageUpload{
		Filename:    "proof.jpg",
		ContentType: "image/jpeg",
		Body:        strings.NewReader("fake image bytes"),
	})

	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	assert.False(t, task.Completed)
	assert.Nil(t, task.Image)
}

// Deletion is by id only; the service does not compare the task's owner to the
// caller. This test pins that current behavior.
func TestTaskService_DeleteTask_AnyCaller(t *testing.T) {
	taskID := uuid.New()
	someoneElsesTask := &model.Task{ID: taskID, OwnerID: uuid.New(), Text: "wash dishes", Date: "2024-01-01"}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, taskID).Return(someoneElsesTask, nil)
	mockRepo.On("Delete", mock.Anything, taskID).Return(nil)

	svc := newTaskServiceAt(mockRepo, new(MockObjectStorage), time.Now())
	err := svc.DeleteTask(context.Background(), taskID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_DeleteTask_NotFound(t *testing.T) {
	taskID := uuid.New()
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, taskID).Return(nil, gorm.ErrRecordNotFound)

	svc := newTaskServiceAt(mockRepo, new(MockObjectStorage), time.Now())
	err := svc.DeleteTask(context.Background(), taskID)

	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestTaskService_ListHistory_MostRecentFirst(t *testing.T) {
	ownerID := uuid.New()
	ordered := []model.Task{
		{ID: uuid.New(), OwnerID: ownerID, Date: "2024-01-03", Completed: true},
		{ID: uuid.New(), OwnerID: ownerID, Date: "2024-01-01", Completed: true},
	}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListCompletedByOwner", mock.Anything, ownerID).Return(ordered, nil)

	svc := newTaskServiceAt(mockRepo, new(MockObjectStorage), time.Now())
	tasks, err := svc.ListHistory(context.Background(), ownerID)

	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, "2024-01-03", tasks[0].Date)
	assert.Equal(t, "2024-01-01", tasks[1].Date)
	mockRepo.AssertExpectations(t)
}
