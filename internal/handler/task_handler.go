package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Adarsh108-tech/MyTaskManager/internal/auth"
	apperrors "github.com/Adarsh108-tech/MyTaskManager/internal/errors"
	"github.com/Adarsh108-tech/MyTaskManager/internal/service"
)

// TaskHandler handles daily task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// AddTaskRequest represents a task creation request.
type AddTaskRequest struct {
	Task string `json:"task" validate:"required"`
}

// TaskDoneResponse carries the stored task image URL.
type TaskDoneResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
}

// AddTask godoc
// @Summary Create a task for today
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddTaskRequest true "Task text"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /AddDailyTasks [post]
func (h *TaskHandler) AddTask(c echo.Context) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
	}

	var req AddTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.AddTask(c.Request().Context(), userID, req.Task)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, task)
}

// GetDailyTasks godoc
// @Summary List the authenticated user's tasks for today
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Router /GetDailyTasks [get]
func (h *TaskHandler) GetDailyTasks(c echo.Context) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
	}

	tasks, err := h.taskService.ListToday(c.Request().Context(), userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, tasks)
}

// DeleteTask godoc
// @Summary Delete a task by id
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /DeleteTask/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if _, ok := auth.IdentityFromContext(c); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "invalid task id"})
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), taskID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "task deleted"})
}

// TaskDone godoc
// @Summary Mark a task complete with an image
// @Tags tasks
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param taskId formData string true "Task ID"
// @Param image formData file true "Completion image"
// @Success 200 {object} TaskDoneResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /TaskDoneUploadPicture [post]
func (h *TaskHandler) TaskDone(c echo.Context) error {
	if _, ok := auth.IdentityFromContext(c); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
	}

	taskID, err := uuid.Parse(c.FormValue("taskId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "invalid task id"})
	}

	upload, err := imageFromForm(c)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	defer upload.close()

	task, err := h.taskService.CompleteWithImage(c.Request().Context(), taskID, upload.ImageUpload)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	imageURL := ""
	if task.Image != nil {
		imageURL = *task.Image
	}
	return c.JSON(http.StatusOK, TaskDoneResponse{
		Message:  "task completed",
		ImageURL: imageURL,
	})
}

// GetTaskHistory godoc
// @Summary List the authenticated user's completed tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Router /GetTaskHistory [get]
func (h *TaskHandler) GetTaskHistory(c echo.Context) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
	}

	tasks, err := h.taskService.ListHistory(c.Request().Context(), userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, tasks)
}
