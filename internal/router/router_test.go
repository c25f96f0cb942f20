package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Adarsh108-tech/MyTaskManager/internal/auth"
	"github.com/Adarsh108-tech/MyTaskManager/internal/config"
	"github.com/Adarsh108-tech/MyTaskManager/internal/handler"
	"github.com/Adarsh108-tech/MyTaskManager/internal/model"
	"github.com/Adarsh108-tech/MyTaskManager/internal/service"
)

// stubAccountService satisfies service.AccountService with canned responses.
type stubAccountService struct {
	user *model.User
}

func (s *stubAccountService) Signup(ctx context.Context, name, email, password string) error {
	return nil
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (string, error) {
	return "", nil
}

func (s *stubAccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.user, nil
}

func (s *stubAccountService) ChangeName(ctx context.Context, userID uuid.UUID, name string) error {
	return nil
}

func (s *stubAccountService) ChangePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	return nil
}

func (s *stubAccountService) AddHobby(ctx context.Context, userID uuid.UUID, hobby string) error {
	return nil
}

func (s *stubAccountService) SetProfilePicture(ctx context.Context, userID uuid.UUID, upload *service.ImageUpload) (string, error) {
	return "", nil
}

func (s *stubAccountService) DeleteProfilePicture(ctx context.Context, userID uuid.UUID) error {
	return nil
}

// stubTaskService satisfies service.TaskService with canned responses.
type stubTaskService struct{}

func (s *stubTaskService) AddTask(ctx context.Context, ownerID uuid.UUID, text string) (*model.Task, error) {
	return &model.Task{ID: uuid.New(), OwnerID: ownerID, Text: text, Date: "2024-01-01"}, nil
}

func (s *stubTaskService) ListToday(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	return []model.Task{}, nil
}

func (s *stubTaskService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	return nil
}

func (s *stubTaskService) CompleteWithImage(ctx context.Context, taskID uuid.UUID, upload *service.ImageUpload) (*model.Task, error) {
	return nil, nil
}

func (s *stubTaskService) ListHistory(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	return []model.Task{}, nil
}

func newTestServer(t *testing.T, jwtService *auth.JWTService, user *model.User) *echo.Echo {
	t.Helper()

	e := echo.New()
	cfg := &config.Config{CORSOrigin: "*"}

	accountService := &stubAccountService{user: user}
	Register(
		e,
		cfg,
		jwtService,
		handler.NewAuthHandler(accountService),
		handler.NewAccountHandler(accountService),
		handler.NewTaskHandler(&stubTaskService{}),
	)
	return e
}

func TestAuthGate_MissingToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	e := newTestServer(t, jwtService, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"No token"}`, rec.Body.String())
}

func TestAuthGate_InvalidToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	e := newTestServer(t, jwtService, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
}

func TestAuthGate_WrongSecret(t *testing.T) {
	e := newTestServer(t, auth.NewJWTService("server-secret"), nil)

	token, err := auth.NewJWTService("other-secret").GenerateToken(uuid.New().String())
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
}

func TestAuthGate_ValidToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	userID := uuid.New()
	user := &model.User{
		ID:           userID,
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "super-secret-hash",
	}
	e := newTestServer(t, jwtService, user)

	token, err := jwtService.GenerateToken(userID.String())
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test@example.com")
	// The password hash never leaves the server.
	assert.NotContains(t, rec.Body.String(), "super-secret-hash")
}

func TestHealthzIsPublic(t *testing.T) {
	e := newTestServer(t, auth.NewJWTService("test-secret"), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
