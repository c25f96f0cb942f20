package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Adarsh108-tech/MyTaskManager/internal/auth"
	"github.com/Adarsh108-tech/MyTaskManager/internal/cache"
	apperrors "github.com/Adarsh108-tech/MyTaskManager/internal/errors"
	"github.com/Adarsh108-tech/MyTaskManager/internal/model"
	"github.com/Adarsh108-tech/MyTaskManager/internal/repository"
	"github.com/Adarsh108-tech/MyTaskManager/internal/storage"
)

const bcryptCost = 10

const profileCacheTTL = 5 * time.Minute

// ImageUpload carries one uploaded file through the service layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// AccountService handles signup, login and profile operations.
type AccountService interface {
	Signup(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	ChangeName(ctx context.Context, userID uuid.UUID, name string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, newPassword string) error
	AddHobby(ctx context.Context, userID uuid.UUID, hobby string) error
	SetProfilePicture(ctx context.Context, userID uuid.UUID, upload *ImageUpload) (string, error)
	DeleteProfilePicture(ctx context.Context, userID uuid.UUID) error
}

type accountService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	storage    storage.ObjectStorage
	cache      *cache.Client
}

// NewAccountService builds an AccountService.
func NewAccountService(userRepo repository.UserRepository, jwtService *auth.JWTService, objectStorage storage.ObjectStorage, cacheClient *cache.Client) AccountService {
	return &accountService{
		userRepo:   userRepo,
		jwtService: jwtService,
		storage:    objectStorage,
		cache:      cacheClient,
	}
}

func profileCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id)
}

// Signup creates a user with a bcrypt-hashed password. The email is checked
// before the insert and the store's unique index is the backstop for races.
func (s *accountService) Signup(ctx context.Context, name, email, password string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Hobbies:      []string{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// Login verifies credentials and issues a session token.
func (s *accountService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID.String())
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// GetProfile returns the user record. The password hash is excluded from
// serialization by the model's JSON tags; cached copies therefore never
// contain it.
func (s *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, profileCacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, profileCacheKey(userID), payload, profileCacheTTL)
	}
	return user, nil
}

// ChangeName overwrites the display name unconditionally.
func (s *accountService) ChangeName(ctx context.Context, userID uuid.UUID, name string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	user.Name = name
	return s.saveAndInvalidate(ctx, user)
}

// ChangePassword re-hashes and overwrites the stored credential. The old
// password is not required, matching the existing API contract.
func (s *accountService) ChangePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	return s.saveAndInvalidate(ctx, user)
}

// AddHobby appends to the hobby list. Duplicates are allowed.
func (s *accountService) AddHobby(ctx context.Context, userID uuid.UUID, hobby string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	user.Hobbies = append(user.Hobbies, hobby)
	return s.saveAndInvalidate(ctx, user)
}

// SetProfilePicture uploads the image and stores the returned URL.
func (s *accountService) SetProfilePicture(ctx context.Context, userID uuid.UUID, upload *ImageUpload) (string, error) {
	if upload == nil || upload.Body == nil {
		return "", apperrors.ErrNoImage
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.storage.Upload(ctx, storage.FolderProfilePictures, upload.Filename, upload.ContentType, upload.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}

	user.ProfilePicture = &url
	if err := s.saveAndInvalidate(ctx, user); err != nil {
		return "", err
	}
	return url, nil
}

// DeleteProfilePicture clears the URL. The stored object is retained; only
// the reference is dropped.
func (s *accountService) DeleteProfilePicture(ctx context.Context, userID uuid.UUID) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	user.ProfilePicture = nil
	return s.saveAndInvalidate(ctx, user)
}

func (s *accountService) findUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *accountService) saveAndInvalidate(ctx context.Context, user *model.User) error {
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, profileCacheKey(user.ID))
	return nil
}
