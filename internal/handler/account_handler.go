package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Adarsh108-tech/MyTaskManager/internal/auth"
	apperrors "github.com/Adarsh108-tech/MyTaskManager/internal/errors"
	"github.com/Adarsh108-tech/MyTaskManager/internal/service"
)

// AccountHandler handles profile endpoints.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// ChangeNameRequest represents a display name change.
type ChangeNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// ChangePasswordRequest represents a password change.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// AddHobbyRequest represents a hobby append.
type AddHobbyRequest struct {
	Hobby string `json:"hobby" validate:"required"`
}

// ProfilePictureResponse carries the stored picture URL.
type ProfilePictureResponse struct {
	Message        string `json:"message"`
	ProfilePicture string `json:"profilePicture"`
}

// GetMe godoc
// @Summary Get the authenticated user's profile
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AccountHandler) GetMe(c echo.Context) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
	}

	user, err := h.accountService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}

// ChangeName godoc
// @Summary Change the authenticated user's display name
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangeNameRequest true "New name"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /ChangeName [put]
func (h *AccountHandler) ChangeName(c echo.Context) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
	}

	var req ChangeNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accountService.ChangeName(c.Request().Context(), userID, req.Name); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "name updated"})
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "New password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /ChangePassword [put]
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accountService.ChangePassword(c.Request().Context(), userID, req.NewPassword); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
}

// AddHobby godoc
// @Summary Append a hobby to the authenticated user's profile
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddHobbyRequest true "Hobby"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /AddHobbies [post]
func (h *AccountHandler) AddHobby(c echo.Context) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
	}

	var req AddHobbyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accountService.AddHobby(c.Request().Context(), userID, req.Hobby); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "hobby added"})
}

// SetProfilePicture godoc
// @Summary Upload a profile picture
// @Tags account
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Profile image"
// @Success 200 {object} ProfilePictureResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /SetProfilePicture [post]
func (h *AccountHandler) SetProfilePicture(c echo.Context) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
	}

	upload, err := imageFromForm(c)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	defer upload.close()

	url, err := h.accountService.SetProfilePicture(c.Request().Context(), userID, upload.ImageUpload)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, ProfilePictureResponse{
		Message:        "profile picture updated",
		ProfilePicture: url,
	})
}

// DeleteProfilePicture godoc
// @Summary Remove the profile picture reference
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /DeleteProfilePicture [delete]
func (h *AccountHandler) DeleteProfilePicture(c echo.Context) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
	}

	if err := h.accountService.DeleteProfilePicture(c.Request().Context(), userID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "profile picture removed"})
}
