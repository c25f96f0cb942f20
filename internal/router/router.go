package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Adarsh108-tech/MyTaskManager/internal/auth"
	"github.com/Adarsh108-tech/MyTaskManager/internal/config"
	apperrors "github.com/Adarsh108-tech/MyTaskManager/internal/errors"
	"github.com/Adarsh108-tech/MyTaskManager/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)

	// Secured routes (require a Bearer session token)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey:  auth.ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "No token"})
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Message: "Invalid token"})
		},
	}))

	// Account routes
	secured.GET("/me", accountHandler.GetMe)
	secured.PUT("/ChangeName", accountHandler.ChangeName)
	secured.PUT("/ChangePassword", accountHandler.ChangePassword)
	secured.POST("/AddHobbies", accountHandler.AddHobby)
	secured.POST("/SetProfilePicture", accountHandler.SetProfilePicture)
	secured.DELETE("/DeleteProfilePicture", accountHandler.DeleteProfilePicture)

	// Task routes
	secured.POST("/AddDailyTasks", taskHandler.AddTask)
	secured.GET("/GetDailyTasks", taskHandler.GetDailyTasks)
	secured.DELETE("/DeleteTask/:id", taskHandler.DeleteTask)
	secured.POST("/TaskDoneUploadPicture", taskHandler.TaskDone)
	secured.GET("/GetTaskHistory", taskHandler.GetTaskHistory)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
