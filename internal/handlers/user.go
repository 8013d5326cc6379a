package handlers

import (
	"net/http"

	"github.com/avelines/giftwell/backend/internal/models"
	"github.com/avelines/giftwell/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// UserHandler handles directory profile requests. Account credentials
// are owned by the external auth service; only the public profile lives
// here.
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers user profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.POST("/users/me", h.CreateProfile)
	g.GET("/users/me", h.GetProfile)
	g.PATCH("/users/me", h.UpdateProfile)
	g.GET("/users/search", h.SearchUsers)
}

// CreateProfile creates the caller's directory entry. The id comes from
// the verified token, so an entry can only ever be created for oneself.
func (h *UserHandler) CreateProfile(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := &models.User{
		Name:        req.Name,
		Picture:     req.Picture,
		DateOfBirth: req.DateOfBirth,
	}
	user.ID = callerID(c)
	if err := h.userRepository.CreateUser(user); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, user.Summary())
}

// GetProfile returns the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(callerID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user.Summary())
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(callerID(c))
	if err != nil {
		return toHTTPError(err)
	}

	user.Name = req.Name
	user.Picture = req.Picture
	user.DateOfBirth = req.DateOfBirth
	if err := h.userRepository.UpdateUser(user); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user.Summary())
}

// SearchUsers searches the directory by name
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return toHTTPError(err)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return c.JSON(http.StatusOK, summaries)
}
