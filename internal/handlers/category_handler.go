package handlers

import (
	"net/http"

	"github.com/avelines/giftwell/backend/internal/models"
	"github.com/avelines/giftwell/backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CategoryHandler handles HTTP requests for wishlist categories
type CategoryHandler struct {
	wishlistService *services.WishlistService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(wishlistService *services.WishlistService) *CategoryHandler {
	return &CategoryHandler{wishlistService: wishlistService}
}

// RegisterCategoryRoutes registers category-related routes
func (h *CategoryHandler) RegisterCategoryRoutes(g *echo.Group) {
	g.POST("/wishlist/categories", h.CreateCategory)
	g.PATCH("/wishlist/categories/reorder", h.ReorderCategories)
	g.PATCH("/wishlist/categories/:categoryId", h.EditCategory)
	g.DELETE("/wishlist/categories/:categoryId", h.DeleteCategory)
}

// CreateCategory creates a category shared with the listed friends
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req models.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.wishlistService.CreateCategory(callerID(c), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// EditCategory renames a category and updates its share list
func (h *CategoryHandler) EditCategory(c echo.Context) error {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return err
	}

	var req models.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.wishlistService.EditCategory(callerID(c), categoryID, req); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

// ReorderCategories reassigns the caller's personal category order
func (h *CategoryHandler) ReorderCategories(c echo.Context) error {
	var req models.ReorderCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.wishlistService.ReorderCategories(callerID(c), req); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

// DeleteCategory removes the caller's membership, cascading when the
// last member leaves
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return err
	}

	if err := h.wishlistService.DeleteCategory(callerID(c), categoryID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
