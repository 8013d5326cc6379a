package handlers

import (
	"net/http"

	"github.com/avelines/giftwell/backend/internal/models"
	"github.com/avelines/giftwell/backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// GiftHandler handles HTTP requests for gifts, both on the caller's own
// wishlist and on a friend's (secret gifts, reservations)
type GiftHandler struct {
	wishlistService *services.WishlistService
}

// NewGiftHandler creates a new GiftHandler
func NewGiftHandler(wishlistService *services.WishlistService) *GiftHandler {
	return &GiftHandler{wishlistService: wishlistService}
}

// RegisterGiftRoutes registers gift-related routes
func (h *GiftHandler) RegisterGiftRoutes(g *echo.Group) {
	// Own wishlist path
	g.POST("/wishlist/categories/:categoryId/gifts", h.AddGift)
	g.PATCH("/wishlist/categories/:categoryId/gifts/reorder", h.ReorderGifts)
	g.PATCH("/wishlist/gifts/:giftId", h.EditGift)
	g.DELETE("/wishlist/categories/:categoryId/gifts/:giftId", h.DeleteGift)
	g.POST("/wishlist/categories/:categoryId/gifts/:giftId/heart", h.ToggleHeart)

	// Friend path: surprises and reservations
	g.POST("/wishlist/friends/:friendId/categories/:categoryId/gifts", h.AddSecretGift)
	g.PATCH("/wishlist/friends/:friendId/gifts/:giftId", h.EditSecretGift)
	g.DELETE("/wishlist/friends/:friendId/categories/:categoryId/gifts/:giftId", h.DeleteSecretGift)
	g.POST("/wishlist/friends/:friendId/gifts/:giftId/reserve", h.ReserveGift)
	g.DELETE("/wishlist/friends/:friendId/gifts/:giftId/reserve", h.UnreserveGift)
}

func bindAddGift(c echo.Context) (models.AddGiftRequest, error) {
	var req models.AddGiftRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

func bindEditGift(c echo.Context) (models.EditGiftRequest, error) {
	var req models.EditGiftRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

// AddGift adds a gift to one of the caller's categories
func (h *GiftHandler) AddGift(c echo.Context) error {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return err
	}
	req, err := bindAddGift(c)
	if err != nil {
		return err
	}

	gift, err := h.wishlistService.AddGift(callerID(c), categoryID, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, gift)
}

// AddSecretGift adds a surprise gift to a friend's category
func (h *GiftHandler) AddSecretGift(c echo.Context) error {
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return err
	}
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return err
	}
	req, err := bindAddGift(c)
	if err != nil {
		return err
	}

	gift, err := h.wishlistService.AddSecretGift(callerID(c), friendID, categoryID, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, gift)
}

// EditGift updates a gift, possibly moving it to another category
func (h *GiftHandler) EditGift(c echo.Context) error {
	giftID, err := pathID(c, "giftId")
	if err != nil {
		return err
	}
	req, err := bindEditGift(c)
	if err != nil {
		return err
	}

	if err := h.wishlistService.EditGift(callerID(c), giftID, req); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

// EditSecretGift updates a surprise gift on a friend's wishlist
func (h *GiftHandler) EditSecretGift(c echo.Context) error {
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return err
	}
	giftID, err := pathID(c, "giftId")
	if err != nil {
		return err
	}
	req, err := bindEditGift(c)
	if err != nil {
		return err
	}

	if err := h.wishlistService.EditSecretGift(callerID(c), friendID, giftID, req); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

// ReorderGifts reassigns the rank order of gifts within a category
func (h *GiftHandler) ReorderGifts(c echo.Context) error {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return err
	}

	var req models.ReorderGiftsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.wishlistService.ReorderGifts(callerID(c), categoryID, req); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

// DeleteGift removes a gift from one of the caller's categories
func (h *GiftHandler) DeleteGift(c echo.Context) error {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return err
	}
	giftID, err := pathID(c, "giftId")
	if err != nil {
		return err
	}

	if err := h.wishlistService.DeleteGift(callerID(c), categoryID, giftID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteSecretGift removes a surprise gift from a friend's category
func (h *GiftHandler) DeleteSecretGift(c echo.Context) error {
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return err
	}
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return err
	}
	giftID, err := pathID(c, "giftId")
	if err != nil {
		return err
	}

	if err := h.wishlistService.DeleteSecretGift(callerID(c), friendID, categoryID, giftID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleHeart flips the heart flag on a gift
func (h *GiftHandler) ToggleHeart(c echo.Context) error {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return err
	}
	giftID, err := pathID(c, "giftId")
	if err != nil {
		return err
	}

	if err := h.wishlistService.ToggleHeart(callerID(c), categoryID, giftID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

// ReserveGift claims a gift on a friend's wishlist
func (h *GiftHandler) ReserveGift(c echo.Context) error {
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return err
	}
	giftID, err := pathID(c, "giftId")
	if err != nil {
		return err
	}

	if err := h.wishlistService.Reserve(callerID(c), friendID, giftID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

// UnreserveGift releases the caller's claim on a gift
func (h *GiftHandler) UnreserveGift(c echo.Context) error {
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return err
	}
	giftID, err := pathID(c, "giftId")
	if err != nil {
		return err
	}

	if err := h.wishlistService.Unreserve(callerID(c), friendID, giftID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}
