package handlers

import (
	"net/http"

	"github.com/avelines/giftwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// WishlistHandler serves the read shapes: the caller's own view, the
// friend view, and the shopping exports consumed by the PDF renderer
type WishlistHandler struct {
	wishlistService *services.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// RegisterWishlistRoutes registers wishlist read routes
func (h *WishlistHandler) RegisterWishlistRoutes(g *echo.Group) {
	g.GET("/wishlist", h.GetOwnWishlist)
	g.GET("/wishlist/export", h.ExportOwnWishlist)
	g.GET("/wishlist/friends/:friendId", h.GetFriendWishlist)
	g.GET("/wishlist/friends/:friendId/export", h.ExportFriendWishlist)
}

// GetOwnWishlist returns the caller's categories and non-secret gifts
func (h *WishlistHandler) GetOwnWishlist(c echo.Context) error {
	wishlist, err := h.wishlistService.GetOwnWishlist(callerID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, wishlist)
}

// GetFriendWishlist returns the friend view of the target user
func (h *WishlistHandler) GetFriendWishlist(c echo.Context) error {
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return err
	}

	wishlist, err := h.wishlistService.GetFriendWishlist(callerID(c), friendID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, wishlist)
}

// ExportOwnWishlist returns the caller's shopping-export shape
func (h *WishlistHandler) ExportOwnWishlist(c echo.Context) error {
	wishlist, err := h.wishlistService.ExportOwnWishlist(callerID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, wishlist)
}

// ExportFriendWishlist returns the friend view projected for printing:
// no reserved gifts, no secret or reservation fields
func (h *WishlistHandler) ExportFriendWishlist(c echo.Context) error {
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return err
	}

	wishlist, err := h.wishlistService.ExportFriendWishlist(callerID(c), friendID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, wishlist)
}
