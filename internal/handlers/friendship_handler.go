package handlers

import (
	"net/http"

	"github.com/avelines/giftwell/backend/internal/models"
	"github.com/avelines/giftwell/backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to the friend graph
type FriendshipHandler struct {
	friendsService *services.FriendsService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendsService *services.FriendsService) *FriendshipHandler {
	return &FriendshipHandler{friendsService: friendsService}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/requests", h.SendFriendRequest)
	g.GET("/friends/requests", h.GetRequests)
	g.PUT("/friends/requests/:id", h.RespondToRequest)
	g.DELETE("/friends/requests/:id", h.CancelRequest)
	g.GET("/friends", h.GetFriends)
	g.GET("/friends/:name", h.ResolveFriend)
}

// SendFriendRequest handles sending a friend request by receiver name
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	var req models.CreateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.friendsService.CreateRequest(callerID(c), req.Name); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusCreated)
}

// GetRequests retrieves the caller's pending requests, sent and received
func (h *FriendshipHandler) GetRequests(c echo.Context) error {
	requests, err := h.friendsService.ListRequests(callerID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// RespondToRequest accepts or declines a pending friend request
func (h *FriendshipHandler) RespondToRequest(c echo.Context) error {
	requestID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.RespondFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.friendsService.Respond(requestID, callerID(c), req.Status); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

// CancelRequest deletes a pending request sent by the caller
func (h *FriendshipHandler) CancelRequest(c echo.Context) error {
	requestID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.friendsService.Cancel(requestID, callerID(c)); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFriends retrieves the list of friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	friends, err := h.friendsService.ListFriends(callerID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string][]models.UserSummary{"friends": friends})
}

// ResolveFriend resolves a friend's name to their user id
func (h *FriendshipHandler) ResolveFriend(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid name")
	}

	id, err := h.friendsService.ResolveFriendID(callerID(c), name)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]uint{"id": id})
}
