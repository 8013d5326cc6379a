package handlers

import (
	"errors"
	"net/http"

	"github.com/avelines/giftwell/backend/internal/apperrors"
	"github.com/avelines/giftwell/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// callerID extracts the authenticated user id stored by the JWT middleware
func callerID(c echo.Context) uint {
	claims := c.Get("user").(*models.JwtCustomClaims)
	return claims.UserID
}

// toHTTPError translates the domain error taxonomy into HTTP statuses.
// Storage failures stay opaque: they were already logged below.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrSelfRequest),
		errors.Is(err, apperrors.ErrAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// pathID parses a positive integer path parameter
func pathID(c echo.Context, name string) (uint, error) {
	var id uint
	if err := echo.PathParamsBinder(c).Uint(name, &id).BindError(); err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
