// Package handler contains the HTTP handlers for interest zone management.
package handler

import (
	"log/slog"
	"net/http"

	"geosynth/internal/delivery/http/response"
	"geosynth/internal/usecase"
	"geosynth/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// HeaderXUserID carries the authenticated user identity, set by the
// upstream gateway.
const HeaderXUserID = "X-User-Id"

// ZoneHandlerParams holds dependencies for ZoneHandler, injected by Fx.
type ZoneHandlerParams struct {
	fx.In

	ZoneUC usecase.ZoneUsecase
	Logger *slog.Logger
}

// ZoneHandler holds dependencies for interest zone handlers
type ZoneHandler struct {
	zoneUC usecase.ZoneUsecase
	logger *slog.Logger
}

// NewZoneHandler is the constructor for ZoneHandler
func NewZoneHandler(params ZoneHandlerParams) *ZoneHandler {
	return &ZoneHandler{
		zoneUC: params.ZoneUC,
		logger: params.Logger,
	}
}

// CreateZoneRequest represents the request body for creating an interest zone
type CreateZoneRequest struct {
	Latitude     float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"required,min=-180,max=180"`
	RadiusMeters float64 `json:"radius_meters" validate:"required,gt=0"`
}

// UpdateZoneRequest represents the request body for updating an interest zone
type UpdateZoneRequest struct {
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	RadiusMeters *float64 `json:"radius_meters,omitempty" validate:"omitempty,gt=0"`
}

// CreateZone handles creating a new interest zone
func (h *ZoneHandler) CreateZone(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req CreateZoneRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid zone input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.CreateZoneInput{
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	}

	zone, err := h.zoneUC.CreateZone(c.Request().Context(), userID, input)
	if err != nil {
		return h.handleZoneError(c, err)
	}

	return response.Success(c, http.StatusCreated, zone, "Interest zone created successfully")
}

// GetZones handles retrieving all zones of the requesting user
func (h *ZoneHandler) GetZones(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	zones, err := h.zoneUC.GetUserZones(c.Request().Context(), userID)
	if err != nil {
		return h.handleZoneError(c, err)
	}

	return response.Success(c, http.StatusOK, zones, "Interest zones retrieved successfully")
}

// UpdateZone handles updating an interest zone
func (h *ZoneHandler) UpdateZone(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid zone ID")
	}

	var req UpdateZoneRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid zone input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.UpdateZoneInput{
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	}

	zone, err := h.zoneUC.UpdateZone(c.Request().Context(), userID, zoneID, input)
	if err != nil {
		return h.handleZoneError(c, err)
	}

	return response.Success(c, http.StatusOK, zone, "Interest zone updated successfully")
}

// DeleteZone handles deleting an interest zone
func (h *ZoneHandler) DeleteZone(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid zone ID")
	}

	if err := h.zoneUC.DeleteZone(c.Request().Context(), userID, zoneID); err != nil {
		return h.handleZoneError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Zone deleted successfully"}, "Interest zone deleted successfully")
}

// getUserID extracts the user identity from the gateway header
func (h *ZoneHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	header := c.Request().Header.Get(HeaderXUserID)
	if header == "" {
		return uuid.Nil, response.Unauthorized(c, "MISSING_IDENTITY", "Missing user identity header")
	}

	userID, err := uuid.Parse(header)
	if err != nil {
		return uuid.Nil, response.Unauthorized(c, "INVALID_IDENTITY", "Invalid user identity header")
	}

	return userID, nil
}

// handleZoneError maps usecase errors to HTTP responses
func (h *ZoneHandler) handleZoneError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, impl.ErrZoneNotFound):
		return response.NotFound(c, "ZONE_NOT_FOUND", "Interest zone not found")
	case errors.Is(err, impl.ErrUnauthorized):
		return response.Forbidden(c, "FORBIDDEN", "Zone belongs to another user")
	default:
		h.logger.Error("zone operation failed",
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		)

		return response.InternalServerError(c, "INTERNAL_ERROR", "Unexpected error")
	}
}
