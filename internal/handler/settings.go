package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/repository"
)

// SettingsHandler exposes the current hotel's profile and the modules
// its plan enables.
type SettingsHandler struct {
	Hotels *repository.HotelRepo
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(h *repository.HotelRepo) *SettingsHandler {
	return &SettingsHandler{Hotels: h}
}

// GetHotel handles GET /v1/settings/hotel, returning the property's
// profile (name, timezone, currency, plan) plus the enabled modules.
func (h *SettingsHandler) GetHotel(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	ctx := c.Request().Context()
	hotel, err := h.Hotels.GetByID(ctx, hotelID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	modules, err := h.Hotels.Modules(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load modules failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hotel": hotel, "modules": modules})
}
