package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/repository"
)

// RequireModule gates a route group behind a plan module key (e.g.
// "pos" for point-of-sale endpoints).  Hotels whose plan does not
// include the module receive 403.  TenantScope must run first so the
// hotel ID is in the context.
func RequireModule(hotels *repository.HotelRepo, module string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hotelID, ok := c.Get("hotel_id").(uint64)
			if !ok || hotelID == 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
			}
			enabled, err := hotels.HasModule(c.Request().Context(), hotelID, module)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "module check failed"})
			}
			if !enabled {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "module not enabled for this plan", "module": module})
			}
			return next(c)
		}
	}
}
