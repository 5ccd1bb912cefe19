package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/repository"
)

// HotelHeader is the multi-tenant header every protected request must
// carry.  Its value selects the property the request operates on.
const HotelHeader = "X-Hotel-Id"

// TenantScope returns a middleware that resolves the X-Hotel-Id header
// and verifies that the authenticated user is an active member of that
// hotel.  On success the hotel ID is stored in the context under
// "hotel_id"; handlers scope every query with it.  A missing header is
// a 400, a non-member a 403.  JWTAuth must run first so the user ID is
// available.
func TenantScope(hotels *repository.HotelRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HotelHeader)
			if raw == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing " + HotelHeader + " header"})
			}
			hotelID, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || hotelID == 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + HotelHeader + " header"})
			}

			userID, err := userIDFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			member, err := hotels.IsMember(c.Request().Context(), hotelID, userID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "membership check failed"})
			}
			if !member {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "not a member of this hotel"})
			}

			c.Set("hotel_id", hotelID)
			return next(c)
		}
	}
}

// userIDFromContext converts the JWT "sub" claim stored by JWTAuth
// into a uint64.  Numeric JWT claims decode as float64.
func userIDFromContext(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case uint64:
		return v, nil
	case float64:
		return uint64(v), nil
	case int64:
		return uint64(v), nil
	case string:
		return strconv.ParseUint(v, 10, 64)
	}
	return 0, echo.ErrUnauthorized
}
