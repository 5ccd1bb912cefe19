package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/desk"
	"github.com/iliyamo/hotel-pms/internal/repository"
)

// errRequired marks a request body missing mandatory fields.
var errRequired = errors.New("required field missing")

// getUserID extracts the user ID placed in the context by the JWT
// middleware.  Numeric JWT claims decode as float64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getHotelID extracts the hotel ID placed in the context by the tenant
// middleware.  Every handler scopes its queries with this value.
func getHotelID(c echo.Context) (uint64, error) {
	if v, ok := c.Get("hotel_id").(uint64); ok && v > 0 {
		return v, nil
	}
	return 0, errors.New("missing hotel_id in context")
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseQueryID parses a numeric query parameter.
func parseQueryID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.QueryParam(name), 10, 64)
}

// parsePagination reads ?page and ?limit with sane bounds.
func parsePagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// isISODate reports whether s parses as an ISO YYYY-MM-DD date.
func isISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// nightsBetween returns the number of nights in the half-open window
// [checkIn, checkOut).  Both arguments must already be validated ISO
// dates with checkOut after checkIn.
func nightsBetween(checkIn, checkOut string) uint32 {
	in, _ := time.Parse("2006-01-02", checkIn)
	out, _ := time.Parse("2006-01-02", checkOut)
	d := out.Sub(in)
	if d <= 0 {
		return 0
	}
	return uint32(d.Hours() / 24)
}

// todayForHotel resolves the hotel's timezone and returns the current
// date there.  Front-desk "today" flips at the property's midnight,
// not the server's.
func todayForHotel(c echo.Context, hotels *repository.HotelRepo, hotelID uint64) (string, error) {
	loc, err := hotels.Location(c.Request().Context(), hotelID)
	if err != nil {
		return "", err
	}
	return desk.Today(time.Now(), loc), nil
}
