package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestNightsBetween(t *testing.T) {
	assert.Equal(t, uint32(1), nightsBetween("2026-03-10", "2026-03-11"))
	assert.Equal(t, uint32(3), nightsBetween("2026-03-10", "2026-03-13"))
	// Month and year boundaries.
	assert.Equal(t, uint32(2), nightsBetween("2026-01-31", "2026-02-02"))
	assert.Equal(t, uint32(1), nightsBetween("2025-12-31", "2026-01-01"))
	// Zero or inverted windows have no nights.
	assert.Equal(t, uint32(0), nightsBetween("2026-03-10", "2026-03-10"))
	assert.Equal(t, uint32(0), nightsBetween("2026-03-11", "2026-03-10"))
}

func TestIsISODate(t *testing.T) {
	assert.True(t, isISODate("2026-08-30"))
	assert.False(t, isISODate("2026-8-30"))
	assert.False(t, isISODate("30-08-2026"))
	assert.False(t, isISODate("2026-02-30"))
	assert.False(t, isISODate(""))
}

func TestParsePagination(t *testing.T) {
	page, limit := parsePagination(testContext("/v1/guests"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = parsePagination(testContext("/v1/guests?page=3&limit=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)

	// Out-of-range values clamp to the defaults and the cap.
	page, limit = parsePagination(testContext("/v1/guests?page=-1&limit=1000"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)
}

func TestGetHotelID(t *testing.T) {
	c := testContext("/")
	_, err := getHotelID(c)
	assert.Error(t, err)

	c.Set("hotel_id", uint64(42))
	id, err := getHotelID(c)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestGetUserIDTypes(t *testing.T) {
	c := testContext("/")
	_, err := getUserID(c)
	assert.Error(t, err)

	// JWT claims arrive as float64; other layers may store uint64.
	c.Set("user_id", float64(9))
	id, err := getUserID(c)
	assert.NoError(t, err)
	assert.Equal(t, uint64(9), id)

	c.Set("user_id", uint64(11))
	id, err = getUserID(c)
	assert.NoError(t, err)
	assert.Equal(t, uint64(11), id)
}
