package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/model"
	"github.com/iliyamo/hotel-pms/internal/repository"
)

// GuestHandler covers the guest registry.
type GuestHandler struct {
	Guests *repository.GuestRepo
}

// NewGuestHandler constructs a GuestHandler.
func NewGuestHandler(g *repository.GuestRepo) *GuestHandler {
	return &GuestHandler{Guests: g}
}

type guestReq struct {
	FullName string  `json:"full_name"`
	Document string  `json:"document"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

func (r *guestReq) normalize() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Document = strings.TrimSpace(r.Document)
	if r.FullName == "" || r.Document == "" {
		return errRequired
	}
	if r.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*r.Email))
		if e == "" {
			r.Email = nil
		} else {
			r.Email = &e
		}
	}
	if r.Phone != nil {
		p := strings.TrimSpace(*r.Phone)
		if p == "" {
			r.Phone = nil
		} else {
			r.Phone = &p
		}
	}
	return nil
}

// Create handles POST /v1/guests.
func (h *GuestHandler) Create(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.normalize(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and document required"})
	}
	g := &model.Guest{HotelID: hotelID, FullName: req.FullName, Document: req.Document, Email: req.Email, Phone: req.Phone}
	id, err := h.Guests.Create(c.Request().Context(), g)
	if err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"error": "guest document already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create guest failed"})
	}
	g.ID = id
	return c.JSON(http.StatusCreated, g)
}

// List handles GET /v1/guests with optional ?q search over name,
// document and email, plus pagination.
func (h *GuestHandler) List(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	page, limit := parsePagination(c)
	items, err := h.Guests.List(c.Request().Context(), hotelID, c.QueryParam("q"), page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list guests failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "page": page, "limit": limit})
}

// Get handles GET /v1/guests/:id.
func (h *GuestHandler) Get(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	guestID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	g, err := h.Guests.GetByID(c.Request().Context(), hotelID, guestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, g)
}

// Update handles PUT /v1/guests/:id.
func (h *GuestHandler) Update(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	guestID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.normalize(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and document required"})
	}
	g := &model.Guest{ID: guestID, HotelID: hotelID, FullName: req.FullName, Document: req.Document, Email: req.Email, Phone: req.Phone}
	if err := h.Guests.Update(c.Request().Context(), g); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		case repository.ErrDuplicate:
			return c.JSON(http.StatusConflict, echo.Map{"error": "guest document already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update guest failed"})
	}
	updated, err := h.Guests.GetByID(c.Request().Context(), hotelID, guestID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load guest failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/guests/:id.  Guests referenced by
// reservations cannot be removed.
func (h *GuestHandler) Delete(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	guestID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Guests.Delete(c.Request().Context(), hotelID, guestID); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "guest has reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete guest failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
