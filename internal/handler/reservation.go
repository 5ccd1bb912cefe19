package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/model"
	"github.com/iliyamo/hotel-pms/internal/repository"
)

// ReservationHandler covers reservation creation, listing, lookup and
// the booking-side lifecycle (confirm, cancel).  Check-in and
// check-out live on the front-desk handler because they also touch
// room housekeeping state.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Guests       *repository.GuestRepo
	Rooms        *repository.RoomRepo
	RoomTypes    *repository.RoomTypeRepo
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(res *repository.ReservationRepo, g *repository.GuestRepo, rm *repository.RoomRepo, rt *repository.RoomTypeRepo) *ReservationHandler {
	return &ReservationHandler{Reservations: res, Guests: g, Rooms: rm, RoomTypes: rt}
}

type createReservationReq struct {
	GuestID    uint64 `json:"guest_id"`
	RoomID     uint64 `json:"room_id"`
	CheckIn    string `json:"check_in"`  // YYYY-MM-DD
	CheckOut   string `json:"check_out"` // YYYY-MM-DD
	Adults     uint32 `json:"adults"`
	Children   uint32 `json:"children"`
	TotalCents uint32 `json:"total_cents"` // 0 means price from the room type
}

// Create handles POST /v1/reservations.  The stay window is the
// half-open range [check_in, check_out); when total_cents is zero the
// price is computed as nights times the room type's nightly rate.  A
// room with an overlapping active reservation yields 409.
func (h *ReservationHandler) Create(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.GuestID == 0 || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_id and room_id required"})
	}
	if !isISODate(req.CheckIn) || !isISODate(req.CheckOut) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in/check_out must be YYYY-MM-DD"})
	}
	nights := nightsBetween(req.CheckIn, req.CheckOut)
	if nights == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}
	if req.Adults == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one adult required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Guests.GetByID(ctx, hotelID, req.GuestID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	room, err := h.Rooms.GetByID(ctx, hotelID, req.RoomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	total := req.TotalCents
	if total == 0 {
		rt, err := h.RoomTypes.GetByID(ctx, hotelID, room.RoomTypeID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room type failed"})
		}
		total = rt.NightlyCents * nights
	}

	res := &model.Reservation{
		HotelID:    hotelID,
		GuestID:    req.GuestID,
		RoomID:     req.RoomID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Nights:     nights,
		Adults:     req.Adults,
		Children:   req.Children,
		TotalCents: total,
	}
	if err := h.Reservations.Create(ctx, res); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room not available for those dates"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	return c.JSON(http.StatusCreated, res)
}

// List handles GET /v1/reservations with optional ?status filter and
// pagination.
func (h *ReservationHandler) List(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !model.KnownReservationStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	page, limit := parsePagination(c)

	items, err := h.Reservations.List(c.Request().Context(), hotelID, status, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "page": page, "limit": limit})
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	resID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), hotelID, resID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, res)
}

// GetByCode handles GET /v1/reservations/code/:code, the lookup the
// front desk uses when a guest shows a reservation code.
func (h *ReservationHandler) GetByCode(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}
	res, err := h.Reservations.GetByCode(c.Request().Context(), hotelID, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, res)
}

// Confirm handles POST /v1/reservations/:id/confirm.  Only PENDING
// reservations can be confirmed.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	resID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if err := h.Reservations.Confirm(ctx, hotelID, resID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, model.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm failed"})
	}
	res, err := h.Reservations.GetByID(ctx, hotelID, resID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	return c.JSON(http.StatusOK, res)
}

// Cancel handles POST /v1/reservations/:id/cancel.  Cancellation is
// valid only before check-in; the record is kept for history.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	resID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Reservations.CancelTx(ctx, tx, hotelID, resID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, model.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	res, err := h.Reservations.GetByID(ctx, hotelID, resID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	return c.JSON(http.StatusOK, res)
}

// Availability handles GET /v1/reservations/availability with
// ?room_id, ?check_in and ?check_out query parameters.
func (h *ReservationHandler) Availability(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	roomID, err := parseQueryID(c, "room_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required"})
	}
	checkIn := c.QueryParam("check_in")
	checkOut := c.QueryParam("check_out")
	if !isISODate(checkIn) || !isISODate(checkOut) || nightsBetween(checkIn, checkOut) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid check_in/check_out required"})
	}

	free, err := h.Reservations.CheckAvailability(c.Request().Context(), hotelID, roomID, checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room_id":   roomID,
		"check_in":  checkIn,
		"check_out": checkOut,
		"available": free,
	})
}
