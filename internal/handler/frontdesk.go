package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/desk"
	"github.com/iliyamo/hotel-pms/internal/model"
	"github.com/iliyamo/hotel-pms/internal/repository"
)

// FrontDeskHandler serves the daily dashboard and the check-in /
// check-out transitions.
type FrontDeskHandler struct {
	Hotels       *repository.HotelRepo
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo
	Invoices     *repository.InvoiceRepo
}

// NewFrontDeskHandler constructs a FrontDeskHandler.
func NewFrontDeskHandler(hotels *repository.HotelRepo, res *repository.ReservationRepo, rooms *repository.RoomRepo, inv *repository.InvoiceRepo) *FrontDeskHandler {
	return &FrontDeskHandler{Hotels: hotels, Reservations: res, Rooms: rooms, Invoices: inv}
}

// dashboardEntry pairs a reservation with the payment status of its
// linked invoice.
type dashboardEntry struct {
	Reservation   model.Reservation  `json:"reservation"`
	PaymentStatus desk.PaymentStatus `json:"payment_status"`
}

// Dashboard handles GET /v1/frontdesk/dashboard.  It returns today's
// arrivals (PENDING/CONFIRMED reservations checking in today) and
// departures (CHECKED_IN reservations checking out today), each capped
// at the display limit and annotated with the invoice payment status.
// "Today" is computed in the hotel's timezone; an explicit ?date
// overrides it.
func (h *FrontDeskHandler) Dashboard(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}

	date := c.QueryParam("date")
	if date == "" {
		date, err = todayForHotel(c, h.Hotels, hotelID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve hotel date failed"})
		}
	} else if !isISODate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	arrivals, err := h.Reservations.ArrivalsOn(ctx, hotelID, date, desk.DisplayLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load arrivals failed"})
	}
	departures, err := h.Reservations.DeparturesOn(ctx, hotelID, date, desk.DisplayLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load departures failed"})
	}

	arrivalEntries, err := h.annotate(c, hotelID, arrivals)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load invoices failed"})
	}
	departureEntries, err := h.annotate(c, hotelID, departures)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load invoices failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":       date,
		"arrivals":   arrivalEntries,
		"departures": departureEntries,
	})
}

func (h *FrontDeskHandler) annotate(c echo.Context, hotelID uint64, reservations []model.Reservation) ([]dashboardEntry, error) {
	out := make([]dashboardEntry, 0, len(reservations))
	for _, r := range reservations {
		status, err := h.paymentStatus(c, hotelID, r.Code)
		if err != nil {
			return nil, err
		}
		out = append(out, dashboardEntry{Reservation: r, PaymentStatus: status})
	}
	return out, nil
}

func (h *FrontDeskHandler) paymentStatus(c echo.Context, hotelID uint64, code string) (desk.PaymentStatus, error) {
	inv, err := h.Invoices.GetByReservationCode(c.Request().Context(), hotelID, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return desk.NoInvoice, nil
		}
		return "", err
	}
	if inv.BalanceCents > 0 {
		return desk.PaymentPending, nil
	}
	return desk.PaymentComplete, nil
}

// CheckIn handles POST /v1/frontdesk/checkin/:id.  The reservation
// transitions to CHECKED_IN and its room is marked OCCUPIED in the
// same transaction.  Only PENDING or CONFIRMED reservations can check
// in; anything else is a 409.
func (h *FrontDeskHandler) CheckIn(c echo.Context) error {
	return h.transition(c, model.ReservationCheckedIn)
}

// CheckOut handles POST /v1/frontdesk/checkout/:id.  The reservation
// transitions to CHECKED_OUT and its room is marked CLEANING for
// housekeeping.  Only CHECKED_IN reservations can check out.
func (h *FrontDeskHandler) CheckOut(c echo.Context) error {
	return h.transition(c, model.ReservationCheckedOut)
}

func (h *FrontDeskHandler) transition(c echo.Context, target string) error {
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

	var roomID uint64
	var roomStatus string
	switch target {
	case model.ReservationCheckedIn:
		roomID, err = h.Reservations.CompleteCheckInTx(ctx, tx, hotelID, resID)
		roomStatus = model.RoomOccupied
	case model.ReservationCheckedOut:
		roomID, err = h.Reservations.CompleteCheckOutTx(ctx, tx, hotelID, resID)
		roomStatus = model.RoomCleaning
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, model.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transition failed"})
	}

	if err := h.Rooms.SetStatusTx(ctx, tx, hotelID, roomID, roomStatus); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	updated, err := h.Reservations.GetByID(ctx, hotelID, resID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	return c.JSON(http.StatusOK, updated)
}
