package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/model"
	"github.com/iliyamo/hotel-pms/internal/repository"
)

// RoomHandler covers room type administration, the room inventory and
// the housekeeping status endpoint.
type RoomHandler struct {
	Rooms     *repository.RoomRepo
	RoomTypes *repository.RoomTypeRepo
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms *repository.RoomRepo, types *repository.RoomTypeRepo) *RoomHandler {
	return &RoomHandler{Rooms: rooms, RoomTypes: types}
}

// ----- room types -----

type roomTypeReq struct {
	Name         string `json:"name"`
	Capacity     uint32 `json:"capacity"`
	NightlyCents uint32 `json:"nightly_cents"`
}

// CreateRoomType handles POST /v1/room-types.
func (h *RoomHandler) CreateRoomType(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and capacity required"})
	}
	rt := &model.RoomType{HotelID: hotelID, Name: req.Name, Capacity: req.Capacity, NightlyCents: req.NightlyCents}
	id, err := h.RoomTypes.Create(c.Request().Context(), rt)
	if err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room type name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room type failed"})
	}
	rt.ID = id
	return c.JSON(http.StatusCreated, rt)
}

// ListRoomTypes handles GET /v1/room-types.
func (h *RoomHandler) ListRoomTypes(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	items, err := h.RoomTypes.List(c.Request().Context(), hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list room types failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateRoomType handles PUT /v1/room-types/:id.
func (h *RoomHandler) UpdateRoomType(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	typeID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and capacity required"})
	}
	rt := &model.RoomType{ID: typeID, HotelID: hotelID, Name: req.Name, Capacity: req.Capacity, NightlyCents: req.NightlyCents}
	if err := h.RoomTypes.Update(c.Request().Context(), rt); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		case repository.ErrDuplicate:
			return c.JSON(http.StatusConflict, echo.Map{"error": "room type name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room type failed"})
	}
	return c.JSON(http.StatusOK, rt)
}

// DeleteRoomType handles DELETE /v1/room-types/:id.  Types with rooms
// attached cannot be removed.
func (h *RoomHandler) DeleteRoomType(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	typeID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.RoomTypes.Delete(c.Request().Context(), hotelID, typeID); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "room type has rooms attached"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room type failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- rooms -----

type roomReq struct {
	RoomTypeID uint64 `json:"room_type_id"`
	Number     string `json:"number"`
	Floor      int32  `json:"floor"`
}

// CreateRoom handles POST /v1/rooms.
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Number = strings.TrimSpace(req.Number)
	if req.Number == "" || req.RoomTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number and room_type_id required"})
	}
	ctx := c.Request().Context()
	if _, err := h.RoomTypes.GetByID(ctx, hotelID, req.RoomTypeID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rm := &model.Room{HotelID: hotelID, RoomTypeID: req.RoomTypeID, Number: req.Number, Floor: req.Floor, Status: model.RoomAvailable}
	id, err := h.Rooms.Create(ctx, rm)
	if err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	rm.ID = id
	return c.JSON(http.StatusCreated, rm)
}

// ListRooms handles GET /v1/rooms with an optional ?status filter,
// which is how housekeeping pulls its CLEANING worklist.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !knownRoomStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	items, err := h.Rooms.List(c.Request().Context(), hotelID, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetRoom handles GET /v1/rooms/:id.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	roomID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rm, err := h.Rooms.GetByID(c.Request().Context(), hotelID, roomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rm)
}

// UpdateRoom handles PUT /v1/rooms/:id for the static fields.
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	roomID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Number = strings.TrimSpace(req.Number)
	if req.Number == "" || req.RoomTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number and room_type_id required"})
	}
	rm := &model.Room{ID: roomID, HotelID: hotelID, RoomTypeID: req.RoomTypeID, Number: req.Number, Floor: req.Floor}
	if err := h.Rooms.Update(c.Request().Context(), rm); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case repository.ErrDuplicate:
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	updated, err := h.Rooms.GetByID(c.Request().Context(), hotelID, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdateRoomStatus handles PATCH /v1/rooms/:id/status, the
// housekeeping endpoint (e.g. CLEANING -> AVAILABLE once a room is
// serviced, or AVAILABLE -> MAINTENANCE to take it offline).
func (h *RoomHandler) UpdateRoomStatus(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	roomID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !knownRoomStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	if err := h.Rooms.UpdateStatus(c.Request().Context(), hotelID, roomID, status); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": roomID, "status": status})
}

// DeleteRoom handles DELETE /v1/rooms/:id.  Rooms referenced by
// reservations cannot be removed.
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	roomID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), hotelID, roomID); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func knownRoomStatus(s string) bool {
	switch s {
	case model.RoomAvailable, model.RoomOccupied, model.RoomCleaning, model.RoomMaintenance:
		return true
	}
	return false
}
