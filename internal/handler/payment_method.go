package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/model"
	"github.com/iliyamo/hotel-pms/internal/repository"
)

// PaymentMethodHandler administers the payment channels a hotel
// accepts.  Methods are deactivated rather than deleted so historical
// payments keep a valid reference.
type PaymentMethodHandler struct {
	Methods *repository.PaymentMethodRepo
}

// NewPaymentMethodHandler constructs a PaymentMethodHandler.
func NewPaymentMethodHandler(m *repository.PaymentMethodRepo) *PaymentMethodHandler {
	return &PaymentMethodHandler{Methods: m}
}

// Create handles POST /v1/payment-methods.  New methods start ACTIVE.
func (h *PaymentMethodHandler) Create(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	m := &model.PaymentMethod{HotelID: hotelID, Name: name, Status: model.PaymentMethodActive}
	id, err := h.Methods.Create(c.Request().Context(), m)
	if err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"error": "payment method already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create method failed"})
	}
	m.ID = id
	return c.JSON(http.StatusCreated, m)
}

// List handles GET /v1/payment-methods.
func (h *PaymentMethodHandler) List(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	items, err := h.Methods.List(c.Request().Context(), hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list methods failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateStatus handles PATCH /v1/payment-methods/:id/status, flipping
// a method between ACTIVE and INACTIVE.
func (h *PaymentMethodHandler) UpdateStatus(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	methodID, err := parseID(c, "id")
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
	if status != model.PaymentMethodActive && status != model.PaymentMethodInactive {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be ACTIVE or INACTIVE"})
	}
	if err := h.Methods.UpdateStatus(c.Request().Context(), hotelID, methodID, status); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment method not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": methodID, "status": status})
}
