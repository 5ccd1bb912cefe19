package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/model"
	"github.com/iliyamo/hotel-pms/internal/repository"
)

// SaleHandler covers the point-of-sale module: tickets for bar,
// restaurant or shop charges, independent of reservations.  Routes are
// gated behind the "pos" plan module.
type SaleHandler struct {
	Sales  *repository.SaleRepo
	Guests *repository.GuestRepo
}

// NewSaleHandler constructs a SaleHandler.
func NewSaleHandler(s *repository.SaleRepo, g *repository.GuestRepo) *SaleHandler {
	return &SaleHandler{Sales: s, Guests: g}
}

type saleItemReq struct {
	Description    string `json:"description"`
	Quantity       uint32 `json:"quantity"`
	UnitPriceCents uint32 `json:"unit_price_cents"`
}

type createSaleReq struct {
	GuestID  *uint64       `json:"guest_id"` // optional room-charge guest
	TaxCents uint32        `json:"tax_cents"`
	Items    []saleItemReq `json:"items"`
}

// Create handles POST /v1/pos/sales.  Line amounts and totals are
// computed server-side; the ticket starts PENDING.
func (h *SaleHandler) Create(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	var req createSaleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one item required"})
	}

	ctx := c.Request().Context()
	if req.GuestID != nil {
		if _, err := h.Guests.GetByID(ctx, hotelID, *req.GuestID); err != nil {
			if err == sql.ErrNoRows {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}

	var subtotal uint32
	items := make([]model.SaleItem, 0, len(req.Items))
	for _, it := range req.Items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" || it.Quantity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item description and quantity required"})
		}
		amount := it.Quantity * it.UnitPriceCents
		subtotal += amount
		items = append(items, model.SaleItem{
			Description:    desc,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			AmountCents:    amount,
		})
	}

	sale := &model.Sale{
		HotelID:       hotelID,
		GuestID:       req.GuestID,
		Status:        model.SalePending,
		SubtotalCents: subtotal,
		TaxCents:      req.TaxCents,
		TotalCents:    subtotal + req.TaxCents,
		Items:         items,
	}
	if err := h.Sales.Create(ctx, sale); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create sale failed"})
	}
	return c.JSON(http.StatusCreated, sale)
}

// List handles GET /v1/pos/sales with optional ?status filter.
func (h *SaleHandler) List(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && status != model.SalePending && status != model.SalePaid && status != model.SaleCancelled {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	page, limit := parsePagination(c)
	items, err := h.Sales.List(c.Request().Context(), hotelID, status, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list sales failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "page": page, "limit": limit})
}

// Get handles GET /v1/pos/sales/:id with items loaded.
func (h *SaleHandler) Get(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	saleID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	sale, err := h.Sales.GetByID(c.Request().Context(), hotelID, saleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, sale)
}

// UpdateStatus handles PATCH /v1/pos/sales/:id/status.  A PENDING
// ticket can move to PAID or CANCELLED; both are final.
func (h *SaleHandler) UpdateStatus(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	saleID, err := parseID(c, "id")
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
	if status != model.SalePaid && status != model.SaleCancelled {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be PAID or CANCELLED"})
	}
	if err := h.Sales.UpdateStatus(c.Request().Context(), hotelID, saleID, status); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "sale is already final"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	sale, err := h.Sales.GetByID(c.Request().Context(), hotelID, saleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load sale failed"})
	}
	return c.JSON(http.StatusOK, sale)
}
