package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-pms/internal/billing"
	"github.com/iliyamo/hotel-pms/internal/desk"
	"github.com/iliyamo/hotel-pms/internal/model"
	"github.com/iliyamo/hotel-pms/internal/queue"
	"github.com/iliyamo/hotel-pms/internal/repository"
	queue_publisher "github.com/iliyamo/hotel-pms/internal/service"
)

// InvoiceHandler covers invoice creation, lookup, the date-range list,
// and the payment recorder.  Recording a payment is the one operation
// that must be atomic across two tables (the payment insert and the
// invoice balance/status update); the handler owns that transaction
// and delegates the business rules to the billing package.
type InvoiceHandler struct {
	Hotels       *repository.HotelRepo
	Invoices     *repository.InvoiceRepo
	Methods      *repository.PaymentMethodRepo
	Reservations *repository.ReservationRepo
}

// NewInvoiceHandler constructs an InvoiceHandler.
func NewInvoiceHandler(hotels *repository.HotelRepo, inv *repository.InvoiceRepo, m *repository.PaymentMethodRepo, res *repository.ReservationRepo) *InvoiceHandler {
	return &InvoiceHandler{Hotels: hotels, Invoices: inv, Methods: m, Reservations: res}
}

type invoiceItemReq struct {
	Description    string `json:"description"`
	Quantity       uint32 `json:"quantity"`
	UnitPriceCents uint32 `json:"unit_price_cents"`
}

type createInvoiceReq struct {
	ReservationCode string           `json:"reservation_code"` // optional link to a stay
	GuestID         *uint64          `json:"guest_id"`
	IssuedAt        string           `json:"issued_at"` // YYYY-MM-DD, defaults to today
	TaxCents        uint32           `json:"tax_cents"`
	Items           []invoiceItemReq `json:"items"`
}

// Create handles POST /v1/invoices.  Line amounts, subtotal and total
// are computed server-side from the items; the opening balance equals
// the total.  At most one invoice may reference a reservation code.
func (h *InvoiceHandler) Create(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	var req createInvoiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one item required"})
	}

	ctx := c.Request().Context()

	issuedAt := strings.TrimSpace(req.IssuedAt)
	if issuedAt == "" {
		issuedAt, err = todayForHotel(c, h.Hotels, hotelID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve hotel date failed"})
		}
	} else if !isISODate(issuedAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issued_at must be YYYY-MM-DD"})
	}

	var resCode *string
	if code := strings.ToUpper(strings.TrimSpace(req.ReservationCode)); code != "" {
		if _, err := h.Reservations.GetByCode(ctx, hotelID, code); err != nil {
			if err == sql.ErrNoRows {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		resCode = &code
	}

	var subtotal uint32
	items := make([]model.InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" || it.Quantity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item description and quantity required"})
		}
		amount := it.Quantity * it.UnitPriceCents
		subtotal += amount
		items = append(items, model.InvoiceItem{
			Description:    desc,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			AmountCents:    amount,
		})
	}

	inv := &model.Invoice{
		HotelID:         hotelID,
		ReservationCode: resCode,
		GuestID:         req.GuestID,
		SubtotalCents:   subtotal,
		TaxCents:        req.TaxCents,
		TotalCents:      subtotal + req.TaxCents,
		IssuedAt:        issuedAt,
		Items:           items,
	}
	if err := h.Invoices.Create(ctx, inv); err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already has an invoice"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create invoice failed"})
	}
	return c.JSON(http.StatusCreated, inv)
}

// Get handles GET /v1/invoices/:id with items and payments loaded.
func (h *InvoiceHandler) Get(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	invID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	inv, err := h.Invoices.GetByID(c.Request().Context(), hotelID, invID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, inv)
}

// List handles GET /v1/invoices?from=YYYY-MM-DD&to=YYYY-MM-DD with
// pagination.  Both range bounds are required and inclusive.
func (h *InvoiceHandler) List(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if !isISODate(from) || !isISODate(to) || to < from {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid from/to range required"})
	}
	page, limit := parsePagination(c)

	items, err := h.Invoices.ListByDateRange(c.Request().Context(), hotelID, from, to, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list invoices failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "page": page, "limit": limit})
}

type recordPaymentReq struct {
	MethodID    uint64  `json:"method_id"`
	AmountCents uint32  `json:"amount_cents"`
	PaidAt      string  `json:"paid_at"` // YYYY-MM-DD, defaults to today
	Reference   *string `json:"reference"`
	Notes       *string `json:"notes"`
}

// RecordPayment handles POST /v1/invoices/:id/payments.  The invoice
// row is locked, the billing rules validate the method, amount and
// balance, and the payment insert plus balance/status update commit as
// one transaction.  Any rule violation rejects the whole payment with
// 422 and no partial state.  When the balance reaches exactly zero the
// invoice flips to PAID.
func (h *InvoiceHandler) RecordPayment(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	invID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	paidAt := strings.TrimSpace(req.PaidAt)
	if paidAt == "" {
		paidAt, err = todayForHotel(c, h.Hotels, hotelID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve hotel date failed"})
		}
	} else if !isISODate(paidAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "paid_at must be YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	tx, err := h.Invoices.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	inv, err := h.Invoices.GetForUpdateTx(ctx, tx, hotelID, invID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lock invoice failed"})
	}

	// A missing method behaves exactly like an inactive one.
	method, err := h.Methods.GetByIDTx(ctx, tx, hotelID, req.MethodID)
	if err != nil && err != sql.ErrNoRows {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load method failed"})
	}

	payment, err := billing.Apply(inv, method, billing.PaymentRequest{
		AmountCents: req.AmountCents,
		MethodID:    req.MethodID,
		PaidAt:      paidAt,
		Reference:   req.Reference,
		Notes:       req.Notes,
	})
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	if err := h.Invoices.AddPaymentTx(ctx, tx, inv, &payment); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "concurrent payment, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record payment failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	h.publishPaymentRecorded(inv, method, payment)

	return c.JSON(http.StatusCreated, echo.Map{
		"payment":        payment,
		"invoice_status": inv.Status,
		"balance_cents":  inv.BalanceCents,
	})
}

// publishPaymentRecorded emits the broker event after commit.  Publish
// failures are logged only; the payment is already durable.
func (h *InvoiceHandler) publishPaymentRecorded(inv *model.Invoice, method *model.PaymentMethod, p model.InvoicePayment) {
	ev := queue.PaymentRecordedEvent{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.Number,
		HotelID:       inv.HotelID,
		MethodID:      p.MethodID,
		MethodName:    method.Name,
		AmountCents:   p.AmountCents,
		BalanceCents:  inv.BalanceCents,
		InvoiceStatus: inv.Status,
		PaidAt:        p.PaidAt,
		RecordedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if inv.ReservationCode != nil {
		ev.ReservationCode = *inv.ReservationCode
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue_publisher.PublishPaymentRecorded(ctx, ev); err != nil {
			log.Printf("invoice: publish payment event failed: %v", err)
		}
	}()
}

// PaymentStatus handles GET /v1/reservations/code/:code/payment-status
// and returns the classifier the dashboard uses: NO_INVOICE when no
// invoice references the code, PAYMENT_PENDING while a balance
// remains, PAYMENT_COMPLETE at zero.
func (h *InvoiceHandler) PaymentStatus(c echo.Context) error {
	hotelID, err := getHotelID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing hotel scope"})
	}
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	inv, err := h.Invoices.GetByReservationCode(c.Request().Context(), hotelID, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusOK, echo.Map{"code": code, "payment_status": desk.NoInvoice})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	status := desk.PaymentComplete
	if inv.BalanceCents > 0 {
		status = desk.PaymentPending
	}
	return c.JSON(http.StatusOK, echo.Map{
		"code":           code,
		"payment_status": status,
		"invoice_id":     inv.ID,
		"balance_cents":  inv.BalanceCents,
	})
}
