package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-pms/internal/model"
	"github.com/iliyamo/hotel-pms/internal/utils"
)

// InvoiceRepo persists invoices, their line items and their payment
// records.  Recording a payment happens inside a caller-owned
// transaction: the invoice row is read FOR UPDATE, the billing rules
// are validated against the locked balance, and the payment insert
// plus balance/status update commit or roll back as one unit.  That
// keeps the balance invariant (balance == total - sum(payments),
// balance >= 0) true under concurrent requests.
type InvoiceRepo struct {
	db *sql.DB
}

// NewInvoiceRepo returns an InvoiceRepo bound to the given database.
func NewInvoiceRepo(db *sql.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

// DB exposes the underlying handle for handler-managed transactions.
func (r *InvoiceRepo) DB() *sql.DB { return r.db }

const invoiceCols = `id, hotel_id, number, status, reservation_code, guest_id,
	subtotal_cents, tax_cents, total_cents, balance_cents,
	DATE_FORMAT(issued_at, '%Y-%m-%d'), created_at, updated_at`

func scanInvoice(s rowScanner) (*model.Invoice, error) {
	var inv model.Invoice
	var resCode sql.NullString
	var guestID sql.NullInt64
	if err := s.Scan(
		&inv.ID, &inv.HotelID, &inv.Number, &inv.Status, &resCode, &guestID,
		&inv.SubtotalCents, &inv.TaxCents, &inv.TotalCents, &inv.BalanceCents,
		&inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if resCode.Valid {
		v := resCode.String
		inv.ReservationCode = &v
	}
	if guestID.Valid {
		v := uint64(guestID.Int64)
		inv.GuestID = &v
	}
	return &inv, nil
}

// Create inserts an invoice with its line items in one transaction.
// The invoice number is the next per-hotel sequence value; subtotal,
// tax and total must already be computed by the caller, and the
// opening balance equals the total.  At most one invoice may reference
// a reservation code; a second insert for the same code returns
// ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Next sequence value under lock; COALESCE handles the first
	// invoice of a hotel.
	const seqQ = `SELECT COALESCE(MAX(id), 0) + 1 FROM invoices WHERE hotel_id = ? FOR UPDATE`
	var seq uint64
	if err := tx.QueryRowContext(ctx, seqQ, inv.HotelID).Scan(&seq); err != nil {
		return err
	}
	inv.Number = utils.NewInvoiceNumber(seq)
	if inv.Status == "" {
		inv.Status = model.InvoiceDraft
	}

	const ins = `INSERT INTO invoices
		(hotel_id, number, status, reservation_code, guest_id, subtotal_cents, tax_cents, total_cents, balance_cents, issued_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		inv.HotelID, inv.Number, inv.Status, inv.ReservationCode, inv.GuestID,
		inv.SubtotalCents, inv.TaxCents, inv.TotalCents, inv.TotalCents, inv.IssuedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	inv.ID = uint64(id)
	inv.BalanceCents = inv.TotalCents

	if len(inv.Items) > 0 {
		q := `INSERT INTO invoice_items (invoice_id, description, quantity, unit_price_cents, amount_cents) VALUES `
		args := make([]interface{}, 0, len(inv.Items)*5)
		for i := range inv.Items {
			if i > 0 {
				q += ","
			}
			q += "(?, ?, ?, ?, ?)"
			it := &inv.Items[i]
			it.InvoiceID = inv.ID
			args = append(args, inv.ID, it.Description, it.Quantity, it.UnitPriceCents, it.AmountCents)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns an invoice with its items and payments loaded.
func (r *InvoiceRepo) GetByID(ctx context.Context, hotelID, invID uint64) (*model.Invoice, error) {
	q := `SELECT ` + invoiceCols + ` FROM invoices WHERE id = ? AND hotel_id = ?`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, q, invID, hotelID))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, inv); err != nil {
		return nil, err
	}
	if err := r.loadPayments(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByReservationCode returns the invoice linked to a reservation
// code, with items and payments.  sql.ErrNoRows means no invoice
// references the code; the desk classifier maps that to NoInvoice.
func (r *InvoiceRepo) GetByReservationCode(ctx context.Context, hotelID uint64, code string) (*model.Invoice, error) {
	q := `SELECT ` + invoiceCols + ` FROM invoices WHERE hotel_id = ? AND reservation_code = ?`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, q, hotelID, code))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, inv); err != nil {
		return nil, err
	}
	if err := r.loadPayments(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListByDateRange returns a page of invoices issued inside the
// inclusive [from, to] date range, newest first.  Items and payments
// are not loaded for list views.
func (r *InvoiceRepo) ListByDateRange(ctx context.Context, hotelID uint64, from, to string, page, limit int) ([]model.Invoice, error) {
	q := `SELECT ` + invoiceCols + ` FROM invoices
	      WHERE hotel_id = ? AND issued_at BETWEEN ? AND ?
	      ORDER BY issued_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, hotelID, from, to, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Invoice, 0, limit)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

// GetForUpdateTx reads an invoice under a row lock inside the caller's
// transaction.  Items are not loaded; the payment recorder only needs
// the locked balance and status.
func (r *InvoiceRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, hotelID, invID uint64) (*model.Invoice, error) {
	q := `SELECT ` + invoiceCols + ` FROM invoices WHERE id = ? AND hotel_id = ? FOR UPDATE`
	return scanInvoice(tx.QueryRowContext(ctx, q, invID, hotelID))
}

// AddPaymentTx appends a payment record and applies the already
// validated balance/status change inside the caller's transaction.
// The UPDATE re-asserts the balance guard so a bug upstream can never
// drive the balance negative; zero affected rows reports ErrConflict.
func (r *InvoiceRepo) AddPaymentTx(ctx context.Context, tx *sql.Tx, inv *model.Invoice, p *model.InvoicePayment) error {
	const ins = `INSERT INTO invoice_payments (invoice_id, method_id, amount_cents, paid_at, reference, notes)
	             VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins, inv.ID, p.MethodID, p.AmountCents, p.PaidAt, p.Reference, p.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	p.InvoiceID = inv.ID

	const upd = `UPDATE invoices SET balance_cents = balance_cents - ?, status = ?
	             WHERE id = ? AND hotel_id = ? AND balance_cents >= ?`
	out, err := tx.ExecContext(ctx, upd, p.AmountCents, inv.Status, inv.ID, inv.HotelID, p.AmountCents)
	if err != nil {
		return err
	}
	n, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

func (r *InvoiceRepo) loadItems(ctx context.Context, inv *model.Invoice) error {
	const q = `SELECT id, invoice_id, description, quantity, unit_price_cents, amount_cents
	           FROM invoice_items WHERE invoice_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, inv.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	inv.Items = make([]model.InvoiceItem, 0)
	for rows.Next() {
		var it model.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitPriceCents, &it.AmountCents); err != nil {
			return err
		}
		inv.Items = append(inv.Items, it)
	}
	return rows.Err()
}

func (r *InvoiceRepo) loadPayments(ctx context.Context, inv *model.Invoice) error {
	const q = `SELECT id, invoice_id, method_id, amount_cents, DATE_FORMAT(paid_at, '%Y-%m-%d'), reference, notes, created_at
	           FROM invoice_payments WHERE invoice_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, inv.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	inv.Payments = make([]model.InvoicePayment, 0)
	for rows.Next() {
		var p model.InvoicePayment
		var ref, notes sql.NullString
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.MethodID, &p.AmountCents, &p.PaidAt, &ref, &notes, &p.CreatedAt); err != nil {
			return err
		}
		if ref.Valid {
			v := ref.String
			p.Reference = &v
		}
		if notes.Valid {
			v := notes.String
			p.Notes = &v
		}
		inv.Payments = append(inv.Payments, p)
	}
	return rows.Err()
}
