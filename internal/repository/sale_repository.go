package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-pms/internal/model"
)

// SaleRepo persists point-of-sale tickets and their line items.
type SaleRepo struct {
	db *sql.DB
}

// NewSaleRepo returns a SaleRepo bound to the given database.
func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{db: db} }

// Create inserts a sale with its items in one transaction.  Amounts
// must already be computed by the handler (line amounts and the
// subtotal/tax/total on the sale).
func (r *SaleRepo) Create(ctx context.Context, s *model.Sale) error {
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

	const ins = `INSERT INTO sales (hotel_id, guest_id, status, subtotal_cents, tax_cents, total_cents)
	             VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins, s.HotelID, s.GuestID, s.Status, s.SubtotalCents, s.TaxCents, s.TotalCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	if len(s.Items) > 0 {
		q := `INSERT INTO sale_items (sale_id, description, quantity, unit_price_cents, amount_cents) VALUES `
		args := make([]interface{}, 0, len(s.Items)*5)
		for i := range s.Items {
			if i > 0 {
				q += ","
			}
			q += "(?, ?, ?, ?, ?)"
			it := &s.Items[i]
			it.SaleID = s.ID
			args = append(args, s.ID, it.Description, it.Quantity, it.UnitPriceCents, it.AmountCents)
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

// GetByID returns a sale with its items loaded.
func (r *SaleRepo) GetByID(ctx context.Context, hotelID, saleID uint64) (*model.Sale, error) {
	const q = `SELECT id, hotel_id, guest_id, status, subtotal_cents, tax_cents, total_cents, created_at, updated_at
	           FROM sales WHERE id = ? AND hotel_id = ?`
	s, err := r.scan(r.db.QueryRowContext(ctx, q, saleID, hotelID))
	if err != nil {
		return nil, err
	}
	const itemQ = `SELECT id, sale_id, description, quantity, unit_price_cents, amount_cents
	               FROM sale_items WHERE sale_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, itemQ, s.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	s.Items = make([]model.SaleItem, 0)
	for rows.Next() {
		var it model.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.Description, &it.Quantity, &it.UnitPriceCents, &it.AmountCents); err != nil {
			return nil, err
		}
		s.Items = append(s.Items, it)
	}
	return s, rows.Err()
}

// List returns a page of the hotel's sales, newest first, optionally
// filtered by status.  Items are not loaded for list views.
func (r *SaleRepo) List(ctx context.Context, hotelID uint64, status string, page, limit int) ([]model.Sale, error) {
	q := `SELECT id, hotel_id, guest_id, status, subtotal_cents, tax_cents, total_cents, created_at, updated_at
	      FROM sales WHERE hotel_id = ?`
	args := []interface{}{hotelID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sales := make([]model.Sale, 0, limit)
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *s)
	}
	return sales, rows.Err()
}

// UpdateStatus changes a sale's status (e.g. PENDING -> PAID, or
// PENDING -> CANCELLED).  Cancelled and paid sales are final; the
// guard rejects edits to them with ErrConflict.
func (r *SaleRepo) UpdateStatus(ctx context.Context, hotelID, saleID uint64, status string) error {
	const q = `UPDATE sales SET status = ? WHERE id = ? AND hotel_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, status, saleID, hotelID, model.SalePending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	if _, err := r.GetByID(ctx, hotelID, saleID); err != nil {
		return err
	}
	return ErrConflict
}

func (r *SaleRepo) scan(s rowScanner) (*model.Sale, error) {
	var sale model.Sale
	var guestID sql.NullInt64
	if err := s.Scan(&sale.ID, &sale.HotelID, &guestID, &sale.Status, &sale.SubtotalCents, &sale.TaxCents, &sale.TotalCents, &sale.CreatedAt, &sale.UpdatedAt); err != nil {
		return nil, err
	}
	if guestID.Valid {
		v := uint64(guestID.Int64)
		sale.GuestID = &v
	}
	return &sale, nil
}
