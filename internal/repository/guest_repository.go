package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-pms/internal/model"
)

// GuestRepo provides CRUD operations for guests.  All queries are
// scoped to a hotel; a guest ID from another hotel behaves exactly
// like a missing row.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

// Create inserts a guest and returns the generated ID.  The document
// number is unique per hotel; violations surface as ErrDuplicate.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) (uint64, error) {
	const q = `INSERT INTO guests (hotel_id, full_name, document, email, phone) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, g.HotelID, g.FullName, g.Document, g.Email, g.Phone)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID returns a guest by ID within the hotel.  sql.ErrNoRows is
// returned when no such guest exists.
func (r *GuestRepo) GetByID(ctx context.Context, hotelID, guestID uint64) (*model.Guest, error) {
	const q = `SELECT id, hotel_id, full_name, document, email, phone, created_at, updated_at
	           FROM guests WHERE id = ? AND hotel_id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, guestID, hotelID))
}

// List returns a page of the hotel's guests ordered by name.  When
// search is non-empty it matches name, document and email.
func (r *GuestRepo) List(ctx context.Context, hotelID uint64, search string, page, limit int) ([]model.Guest, error) {
	q := `SELECT id, hotel_id, full_name, document, email, phone, created_at, updated_at
	      FROM guests WHERE hotel_id = ?`
	args := []interface{}{hotelID}
	if s := strings.TrimSpace(search); s != "" {
		q += ` AND (full_name LIKE ? OR document LIKE ? OR email LIKE ?)`
		like := "%" + s + "%"
		args = append(args, like, like, like)
	}
	q += ` ORDER BY full_name LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]model.Guest, 0, limit)
	for rows.Next() {
		g, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, *g)
	}
	return guests, rows.Err()
}

// Update rewrites the mutable guest fields.  sql.ErrNoRows is returned
// when the guest does not exist in the hotel.
func (r *GuestRepo) Update(ctx context.Context, g *model.Guest) error {
	const q = `UPDATE guests SET full_name = ?, document = ?, email = ?, phone = ?
	           WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q, g.FullName, g.Document, g.Email, g.Phone, g.ID, g.HotelID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a guest.  Guests with reservations cannot be removed;
// the foreign key violation is reported as ErrConflict.
func (r *GuestRepo) Delete(ctx context.Context, hotelID, guestID uint64) error {
	const q = `DELETE FROM guests WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q, guestID, hotelID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *GuestRepo) scanOne(row *sql.Row) (*model.Guest, error) { return r.scanRow(row) }

func (r *GuestRepo) scanRow(s rowScanner) (*model.Guest, error) {
	var g model.Guest
	var email, phone sql.NullString
	if err := s.Scan(&g.ID, &g.HotelID, &g.FullName, &g.Document, &email, &phone, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	if email.Valid {
		v := email.String
		g.Email = &v
	}
	if phone.Valid {
		v := phone.String
		g.Phone = &v
	}
	return &g, nil
}

// isDuplicateKey detects MySQL error 1062 (duplicate entry).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isForeignKeyViolation detects MySQL errors 1451/1452 (FK constraint).
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "1451") || strings.Contains(err.Error(), "1452")
}
