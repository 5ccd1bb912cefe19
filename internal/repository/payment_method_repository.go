package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-pms/internal/model"
)

// PaymentMethodRepo manages the payment channels a hotel accepts.
// Methods are never deleted once payments reference them; they are
// deactivated instead, which blocks them from new payments.
type PaymentMethodRepo struct {
	db *sql.DB
}

// NewPaymentMethodRepo returns a PaymentMethodRepo bound to the given database.
func NewPaymentMethodRepo(db *sql.DB) *PaymentMethodRepo { return &PaymentMethodRepo{db: db} }

// Create inserts a payment method in ACTIVE status.
func (r *PaymentMethodRepo) Create(ctx context.Context, m *model.PaymentMethod) (uint64, error) {
	status := m.Status
	if status == "" {
		status = model.PaymentMethodActive
	}
	const q = `INSERT INTO payment_methods (hotel_id, name, status) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.HotelID, m.Name, status)
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

// GetByID returns a payment method within the hotel.
func (r *PaymentMethodRepo) GetByID(ctx context.Context, hotelID, methodID uint64) (*model.PaymentMethod, error) {
	const q = `SELECT id, hotel_id, name, status, created_at, updated_at
	           FROM payment_methods WHERE id = ? AND hotel_id = ?`
	return r.scan(r.db.QueryRowContext(ctx, q, methodID, hotelID))
}

// GetByIDTx reads a payment method inside the caller's transaction so
// the ACTIVE check in the payment recorder sees a consistent snapshot.
func (r *PaymentMethodRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, hotelID, methodID uint64) (*model.PaymentMethod, error) {
	const q = `SELECT id, hotel_id, name, status, created_at, updated_at
	           FROM payment_methods WHERE id = ? AND hotel_id = ?`
	return r.scan(tx.QueryRowContext(ctx, q, methodID, hotelID))
}

// List returns the hotel's payment methods, active first.
func (r *PaymentMethodRepo) List(ctx context.Context, hotelID uint64) ([]model.PaymentMethod, error) {
	const q = `SELECT id, hotel_id, name, status, created_at, updated_at
	           FROM payment_methods WHERE hotel_id = ? ORDER BY status, name`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	methods := make([]model.PaymentMethod, 0)
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, *m)
	}
	return methods, rows.Err()
}

// UpdateStatus flips a method between ACTIVE and INACTIVE.
func (r *PaymentMethodRepo) UpdateStatus(ctx context.Context, hotelID, methodID uint64, status string) error {
	const q = `UPDATE payment_methods SET status = ? WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q, status, methodID, hotelID)
	if err != nil {
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

func (r *PaymentMethodRepo) scan(s rowScanner) (*model.PaymentMethod, error) {
	var m model.PaymentMethod
	if err := s.Scan(&m.ID, &m.HotelID, &m.Name, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
