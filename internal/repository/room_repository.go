package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-pms/internal/model"
)

// RoomRepo provides CRUD operations for rooms and the housekeeping
// status updates driven by check-in/check-out.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span rooms and reservations.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// Create inserts a room and returns the generated ID.  Room numbers
// are unique per hotel.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) (uint64, error) {
	status := rm.Status
	if status == "" {
		status = model.RoomAvailable
	}
	const q = `INSERT INTO rooms (hotel_id, room_type_id, number, floor, status) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.HotelID, rm.RoomTypeID, rm.Number, rm.Floor, status)
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

// GetByID returns a room within the hotel.
func (r *RoomRepo) GetByID(ctx context.Context, hotelID, roomID uint64) (*model.Room, error) {
	const q = `SELECT id, hotel_id, room_type_id, number, floor, status, created_at, updated_at
	           FROM rooms WHERE id = ? AND hotel_id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, roomID, hotelID).Scan(
		&rm.ID, &rm.HotelID, &rm.RoomTypeID, &rm.Number, &rm.Floor, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// List returns the hotel's rooms ordered by number, optionally
// filtered by housekeeping status.
func (r *RoomRepo) List(ctx context.Context, hotelID uint64, status string) ([]model.Room, error) {
	q := `SELECT id, hotel_id, room_type_id, number, floor, status, created_at, updated_at
	      FROM rooms WHERE hotel_id = ?`
	args := []interface{}{hotelID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY number`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.RoomTypeID, &rm.Number, &rm.Floor, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// Update rewrites a room's static fields (type, number, floor).
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	const q = `UPDATE rooms SET room_type_id = ?, number = ?, floor = ? WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q, rm.RoomTypeID, rm.Number, rm.Floor, rm.ID, rm.HotelID)
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

// UpdateStatus sets a room's housekeeping status.  Used directly by
// the housekeeping endpoint (e.g. CLEANING -> AVAILABLE).
func (r *RoomRepo) UpdateStatus(ctx context.Context, hotelID, roomID uint64, status string) error {
	const q = `UPDATE rooms SET status = ? WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q, status, roomID, hotelID)
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

// SetStatusTx sets a room's housekeeping status within an existing
// transaction.  Check-in marks the room OCCUPIED and check-out marks
// it CLEANING in the same transaction as the reservation update.
func (r *RoomRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, hotelID, roomID uint64, status string) error {
	const q = `UPDATE rooms SET status = ? WHERE id = ? AND hotel_id = ?`
	_, err := tx.ExecContext(ctx, q, status, roomID, hotelID)
	return err
}

// Delete removes a room; rooms referenced by reservations report
// ErrConflict.
func (r *RoomRepo) Delete(ctx context.Context, hotelID, roomID uint64) error {
	const q = `DELETE FROM rooms WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q, roomID, hotelID)
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
