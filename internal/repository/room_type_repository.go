package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-pms/internal/model"
)

// RoomTypeRepo provides CRUD operations for room types.
type RoomTypeRepo struct {
	db *sql.DB
}

// NewRoomTypeRepo returns a RoomTypeRepo bound to the given database.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

// Create inserts a room type and returns the generated ID.
func (r *RoomTypeRepo) Create(ctx context.Context, rt *model.RoomType) (uint64, error) {
	const q = `INSERT INTO room_types (hotel_id, name, capacity, nightly_cents) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rt.HotelID, rt.Name, rt.Capacity, rt.NightlyCents)
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

// GetByID returns a room type within the hotel.
func (r *RoomTypeRepo) GetByID(ctx context.Context, hotelID, typeID uint64) (*model.RoomType, error) {
	const q = `SELECT id, hotel_id, name, capacity, nightly_cents, created_at, updated_at
	           FROM room_types WHERE id = ? AND hotel_id = ?`
	var rt model.RoomType
	err := r.db.QueryRowContext(ctx, q, typeID, hotelID).Scan(
		&rt.ID, &rt.HotelID, &rt.Name, &rt.Capacity, &rt.NightlyCents, &rt.CreatedAt, &rt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// List returns all room types for the hotel ordered by name.
func (r *RoomTypeRepo) List(ctx context.Context, hotelID uint64) ([]model.RoomType, error) {
	const q = `SELECT id, hotel_id, name, capacity, nightly_cents, created_at, updated_at
	           FROM room_types WHERE hotel_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	types := make([]model.RoomType, 0)
	for rows.Next() {
		var rt model.RoomType
		if err := rows.Scan(&rt.ID, &rt.HotelID, &rt.Name, &rt.Capacity, &rt.NightlyCents, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, rt)
	}
	return types, rows.Err()
}

// Update rewrites a room type's fields.
func (r *RoomTypeRepo) Update(ctx context.Context, rt *model.RoomType) error {
	const q = `UPDATE room_types SET name = ?, capacity = ?, nightly_cents = ?
	           WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q, rt.Name, rt.Capacity, rt.NightlyCents, rt.ID, rt.HotelID)
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

// Delete removes a room type with no rooms attached; ErrConflict is
// returned when rooms still reference it.
func (r *RoomTypeRepo) Delete(ctx context.Context, hotelID, typeID uint64) error {
	const q = `DELETE FROM room_types WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q, typeID, hotelID)
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
