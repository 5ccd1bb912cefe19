package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/hotel-pms/internal/model"
)

// HotelRepo provides access to the hotels and plan_modules tables.  It
// also answers the two questions middleware asks on every request:
// does this user belong to this hotel, and does this hotel's plan
// include a given module.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo returns a HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// GetByID returns a hotel by ID.  sql.ErrNoRows is returned when the
// hotel does not exist.
func (r *HotelRepo) GetByID(ctx context.Context, hotelID uint64) (*model.Hotel, error) {
	const q = `SELECT id, name, timezone, currency, plan, created_at, updated_at
	           FROM hotels WHERE id = ?`
	var h model.Hotel
	err := r.db.QueryRowContext(ctx, q, hotelID).Scan(
		&h.ID, &h.Name, &h.Timezone, &h.Currency, &h.Plan, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// IsMember reports whether the user account belongs to the hotel and
// is active.  The tenant middleware calls this for every request
// carrying an X-Hotel-Id header.
func (r *HotelRepo) IsMember(ctx context.Context, hotelID, userID uint64) (bool, error) {
	const q = `SELECT COUNT(1) FROM users WHERE id = ? AND hotel_id = ? AND is_active = 1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, userID, hotelID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Modules returns the module keys enabled for the hotel's plan.
func (r *HotelRepo) Modules(ctx context.Context, hotelID uint64) ([]string, error) {
	const q = `SELECT module FROM plan_modules WHERE hotel_id = ? ORDER BY module`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	mods := make([]string, 0, 4)
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, rows.Err()
}

// HasModule reports whether the hotel's plan enables a module key.
func (r *HotelRepo) HasModule(ctx context.Context, hotelID uint64, module string) (bool, error) {
	const q = `SELECT COUNT(1) FROM plan_modules WHERE hotel_id = ? AND module = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, hotelID, module).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Location resolves the hotel's IANA timezone into a *time.Location.
// An empty or invalid timezone falls back to UTC so "today" is always
// computable.
func (r *HotelRepo) Location(ctx context.Context, hotelID uint64) (*time.Location, error) {
	h, err := r.GetByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if h.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(h.Timezone)
	if err != nil {
		return time.UTC, nil
	}
	return loc, nil
}
