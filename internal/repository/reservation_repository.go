package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-pms/internal/model"
	"github.com/iliyamo/hotel-pms/internal/utils"
)

// ReservationRepo provides persistence for reservations: creation with
// availability checks, paginated listing, the front-desk arrivals and
// departures queries, and the guarded lifecycle transitions.  Stay
// dates are DATE columns selected through DATE_FORMAT so they scan as
// ISO YYYY-MM-DD strings regardless of driver time parsing.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for handler-managed transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationCols = `id, hotel_id, code, guest_id, room_id, status,
	DATE_FORMAT(check_in, '%Y-%m-%d'), DATE_FORMAT(check_out, '%Y-%m-%d'),
	nights, adults, children, total_cents, actual_check_in, actual_check_out,
	created_at, updated_at`

func scanReservation(s rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	var actualIn, actualOut sql.NullTime
	if err := s.Scan(
		&res.ID, &res.HotelID, &res.Code, &res.GuestID, &res.RoomID, &res.Status,
		&res.CheckIn, &res.CheckOut,
		&res.Nights, &res.Adults, &res.Children, &res.TotalCents, &actualIn, &actualOut,
		&res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if actualIn.Valid {
		t := actualIn.Time
		res.ActualCheckIn = &t
	}
	if actualOut.Valid {
		t := actualOut.Time
		res.ActualCheckOut = &t
	}
	return &res, nil
}

// Create inserts a new reservation in PENDING status (unless another
// valid status is supplied), generating a unique per-hotel code.  It
// verifies inside a transaction that the room has no overlapping
// active reservation for the stay window and returns ErrConflict when
// it does.  On success the record's ID, code and timestamps are
// populated.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	if res.Status == "" {
		res.Status = model.ReservationPending
	}
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

	free, err := r.roomFreeTx(ctx, tx, res.HotelID, res.RoomID, res.CheckIn, res.CheckOut, 0)
	if err != nil {
		return err
	}
	if !free {
		return ErrConflict
	}

	// Codes are random; retry a few times on the per-hotel unique key.
	const ins = `INSERT INTO reservations
		(hotel_id, code, guest_id, room_id, status, check_in, check_out, nights, adults, children, total_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var result sql.Result
	for attempt := 0; attempt < 3; attempt++ {
		code, err := utils.NewReservationCode()
		if err != nil {
			return err
		}
		result, err = tx.ExecContext(ctx, ins,
			res.HotelID, code, res.GuestID, res.RoomID, res.Status,
			res.CheckIn, res.CheckOut, res.Nights, res.Adults, res.Children, res.TotalCents)
		if err == nil {
			res.Code = code
			break
		}
		if !isDuplicateKey(err) || attempt == 2 {
			return err
		}
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	// Query back the full row to populate timestamps and defaults.
	sel := `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	got, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return err
	}
	*res = *got

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// roomFreeTx reports whether the room has no overlapping reservation
// in an active status for the half-open window [checkIn, checkOut).
// excludeID skips one reservation, for availability checks during
// updates.
func (r *ReservationRepo) roomFreeTx(ctx context.Context, tx *sql.Tx, hotelID, roomID uint64, checkIn, checkOut string, excludeID uint64) (bool, error) {
	const q = `SELECT COUNT(1) FROM reservations
	           WHERE hotel_id = ? AND room_id = ?
	             AND status IN (?, ?, ?)
	             AND check_in < ? AND check_out > ?
	             AND id <> ?`
	var n int
	err := tx.QueryRowContext(ctx, q, hotelID, roomID,
		model.ReservationPending, model.ReservationConfirmed, model.ReservationCheckedIn,
		checkOut, checkIn, excludeID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// CheckAvailability answers the availability query outside a creation
// flow (GET /v1/reservations/availability).
func (r *ReservationRepo) CheckAvailability(ctx context.Context, hotelID, roomID uint64, checkIn, checkOut string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()
	return r.roomFreeTx(ctx, tx, hotelID, roomID, checkIn, checkOut, 0)
}

// GetByID returns a reservation within the hotel.
func (r *ReservationRepo) GetByID(ctx context.Context, hotelID, resID uint64) (*model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations WHERE id = ? AND hotel_id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, q, resID, hotelID))
}

// GetByCode returns a reservation by its human-facing code.
func (r *ReservationRepo) GetByCode(ctx context.Context, hotelID uint64, code string) (*model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations WHERE code = ? AND hotel_id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, q, code, hotelID))
}

// List returns a page of the hotel's reservations, newest first,
// optionally filtered by status.
func (r *ReservationRepo) List(ctx context.Context, hotelID uint64, status string, page, limit int) ([]model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations WHERE hotel_id = ?`
	args := []interface{}{hotelID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)
	return r.queryMany(ctx, q, args...)
}

// ArrivalsOn returns reservations arriving on the given date in
// PENDING or CONFIRMED status, in insertion order, capped at limit.
// The predicate mirrors the pure projection in the desk package; the
// query exists so the dashboard does not need the whole collection.
func (r *ReservationRepo) ArrivalsOn(ctx context.Context, hotelID uint64, date string, limit int) ([]model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations
	      WHERE hotel_id = ? AND check_in = ? AND status IN (?, ?)
	      ORDER BY id LIMIT ?`
	return r.queryMany(ctx, q, hotelID, date, model.ReservationPending, model.ReservationConfirmed, limit)
}

// DeparturesOn returns checked-in reservations departing on the given
// date, in insertion order, capped at limit.
func (r *ReservationRepo) DeparturesOn(ctx context.Context, hotelID uint64, date string, limit int) ([]model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations
	      WHERE hotel_id = ? AND check_out = ? AND status = ?
	      ORDER BY id LIMIT ?`
	return r.queryMany(ctx, q, hotelID, date, model.ReservationCheckedIn, limit)
}

func (r *ReservationRepo) queryMany(ctx context.Context, q string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// lockedStatusTx reads a reservation's status and room under a row
// lock so a lifecycle transition can be validated and applied without
// racing a concurrent request.
func (r *ReservationRepo) lockedStatusTx(ctx context.Context, tx *sql.Tx, hotelID, resID uint64) (status string, roomID uint64, err error) {
	const q = `SELECT status, room_id FROM reservations WHERE id = ? AND hotel_id = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, q, resID, hotelID).Scan(&status, &roomID)
	return status, roomID, err
}

// CompleteCheckInTx transitions a reservation to CHECKED_IN within the
// caller's transaction.  Valid only from PENDING or CONFIRMED; any
// other current status yields model.ErrInvalidTransition.  On success
// actual_check_in is set to the current time and the room ID is
// returned so the caller can mark the room OCCUPIED in the same
// transaction.
func (r *ReservationRepo) CompleteCheckInTx(ctx context.Context, tx *sql.Tx, hotelID, resID uint64) (uint64, error) {
	status, roomID, err := r.lockedStatusTx(ctx, tx, hotelID, resID)
	if err != nil {
		return 0, err
	}
	if err := model.CheckTransition(status, model.ReservationCheckedIn); err != nil {
		return 0, err
	}
	const upd = `UPDATE reservations SET status = ?, actual_check_in = UTC_TIMESTAMP()
	             WHERE id = ? AND hotel_id = ?`
	if _, err := tx.ExecContext(ctx, upd, model.ReservationCheckedIn, resID, hotelID); err != nil {
		return 0, err
	}
	return roomID, nil
}

// CompleteCheckOutTx transitions a reservation to CHECKED_OUT within
// the caller's transaction.  Valid only from CHECKED_IN.  On success
// actual_check_out is set and the room ID is returned so the caller
// can mark the room CLEANING.
func (r *ReservationRepo) CompleteCheckOutTx(ctx context.Context, tx *sql.Tx, hotelID, resID uint64) (uint64, error) {
	status, roomID, err := r.lockedStatusTx(ctx, tx, hotelID, resID)
	if err != nil {
		return 0, err
	}
	if err := model.CheckTransition(status, model.ReservationCheckedOut); err != nil {
		return 0, err
	}
	const upd = `UPDATE reservations SET status = ?, actual_check_out = UTC_TIMESTAMP()
	             WHERE id = ? AND hotel_id = ?`
	if _, err := tx.ExecContext(ctx, upd, model.ReservationCheckedOut, resID, hotelID); err != nil {
		return 0, err
	}
	return roomID, nil
}

// Confirm moves a PENDING reservation to CONFIRMED.  The guarded
// UPDATE makes the transition atomic; zero affected rows means the
// reservation either does not exist (sql.ErrNoRows from the follow-up
// check) or is not PENDING (model.ErrInvalidTransition).
func (r *ReservationRepo) Confirm(ctx context.Context, hotelID, resID uint64) error {
	const q = `UPDATE reservations SET status = ? WHERE id = ? AND hotel_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, model.ReservationConfirmed, resID, hotelID, model.ReservationPending)
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
	if _, err := r.GetByID(ctx, hotelID, resID); err != nil {
		return err // sql.ErrNoRows when missing
	}
	return model.ErrInvalidTransition
}

// CancelTx cancels a reservation within the caller's transaction.
// Cancellation is valid only from PENDING or CONFIRMED; checked-in
// stays cannot be cancelled.  The record is retained for history.
func (r *ReservationRepo) CancelTx(ctx context.Context, tx *sql.Tx, hotelID, resID uint64) error {
	status, _, err := r.lockedStatusTx(ctx, tx, hotelID, resID)
	if err != nil {
		return err
	}
	if err := model.CheckTransition(status, model.ReservationCancelled); err != nil {
		return err
	}
	const upd = `UPDATE reservations SET status = ? WHERE id = ? AND hotel_id = ?`
	_, err = tx.ExecContext(ctx, upd, model.ReservationCancelled, resID, hotelID)
	return err
}
