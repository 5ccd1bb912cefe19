package model

import "time"

// Reservation statuses.  The full lifecycle is
// PENDING → CONFIRMED → CHECKED_IN → CHECKED_OUT, with CANCELLED
// reachable only from PENDING or CONFIRMED.  See transition.go for the
// transition table that enforces this.
const (
	ReservationPending    = "PENDING"
	ReservationConfirmed  = "CONFIRMED"
	ReservationCheckedIn  = "CHECKED_IN"
	ReservationCheckedOut = "CHECKED_OUT"
	ReservationCancelled  = "CANCELLED"
)

// Reservation records a booked stay linking a guest to a room for a
// date range.  Reservations are never deleted once created; cancelling
// is a status change so the record is retained for history.  Stay
// boundaries (CheckIn/CheckOut) are calendar dates in ISO form
// (YYYY-MM-DD) interpreted in the hotel's timezone, while the actual
// check-in/check-out columns are wall-clock timestamps set by the
// front-desk transitions.
//
// Fields:
//  ID             – primary key identifier.
//  HotelID        – owning hotel.
//  Code           – short human-facing reservation code, unique per
//                   hotel; invoices link back to reservations via this
//                   code.
//  GuestID        – guest the stay is booked for.
//  RoomID         – room assigned to the stay.
//  Status         – lifecycle status (see constants above).
//  CheckIn        – arrival date, ISO YYYY-MM-DD.
//  CheckOut       – departure date, ISO YYYY-MM-DD.
//  Nights         – number of nights (check-out minus check-in).
//  Adults         – adult occupants.
//  Children       – child occupants.
//  TotalCents     – total stay price in cents.
//  ActualCheckIn  – set exactly once, when the status transitions to
//                   CHECKED_IN.
//  ActualCheckOut – set exactly once, when the status transitions to
//                   CHECKED_OUT.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type Reservation struct {
	ID             uint64     `json:"id"`
	HotelID        uint64     `json:"hotel_id"`
	Code           string     `json:"code"`
	GuestID        uint64     `json:"guest_id"`
	RoomID         uint64     `json:"room_id"`
	Status         string     `json:"status"`
	CheckIn        string     `json:"check_in"`
	CheckOut       string     `json:"check_out"`
	Nights         uint32     `json:"nights"`
	Adults         uint32     `json:"adults"`
	Children       uint32     `json:"children"`
	TotalCents     uint32     `json:"total_cents"`
	ActualCheckIn  *time.Time `json:"actual_check_in"`
	ActualCheckOut *time.Time `json:"actual_check_out"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
