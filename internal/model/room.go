package model

import "time"

// Room housekeeping statuses.  A room moves to OCCUPIED on check-in,
// to CLEANING on check-out, and back to AVAILABLE once housekeeping
// clears it.  MAINTENANCE takes the room out of service entirely.
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomCleaning    = "CLEANING"
	RoomMaintenance = "MAINTENANCE"
)

// RoomType models a row in the `room_types` table.  Room types group
// rooms that share pricing and capacity (e.g. "Standard Double").
//
// Fields:
//  ID             – primary key identifier.
//  HotelID        – owning hotel.
//  Name           – unique name within the hotel.
//  Capacity       – maximum number of occupants.
//  NightlyCents   – rack rate per night in cents.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type RoomType struct {
	ID           uint64    `json:"id"`
	HotelID      uint64    `json:"hotel_id"`
	Name         string    `json:"name"`
	Capacity     uint32    `json:"capacity"`
	NightlyCents uint32    `json:"nightly_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Room models a row in the `rooms` table.  Rooms carry the
// housekeeping status used by the front desk and the housekeeping
// module; reservation availability is derived from reservation date
// ranges, not from this status.
//
// Fields:
//  ID         – primary key identifier.
//  HotelID    – owning hotel.
//  RoomTypeID – reference to the room type.
//  Number     – door number, unique within the hotel.
//  Floor      – floor the room is on.
//  Status     – housekeeping status (see constants above).
//  CreatedAt  – timestamp of creation.
//  UpdatedAt  – timestamp of last update.
type Room struct {
	ID         uint64    `json:"id"`
	HotelID    uint64    `json:"hotel_id"`
	RoomTypeID uint64    `json:"room_type_id"`
	Number     string    `json:"number"`
	Floor      int32     `json:"floor"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
