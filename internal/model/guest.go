package model

import "time"

// Guest models a row in the `guests` table.  Guests are the people
// reservations and sales are billed to.  A guest belongs to a hotel
// and is looked up by document number or email at the front desk.
//
// Fields:
//  ID        – primary key identifier.
//  HotelID   – owning hotel.
//  FullName  – guest's display name.
//  Document  – national ID / passport number (unique per hotel).
//  Email     – contact email (optional).
//  Phone     – contact phone (optional).
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Guest struct {
	ID        uint64    `json:"id"`
	HotelID   uint64    `json:"hotel_id"`
	FullName  string    `json:"full_name"`
	Document  string    `json:"document"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
