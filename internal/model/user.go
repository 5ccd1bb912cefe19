package model

import "time"

// Staff roles.  MANAGER has full access to back-office administration;
// RECEPTIONIST covers front-desk and point-of-sale operations.
const (
	RoleManager      = "MANAGER"
	RoleReceptionist = "RECEPTIONIST"
)

// User represents a staff account in the `users` table.  A user
// belongs to a hotel; the tenant middleware verifies that the
// X-Hotel-Id header on each request matches the caller's hotel.
//
// Fields:
//  ID           – primary key identifier.
//  HotelID      – hotel the account belongs to.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – staff role (MANAGER or RECEPTIONIST).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	HotelID      uint64    `json:"hotel_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken models an entry in the `refresh_tokens` table.  The
// plain token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     `json:"id"`
	UserID    uint64     `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at"`
	CreatedAt time.Time  `json:"created_at"`
}
