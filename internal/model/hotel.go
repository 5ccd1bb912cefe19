package model

import "time"

// Hotel represents a tenant property in the `hotels` table.  Every
// domain record in the system is scoped to exactly one hotel; the
// hotel ID travels on requests via the X-Hotel-Id header and is
// verified against staff membership before any data access.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the property.
//  Timezone  – IANA timezone used to compute the front-desk "today"
//              (e.g. "America/Bogota").  Empty means UTC.
//  Currency  – ISO 4217 currency code for amounts (display only; all
//              amounts are stored in cents).
//  Plan      – subscription plan name (e.g. BASIC, PRO).
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Hotel struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	Currency  string    `json:"currency"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlanModule is a row in the `plan_modules` table.  It marks a feature
// module as enabled for a hotel's plan.  Route groups for optional
// modules (e.g. point of sale) check this set and reject requests for
// hotels whose plan does not include the module.
//
// Fields:
//  ID      – primary key identifier.
//  HotelID – hotel the module is enabled for.
//  Module  – module key (e.g. "pos", "housekeeping", "billing").
type PlanModule struct {
	ID      uint64 `json:"id"`
	HotelID uint64 `json:"hotel_id"`
	Module  string `json:"module"`
}
