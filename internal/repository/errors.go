// Package repository defines sentinel errors reused across the data
// access layer.  Handlers use these to map failures onto HTTP status
// codes: ErrForbidden -> 403, ErrConflict -> 409, sql.ErrNoRows -> 404.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource belonging to another hotel or user.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as booking a room that already has an
// overlapping reservation for the requested dates.
var ErrConflict = errors.New("conflict")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint (guest document, room number, payment method name).
var ErrDuplicate = errors.New("duplicate")
