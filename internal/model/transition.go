package model

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a reservation status change is
// not permitted by the lifecycle.  Handlers translate it into an HTTP
// 409 response.  Disallowed transitions are always rejected with this
// error, never silently ignored.
var ErrInvalidTransition = errors.New("invalid status transition")

// reservationTransitions is the explicit transition table for the
// reservation lifecycle.  Each status maps to the set of statuses it
// may move to.  CHECKED_OUT and CANCELLED are terminal; in particular
// a stay can no longer be cancelled once the guest has checked in.
var reservationTransitions = map[string][]string{
	ReservationPending:    {ReservationConfirmed, ReservationCheckedIn, ReservationCancelled},
	ReservationConfirmed:  {ReservationCheckedIn, ReservationCancelled},
	ReservationCheckedIn:  {ReservationCheckedOut},
	ReservationCheckedOut: {},
	ReservationCancelled:  {},
}

// CanTransition reports whether a reservation may move from one status
// to another according to the transition table.  Unknown statuses are
// never allowed to transition.
func CanTransition(from, to string) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition validates a status change and returns a descriptive
// ErrInvalidTransition when it is not allowed.
func CheckTransition(from, to string) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// KnownReservationStatus reports whether s is one of the reservation
// lifecycle statuses.  Handlers use it to validate status filters.
func KnownReservationStatus(s string) bool {
	_, ok := reservationTransitions[s]
	return ok
}

// CheckInSources lists the statuses a reservation may be in when the
// front desk completes a check-in.  Repositories use this list to
// build guarded UPDATE statements.
func CheckInSources() []string {
	return []string{ReservationPending, ReservationConfirmed}
}

// CancelSources lists the statuses from which a reservation may be
// cancelled.
func CancelSources() []string {
	return []string{ReservationPending, ReservationConfirmed}
}
