// Package desk derives front-desk dashboard state from the domain
// collections: today's arrivals and departures, and the payment status
// of a reservation's linked invoice.  Everything here is a pure
// projection with no side effects, so the dashboard can recompute on
// every request and the predicates are testable without a database.
package desk

import (
	"time"

	"github.com/iliyamo/hotel-pms/internal/model"
)

// DisplayLimit caps how many arrivals/departures the dashboard shows.
const DisplayLimit = 5

// PaymentStatus classifies a reservation by the state of its linked
// invoice.
type PaymentStatus string

const (
	// NoInvoice means no invoice references the reservation code.
	NoInvoice PaymentStatus = "NO_INVOICE"
	// PaymentPending means the linked invoice still has a balance.
	PaymentPending PaymentStatus = "PAYMENT_PENDING"
	// PaymentComplete means the linked invoice balance is zero.
	PaymentComplete PaymentStatus = "PAYMENT_COMPLETE"
)

// Today returns the current date in ISO YYYY-MM-DD form for the given
// location.  A nil location means UTC.  The hotel's configured
// timezone decides what "today" means near midnight; callers resolve
// the location from hotel settings.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format("2006-01-02")
}

// Arrivals returns the reservations arriving on the given date: those
// whose check-in date equals date and whose status is PENDING or
// CONFIRMED.  The input order is preserved and the result is capped at
// DisplayLimit entries.
func Arrivals(reservations []model.Reservation, date string) []model.Reservation {
	out := make([]model.Reservation, 0, DisplayLimit)
	for _, r := range reservations {
		if len(out) == DisplayLimit {
			break
		}
		if r.CheckIn != date {
			continue
		}
		if r.Status == model.ReservationPending || r.Status == model.ReservationConfirmed {
			out = append(out, r)
		}
	}
	return out
}

// Departures returns the reservations departing on the given date:
// those whose check-out date equals date and whose status is
// CHECKED_IN.  Order and cap behave as in Arrivals.
func Departures(reservations []model.Reservation, date string) []model.Reservation {
	out := make([]model.Reservation, 0, DisplayLimit)
	for _, r := range reservations {
		if len(out) == DisplayLimit {
			break
		}
		if r.CheckOut == date && r.Status == model.ReservationCheckedIn {
			out = append(out, r)
		}
	}
	return out
}

// PaymentStatusFor looks up the invoice linked to a reservation code
// and classifies it.  The scan is O(n) over the invoice list, which is
// fine at dashboard scale.  A balance of zero (or below, which the
// payment recorder never produces) counts as complete.
func PaymentStatusFor(code string, invoices []model.Invoice) PaymentStatus {
	for _, inv := range invoices {
		if inv.ReservationCode == nil || *inv.ReservationCode != code {
			continue
		}
		if inv.BalanceCents > 0 {
			return PaymentPending
		}
		return PaymentComplete
	}
	return NoInvoice
}
