package desk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-pms/internal/model"
)

func stay(id uint64, status, checkIn, checkOut string) model.Reservation {
	return model.Reservation{
		ID:       id,
		Code:     "RES-" + string(rune('A'+id)),
		Status:   status,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}
}

func TestArrivals_Predicate(t *testing.T) {
	today := "2026-08-30"
	all := []model.Reservation{
		stay(1, model.ReservationPending, today, "2026-09-02"),
		stay(2, model.ReservationConfirmed, today, "2026-09-01"),
		stay(3, model.ReservationCheckedIn, today, "2026-09-01"),  // already in house
		stay(4, model.ReservationCancelled, today, "2026-09-01"),  // cancelled
		stay(5, model.ReservationConfirmed, "2026-08-31", "2026-09-03"), // wrong date
	}

	got := Arrivals(all, today)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].ID)
	assert.Equal(t, uint64(2), got[1].ID)
}

func TestArrivals_CapPreservesOrder(t *testing.T) {
	today := "2026-08-30"
	all := make([]model.Reservation, 0, 6)
	for i := uint64(1); i <= 6; i++ {
		all = append(all, stay(i, model.ReservationConfirmed, today, "2026-09-01"))
	}

	got := Arrivals(all, today)
	require.Len(t, got, DisplayLimit)
	for i, r := range got {
		// first five in original order, sixth dropped
		assert.Equal(t, uint64(i+1), r.ID)
	}
}

func TestDepartures_Predicate(t *testing.T) {
	today := "2026-08-30"
	all := []model.Reservation{
		stay(1, model.ReservationCheckedIn, "2026-08-28", today),
		stay(2, model.ReservationConfirmed, "2026-08-28", today), // never checked in
		stay(3, model.ReservationCheckedIn, "2026-08-28", "2026-08-31"),
		stay(4, model.ReservationCheckedOut, "2026-08-28", today), // already left
	}

	got := Departures(all, today)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].ID)
}

func TestArrivalsDeparturesDisjointForStay(t *testing.T) {
	// A reservation arriving today is pending/confirmed; once checked
	// in it stops being an arrival and becomes a departure when its
	// check-out date comes up.
	today := "2026-08-30"
	r := stay(1, model.ReservationPending, today, today)

	assert.Len(t, Arrivals([]model.Reservation{r}, today), 1)
	assert.Empty(t, Departures([]model.Reservation{r}, today))

	r.Status = model.ReservationCheckedIn
	assert.Empty(t, Arrivals([]model.Reservation{r}, today))
	assert.Len(t, Departures([]model.Reservation{r}, today), 1)
}

func TestPaymentStatusFor(t *testing.T) {
	code := "RES-1042"
	other := "RES-9999"
	tests := []struct {
		name     string
		invoices []model.Invoice
		want     PaymentStatus
	}{
		{"no invoices at all", nil, NoInvoice},
		{"no invoice for code", []model.Invoice{{ReservationCode: &other, BalanceCents: 100}}, NoInvoice},
		{"open balance", []model.Invoice{{ReservationCode: &code, BalanceCents: 2500}}, PaymentPending},
		{"zero balance", []model.Invoice{{ReservationCode: &code, BalanceCents: 0}}, PaymentComplete},
		{"unlinked invoice skipped", []model.Invoice{{BalanceCents: 900}, {ReservationCode: &code, BalanceCents: 0}}, PaymentComplete},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PaymentStatusFor(code, tc.invoices))
		})
	}
}

func TestToday_TimezoneBoundary(t *testing.T) {
	// 2026-08-31 03:30 UTC is still 2026-08-30 in Bogota (UTC-5).
	now := time.Date(2026, 8, 31, 3, 30, 0, 0, time.UTC)
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	assert.Equal(t, "2026-08-31", Today(now, nil))
	assert.Equal(t, "2026-08-31", Today(now, time.UTC))
	assert.Equal(t, "2026-08-30", Today(now, bogota))
}
