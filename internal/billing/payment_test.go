package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-pms/internal/model"
)

func testInvoice(total, balance uint32) *model.Invoice {
	return &model.Invoice{
		ID:           7,
		Number:       "INV-0007",
		Status:       model.InvoiceSent,
		TotalCents:   total,
		BalanceCents: balance,
	}
}

func activeMethod() *model.PaymentMethod {
	return &model.PaymentMethod{ID: 3, Name: "Cash", Status: model.PaymentMethodActive}
}

func TestApply_FullPaymentMarksPaid(t *testing.T) {
	inv := testInvoice(30000, 30000)

	p, err := Apply(inv, activeMethod(), PaymentRequest{AmountCents: 30000, MethodID: 3, PaidAt: "2026-08-30"})
	require.NoError(t, err)

	assert.Equal(t, uint32(0), inv.BalanceCents)
	assert.Equal(t, model.InvoicePaid, inv.Status)
	require.Len(t, inv.Payments, 1)
	assert.Equal(t, uint32(30000), p.AmountCents)
	assert.Equal(t, uint64(3), p.MethodID)
}

func TestApply_PartialPaymentKeepsStatus(t *testing.T) {
	inv := testInvoice(30000, 30000)

	_, err := Apply(inv, activeMethod(), PaymentRequest{AmountCents: 10000, MethodID: 3, PaidAt: "2026-08-30"})
	require.NoError(t, err)

	assert.Equal(t, uint32(20000), inv.BalanceCents)
	assert.Equal(t, model.InvoiceSent, inv.Status)
	assert.Len(t, inv.Payments, 1)
}

func TestApply_OverpaymentRejectedUnchanged(t *testing.T) {
	inv := testInvoice(30000, 30000)

	_, err := Apply(inv, activeMethod(), PaymentRequest{AmountCents: 40000, MethodID: 3, PaidAt: "2026-08-30"})
	require.ErrorIs(t, err, ErrAmountExceedsBalance)

	// no partial mutation
	assert.Equal(t, uint32(30000), inv.BalanceCents)
	assert.Equal(t, model.InvoiceSent, inv.Status)
	assert.Empty(t, inv.Payments)
}

func TestApply_ZeroAmountRejected(t *testing.T) {
	inv := testInvoice(30000, 30000)

	_, err := Apply(inv, activeMethod(), PaymentRequest{AmountCents: 0, MethodID: 3, PaidAt: "2026-08-30"})
	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.Empty(t, inv.Payments)
}

func TestApply_MethodGating(t *testing.T) {
	inactive := &model.PaymentMethod{ID: 4, Name: "Legacy card", Status: model.PaymentMethodInactive}

	tests := []struct {
		name   string
		method *model.PaymentMethod
	}{
		{"missing method", nil},
		{"inactive method", inactive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv := testInvoice(30000, 30000)
			_, err := Apply(inv, tc.method, PaymentRequest{AmountCents: 5000, MethodID: 4, PaidAt: "2026-08-30"})
			require.ErrorIs(t, err, ErrInvalidMethod)
			assert.Equal(t, uint32(30000), inv.BalanceCents)
			assert.Empty(t, inv.Payments)
		})
	}
}

func TestApply_BalanceInvariantOverSequence(t *testing.T) {
	inv := testInvoice(50000, 50000)
	amounts := []uint32{12000, 8000, 60000, 30000, 1, 0, 10000}

	for _, amt := range amounts {
		before := inv.BalanceCents
		_, err := Apply(inv, activeMethod(), PaymentRequest{AmountCents: amt, MethodID: 3, PaidAt: "2026-08-30"})
		if err != nil {
			assert.Equal(t, before, inv.BalanceCents)
		}
		// balance == total - sum(payments) and never negative (uint)
		var paid uint32
		for _, p := range inv.Payments {
			paid += p.AmountCents
		}
		assert.Equal(t, inv.TotalCents-paid, inv.BalanceCents)
	}

	assert.Equal(t, uint32(0), inv.BalanceCents)
	assert.Equal(t, model.InvoicePaid, inv.Status)
	assert.Len(t, inv.Payments, 3)
}
