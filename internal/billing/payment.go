// Package billing implements the invoice payment recorder: validation
// and application of a payment against a single invoice aggregate.
// The rules live here as pure functions so the invariants can be
// tested in isolation; the repository layer mirrors the same guards in
// SQL when persisting the result inside a transaction.
package billing

import (
	"errors"

	"github.com/iliyamo/hotel-pms/internal/model"
)

// Validation errors for recording a payment.  All preconditions must
// hold or the whole payment is rejected with no partial mutation;
// handlers surface these as 4xx responses.
var (
	// ErrInvalidMethod is returned when the payment method does not
	// exist or is not ACTIVE.
	ErrInvalidMethod = errors.New("payment method invalid or inactive")
	// ErrInvalidAmount is returned when the amount is not positive.
	ErrInvalidAmount = errors.New("payment amount must be positive")
	// ErrAmountExceedsBalance is returned when the amount is larger
	// than the invoice's remaining balance.  Overpayments are rejected
	// outright rather than partially applied.
	ErrAmountExceedsBalance = errors.New("payment amount exceeds invoice balance")
)

// PaymentRequest carries the caller-supplied fields for a new payment.
type PaymentRequest struct {
	AmountCents uint32
	MethodID    uint64
	PaidAt      string // ISO YYYY-MM-DD
	Reference   *string
	Notes       *string
}

// Validate checks the payment preconditions against an invoice and the
// resolved payment method without mutating anything.  method may be
// nil when the ID did not resolve.
func Validate(inv *model.Invoice, method *model.PaymentMethod, req PaymentRequest) error {
	if method == nil || method.Status != model.PaymentMethodActive {
		return ErrInvalidMethod
	}
	if req.AmountCents == 0 {
		return ErrInvalidAmount
	}
	if req.AmountCents > inv.BalanceCents {
		return ErrAmountExceedsBalance
	}
	return nil
}

// Apply validates and applies a payment to the invoice aggregate.  On
// success it appends the payment record, decrements the balance, and
// flips the status to PAID when the balance reaches exactly zero;
// partial payments leave the status alone.  On failure the invoice is
// left untouched and the typed validation error is returned.
func Apply(inv *model.Invoice, method *model.PaymentMethod, req PaymentRequest) (model.InvoicePayment, error) {
	if err := Validate(inv, method, req); err != nil {
		return model.InvoicePayment{}, err
	}
	p := model.InvoicePayment{
		InvoiceID:   inv.ID,
		MethodID:    method.ID,
		AmountCents: req.AmountCents,
		PaidAt:      req.PaidAt,
		Reference:   req.Reference,
		Notes:       req.Notes,
	}
	inv.Payments = append(inv.Payments, p)
	inv.BalanceCents -= req.AmountCents
	if inv.BalanceCents == 0 {
		inv.Status = model.InvoicePaid
	}
	return p, nil
}
