package model

import "time"

// Invoice statuses.  PAID is set automatically when a recorded payment
// brings the balance to exactly zero; no other automatic status change
// exists.  Partial payments leave the status untouched.
const (
	InvoiceDraft     = "DRAFT"
	InvoiceSent      = "SENT"
	InvoicePaid      = "PAID"
	InvoiceOverdue   = "OVERDUE"
	InvoiceCancelled = "CANCELLED"
)

// Payment method statuses.  Only ACTIVE methods may be used when
// recording new payments; retired methods stay in the table so that
// historical payments keep a valid reference.
const (
	PaymentMethodActive   = "ACTIVE"
	PaymentMethodInactive = "INACTIVE"
)

// Invoice models a row in the `invoices` table plus its line items and
// payments.  The balance invariant holds at all times:
//
//	balance == total - sum(payments.amount)  and  balance >= 0
//
// An invoice optionally references a reservation through
// ReservationCode (at most one reservation per invoice, and at most
// one invoice per reservation).
//
// Fields:
//  ID              – primary key identifier.
//  HotelID         – owning hotel.
//  Number          – human-facing invoice number, unique per hotel.
//  Status          – see constants above.
//  ReservationCode – linked reservation code (nullable).
//  GuestID         – billed guest (nullable for walk-in sales).
//  SubtotalCents   – sum of line items before tax.
//  TaxCents        – tax amount.
//  TotalCents      – subtotal + tax.
//  BalanceCents    – total minus recorded payments, never negative.
//  IssuedAt        – issue date, ISO YYYY-MM-DD.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
//  Items           – line items, loaded by the repository.
//  Payments        – recorded payments, loaded by the repository.
type Invoice struct {
	ID              uint64           `json:"id"`
	HotelID         uint64           `json:"hotel_id"`
	Number          string           `json:"number"`
	Status          string           `json:"status"`
	ReservationCode *string          `json:"reservation_code"`
	GuestID         *uint64          `json:"guest_id"`
	SubtotalCents   uint32           `json:"subtotal_cents"`
	TaxCents        uint32           `json:"tax_cents"`
	TotalCents      uint32           `json:"total_cents"`
	BalanceCents    uint32           `json:"balance_cents"`
	IssuedAt        string           `json:"issued_at"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Items           []InvoiceItem    `json:"items,omitempty"`
	Payments        []InvoicePayment `json:"payments,omitempty"`
}

// InvoiceItem is a line on an invoice.
//
// Fields:
//  ID             – primary key identifier.
//  InvoiceID      – owning invoice.
//  Description    – free-text line description.
//  Quantity       – units billed.
//  UnitPriceCents – price per unit in cents.
//  AmountCents    – quantity * unit price.
type InvoiceItem struct {
	ID             uint64 `json:"id"`
	InvoiceID      uint64 `json:"invoice_id"`
	Description    string `json:"description"`
	Quantity       uint32 `json:"quantity"`
	UnitPriceCents uint32 `json:"unit_price_cents"`
	AmountCents    uint32 `json:"amount_cents"`
}

// InvoicePayment is an immutable payment record appended to an
// invoice.  Once created it is never updated or deleted; corrections
// are modelled as new documents, not edits.
//
// Fields:
//  ID          – primary key identifier.
//  InvoiceID   – owning invoice.
//  MethodID    – payment method used; must have been ACTIVE when the
//                payment was recorded.
//  AmountCents – amount paid, > 0 and <= the invoice balance at the
//                time of recording.
//  PaidAt      – payment date, ISO YYYY-MM-DD.
//  Reference   – external reference (voucher/transfer number).
//  Notes       – free-text notes.
//  CreatedAt   – timestamp of creation.
type InvoicePayment struct {
	ID          uint64    `json:"id"`
	InvoiceID   uint64    `json:"invoice_id"`
	MethodID    uint64    `json:"method_id"`
	AmountCents uint32    `json:"amount_cents"`
	PaidAt      string    `json:"paid_at"`
	Reference   *string   `json:"reference"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaymentMethod is a channel through which invoice payments are
// recorded (cash, card, transfer).
//
// Fields:
//  ID        – primary key identifier.
//  HotelID   – owning hotel.
//  Name      – display name, unique per hotel.
//  Status    – ACTIVE or INACTIVE.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type PaymentMethod struct {
	ID        uint64    `json:"id"`
	HotelID   uint64    `json:"hotel_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
