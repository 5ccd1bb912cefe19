// Package queue defines message payloads exchanged over the message broker.
package queue

// PaymentRecordedEvent is published when a payment is successfully
// recorded against an invoice.  It carries enough information for
// downstream consumers (audit log, notifications, analytics) without
// querying the primary database.
type PaymentRecordedEvent struct {
	InvoiceID       uint64 `json:"invoice_id"`
	InvoiceNumber   string `json:"invoice_number"`
	HotelID         uint64 `json:"hotel_id"`
	ReservationCode string `json:"reservation_code,omitempty"`
	MethodID        uint64 `json:"method_id"`
	MethodName      string `json:"method_name"`
	AmountCents     uint32 `json:"amount_cents"`
	BalanceCents    uint32 `json:"balance_cents"`
	InvoiceStatus   string `json:"invoice_status"`
	PaidAt          string `json:"paid_at"`
	RecordedAt      string `json:"recorded_at"`
}
