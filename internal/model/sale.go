package model

import "time"

// Sale statuses.  Point-of-sale tickets are independent of
// reservations and invoices but may reference a guest.
const (
	SalePending   = "PENDING"
	SalePaid      = "PAID"
	SaleCancelled = "CANCELLED"
)

// Sale models a row in the `sales` table.  Subtotal, tax and total are
// computed server-side from the line items when the sale is created.
//
// Fields:
//  ID            – primary key identifier.
//  HotelID       – owning hotel.
//  GuestID       – optional guest reference (room-charge style sales).
//  Status        – see constants above.
//  SubtotalCents – sum of line amounts before tax.
//  TaxCents      – tax amount.
//  TotalCents    – subtotal + tax.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
//  Items         – line items, loaded by the repository.
type Sale struct {
	ID            uint64     `json:"id"`
	HotelID       uint64     `json:"hotel_id"`
	GuestID       *uint64    `json:"guest_id"`
	Status        string     `json:"status"`
	SubtotalCents uint32     `json:"subtotal_cents"`
	TaxCents      uint32     `json:"tax_cents"`
	TotalCents    uint32     `json:"total_cents"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Items         []SaleItem `json:"items,omitempty"`
}

// SaleItem is a line on a point-of-sale ticket.
//
// Fields:
//  ID             – primary key identifier.
//  SaleID         – owning sale.
//  Description    – item description.
//  Quantity       – units sold.
//  UnitPriceCents – price per unit in cents.
//  AmountCents    – quantity * unit price.
type SaleItem struct {
	ID             uint64 `json:"id"`
	SaleID         uint64 `json:"sale_id"`
	Description    string `json:"description"`
	Quantity       uint32 `json:"quantity"`
	UnitPriceCents uint32 `json:"unit_price_cents"`
	AmountCents    uint32 `json:"amount_cents"`
}
