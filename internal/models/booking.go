package models

import "time"

// BookingChannel is the handoff channel the customer picked
type BookingChannel string

const (
	BookingChannelWhatsApp BookingChannel = "whatsapp"
	BookingChannelPhone    BookingChannel = "phone"
	BookingChannelEmail    BookingChannel = "email"
	BookingChannelDeposit  BookingChannel = "deposit"
)

// BookingStatus tracks a booking request. Requests are confirmed by a human,
// so the backend only ever writes "pending".
type BookingStatus string

const (
	BookingStatusPending BookingStatus = "pending"
)

// LineItem is one gear selection inside a quote. When Days is zero the
// quote-level day count applies.
type LineItem struct {
	Gear     GearItem `json:"gear"`
	Quantity int      `json:"quantity"`
	Days     int      `json:"days,omitempty"`
}

// BookingItem is the persisted snapshot of a line item
type BookingItem struct {
	ID          int64  `json:"id" db:"id"`
	BookingID   int64  `json:"bookingId" db:"booking_id"`
	GearID      string `json:"gearId" db:"gear_id"`
	GearName    string `json:"gearName" db:"gear_name"`
	Quantity    int    `json:"quantity" db:"quantity"`
	PricePerDay int64  `json:"pricePerDay" db:"price_per_day"`
}

// QuoteTotals holds the rounded money amounts stored with a booking request
type QuoteTotals struct {
	Subtotal       int64 `json:"subtotal" db:"subtotal"`
	WeeklyDiscount int64 `json:"weeklyDiscount" db:"weekly_discount"`
	BundleDiscount int64 `json:"bundleDiscount" db:"bundle_discount"`
	Insurance      int64 `json:"insurance" db:"insurance"`
	Tax            int64 `json:"tax" db:"tax"`
	Total          int64 `json:"total" db:"total"`
	Deposit        int64 `json:"deposit" db:"deposit"`
}

// BookingRequest represents a customer's request to rent gear for a date range
type BookingRequest struct {
	ID            int64          `json:"id" db:"id"`
	Reference     string         `json:"reference" db:"reference"`
	CustomerName  string         `json:"customerName" db:"customer_name"`
	CustomerPhone string         `json:"customerPhone" db:"customer_phone"`
	CustomerEmail string         `json:"customerEmail" db:"customer_email"`
	Company       string         `json:"company" db:"company"`
	Notes         string         `json:"notes" db:"notes"`
	StartDate     time.Time      `json:"startDate" db:"start_date"`
	EndDate       time.Time      `json:"endDate" db:"end_date"`
	Days          int            `json:"days" db:"days"`
	Channel       BookingChannel `json:"channel" db:"channel"`
	Status        BookingStatus  `json:"status" db:"status"`
	Totals        QuoteTotals    `json:"totals"`
	Items         []BookingItem  `json:"items,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
}

// IsPending returns true if nobody has confirmed the request yet
func (b *BookingRequest) IsPending() bool {
	return b.Status == BookingStatusPending
}
