// Package pricing turns a set of line items and a rental length into a quote.
//
// The rules are applied in a fixed order and every intermediate amount is kept
// on the Breakdown so each can be displayed on its own:
//
//	subtotal        = Σ pricePerDay × quantity × days
//	weekly discount = subtotal × 2/7 when the rental is 7+ days
//	bundle discount = subtotal × 10% when 3+ distinct items are rented
//	after discounts = subtotal − weekly − bundle
//	insurance       = after discounts × 5%
//	tax             = (after discounts + insurance) × 18%
//	total           = after discounts + insurance + tax
//	deposit         = total × 50%
//
// Both discounts are taken from the same undiscounted subtotal; they add up,
// they do not compound.
package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/Kerhoff/KlaGear/internal/models"
)

const (
	WeeklyThresholdDays = 7
	WeeklyFreeDays      = 2
	BundleThreshold     = 3
	BundleRate          = 0.10
	InsuranceRate       = 0.05
	TaxRate             = 0.18
	DepositRate         = 0.50
)

// Breakdown is a computed quote. Amounts are in whole-shilling units but kept
// as floats until Rounded is called.
type Breakdown struct {
	Days           int     `json:"days"`
	Subtotal       float64 `json:"subtotal"`
	WeeklyDiscount float64 `json:"weeklyDiscount"`
	BundleDiscount float64 `json:"bundleDiscount"`
	AfterDiscounts float64 `json:"afterDiscounts"`
	Insurance      float64 `json:"insurance"`
	Tax            float64 `json:"tax"`
	Total          float64 `json:"total"`
	Deposit        float64 `json:"deposit"`
}

// ComputeQuote prices the line items over the given number of days. A line
// item with its own Days overrides days for that line. Inputs are assumed
// valid; see ValidateLineItems.
func ComputeQuote(items []models.LineItem, days int) Breakdown {
	b := Breakdown{Days: days}
	if len(items) == 0 {
		return b
	}

	distinct := make(map[string]struct{}, len(items))
	for _, it := range items {
		lineDays := days
		if it.Days > 0 {
			lineDays = it.Days
		}
		b.Subtotal += float64(it.Gear.PricePerDay) * float64(it.Quantity) * float64(lineDays)
		distinct[it.Gear.ID] = struct{}{}
	}

	if days >= WeeklyThresholdDays {
		b.WeeklyDiscount = b.Subtotal * WeeklyFreeDays / WeeklyThresholdDays
	}
	if len(distinct) >= BundleThreshold {
		b.BundleDiscount = b.Subtotal * BundleRate
	}

	b.AfterDiscounts = b.Subtotal - b.WeeklyDiscount - b.BundleDiscount
	b.Insurance = b.AfterDiscounts * InsuranceRate
	b.Tax = (b.AfterDiscounts + b.Insurance) * TaxRate
	b.Total = b.AfterDiscounts + b.Insurance + b.Tax
	b.Deposit = b.Total * DepositRate
	return b
}

// Balance is what is left to pay after the deposit.
func (b Breakdown) Balance() float64 {
	return b.Total - b.Deposit
}

// Rounded rounds the components to whole shillings and derives Total and
// Deposit from those, so the displayed lines always add up:
// Total == Subtotal - WeeklyDiscount - BundleDiscount + Insurance + Tax.
func (b Breakdown) Rounded() models.QuoteTotals {
	t := models.QuoteTotals{
		Subtotal:       round(b.Subtotal),
		WeeklyDiscount: round(b.WeeklyDiscount),
		BundleDiscount: round(b.BundleDiscount),
		Insurance:      round(b.Insurance),
		Tax:            round(b.Tax),
	}
	t.Total = t.Subtotal - t.WeeklyDiscount - t.BundleDiscount + t.Insurance + t.Tax
	t.Deposit = round(float64(t.Total) * DepositRate)
	return t
}

func round(v float64) int64 {
	return int64(math.Round(v))
}

var (
	ErrNoItems         = errors.New("at least one line item is required")
	ErrInvalidDays     = errors.New("days must be at least 1")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// ValidateLineItems rejects the inputs ComputeQuote does not guard against.
func ValidateLineItems(items []models.LineItem, days int) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	if days < 1 {
		return ErrInvalidDays
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return fmt.Errorf("%s: %w", it.Gear.ID, ErrInvalidQuantity)
		}
		if it.Days < 0 {
			return fmt.Errorf("%s: %w", it.Gear.ID, ErrInvalidDays)
		}
	}
	return nil
}
