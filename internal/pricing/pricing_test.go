package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/Kerhoff/KlaGear/internal/models"
)

func gear(id string, perDay int64) models.GearItem {
	return models.GearItem{ID: id, Name: id, PricePerDay: perDay, PricePerWeek: perDay * 5}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestComputeQuote_WeeklyDiscount(t *testing.T) {
	items := []models.LineItem{{Gear: gear("fx6", 100000), Quantity: 1}}

	got := ComputeQuote(items, 7)
	if got.Subtotal != 700000 {
		t.Errorf("Subtotal = %v, want 700000", got.Subtotal)
	}
	if got.WeeklyDiscount != 200000 {
		t.Errorf("WeeklyDiscount = %v, want 200000", got.WeeklyDiscount)
	}
	if got.AfterDiscounts != 500000 {
		t.Errorf("AfterDiscounts = %v, want 500000", got.AfterDiscounts)
	}

	got = ComputeQuote(items, 6)
	if got.WeeklyDiscount != 0 {
		t.Errorf("WeeklyDiscount for 6 days = %v, want 0", got.WeeklyDiscount)
	}
	if got.Subtotal != 600000 {
		t.Errorf("Subtotal for 6 days = %v, want 600000", got.Subtotal)
	}
}

func TestComputeQuote_BundleDiscount(t *testing.T) {
	tests := []struct {
		name  string
		items []models.LineItem
		days  int
		want  float64
	}{
		{
			name: "three distinct items",
			items: []models.LineItem{
				{Gear: gear("fx6", 100000), Quantity: 1},
				{Gear: gear("cine-lens", 50000), Quantity: 2},
				{Gear: gear("aputure-600d", 80000), Quantity: 1, Days: 3},
			},
			days: 2,
			// 200000 + 200000 + 240000
			want: 64000,
		},
		{
			name: "two distinct items",
			items: []models.LineItem{
				{Gear: gear("fx6", 100000), Quantity: 1},
				{Gear: gear("cine-lens", 50000), Quantity: 4},
			},
			days: 2,
			want: 0,
		},
		{
			name: "same item repeated is not a bundle",
			items: []models.LineItem{
				{Gear: gear("fx6", 100000), Quantity: 1},
				{Gear: gear("fx6", 100000), Quantity: 1},
				{Gear: gear("fx6", 100000), Quantity: 1},
			},
			days: 1,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeQuote(tt.items, tt.days)
			if !almostEqual(got.BundleDiscount, tt.want) {
				t.Errorf("BundleDiscount = %v, want %v", got.BundleDiscount, tt.want)
			}
			if tt.want > 0 && !almostEqual(got.BundleDiscount, got.Subtotal*BundleRate) {
				t.Errorf("BundleDiscount = %v, want 10%% of subtotal %v", got.BundleDiscount, got.Subtotal)
			}
		})
	}
}

func TestComputeQuote_DiscountsAreAdditive(t *testing.T) {
	items := []models.LineItem{
		{Gear: gear("a", 70000), Quantity: 1},
		{Gear: gear("b", 70000), Quantity: 1},
		{Gear: gear("c", 70000), Quantity: 1},
	}

	got := ComputeQuote(items, 7)
	// subtotal 1,470,000; weekly 420,000; bundle 147,000
	if got.Subtotal != 1470000 {
		t.Fatalf("Subtotal = %v, want 1470000", got.Subtotal)
	}
	if !almostEqual(got.WeeklyDiscount, 420000) || !almostEqual(got.BundleDiscount, 147000) {
		t.Errorf("discounts = %v / %v, want 420000 / 147000", got.WeeklyDiscount, got.BundleDiscount)
	}
	if !almostEqual(got.AfterDiscounts, 903000) {
		t.Errorf("AfterDiscounts = %v, want 903000", got.AfterDiscounts)
	}
}

func TestComputeQuote_Reconciles(t *testing.T) {
	inputs := []struct {
		items []models.LineItem
		days  int
	}{
		{[]models.LineItem{{Gear: gear("a", 123457), Quantity: 3}}, 1},
		{[]models.LineItem{{Gear: gear("a", 99999), Quantity: 1}, {Gear: gear("b", 1), Quantity: 7}}, 9},
		{[]models.LineItem{
			{Gear: gear("a", 35000), Quantity: 2},
			{Gear: gear("b", 45000), Quantity: 1},
			{Gear: gear("c", 150000), Quantity: 1},
			{Gear: gear("d", 20000), Quantity: 6},
		}, 14},
	}

	for _, in := range inputs {
		b := ComputeQuote(in.items, in.days)
		if b.Total != b.Subtotal-b.WeeklyDiscount-b.BundleDiscount+b.Insurance+b.Tax {
			t.Errorf("Total %v does not reconcile with its parts %+v", b.Total, b)
		}
		compounded := (b.Subtotal - b.WeeklyDiscount - b.BundleDiscount) * 1.05 * 1.18
		if math.Abs(b.Total-compounded) > 1e-6*math.Max(1, compounded) {
			t.Errorf("Total = %v, want %v", b.Total, compounded)
		}
		if b.Deposit != b.Total*0.5 {
			t.Errorf("Deposit = %v, want half of %v", b.Deposit, b.Total)
		}
		if !almostEqual(b.Balance(), b.Deposit) {
			t.Errorf("Balance = %v, want %v", b.Balance(), b.Deposit)
		}
	}
}

func TestComputeQuote_Empty(t *testing.T) {
	got := ComputeQuote(nil, 10)
	if got.Subtotal != 0 || got.Total != 0 || got.Deposit != 0 || got.WeeklyDiscount != 0 {
		t.Errorf("ComputeQuote(nil) = %+v, want all zero", got)
	}
}

func TestBreakdown_Rounded(t *testing.T) {
	b := ComputeQuote([]models.LineItem{{Gear: gear("fx6", 100000), Quantity: 1}}, 7)
	r := b.Rounded()

	// 500000 × 1.05 = 525000; × 1.18 = 619500
	if r.Insurance != 25000 || r.Tax != 94500 || r.Total != 619500 || r.Deposit != 309750 {
		t.Errorf("Rounded() = %+v", r)
	}
}

func TestBreakdown_RoundedReconciles(t *testing.T) {
	var mismatches int
	for price := int64(1000); price <= 20000; price += 1000 {
		for days := 1; days <= 14; days++ {
			for qty := 1; qty <= 3; qty++ {
				items := []models.LineItem{
					{Gear: gear("a", price), Quantity: qty},
					{Gear: gear("b", price*7/3), Quantity: 1},
					{Gear: gear("c", price/3+17), Quantity: 2},
				}
				r := ComputeQuote(items, days).Rounded()

				sum := r.Subtotal - r.WeeklyDiscount - r.BundleDiscount + r.Insurance + r.Tax
				if r.Total != sum {
					mismatches++
					t.Errorf("price=%d days=%d qty=%d: Total = %d, components sum to %d", price, days, qty, r.Total, sum)
				}
				if want := round(float64(r.Total) * DepositRate); r.Deposit != want {
					t.Errorf("price=%d days=%d qty=%d: Deposit = %d, want %d", price, days, qty, r.Deposit, want)
				}
			}
		}
		if mismatches > 5 {
			t.FailNow()
		}
	}
}

func TestBreakdown_RoundedSmallAmounts(t *testing.T) {
	items := []models.LineItem{
		{Gear: gear("a", 1000), Quantity: 1},
		{Gear: gear("b", 1231), Quantity: 1},
		{Gear: gear("c", 1116), Quantity: 1},
	}
	r := ComputeQuote(items, 2).Rounded()
	if got := r.Subtotal - r.BundleDiscount + r.Insurance + r.Tax; r.Total != got {
		t.Errorf("Rounded() = %+v, components sum to %d", r, got)
	}
}

func TestValidateLineItems(t *testing.T) {
	ok := []models.LineItem{{Gear: gear("fx6", 100000), Quantity: 1}}

	tests := []struct {
		name  string
		items []models.LineItem
		days  int
		want  error
	}{
		{"valid", ok, 3, nil},
		{"no items", nil, 3, ErrNoItems},
		{"zero days", ok, 0, ErrInvalidDays},
		{"zero quantity", []models.LineItem{{Gear: gear("fx6", 1), Quantity: 0}}, 1, ErrInvalidQuantity},
		{"negative quantity", []models.LineItem{{Gear: gear("fx6", 1), Quantity: -2}}, 1, ErrInvalidQuantity},
		{"negative line days", []models.LineItem{{Gear: gear("fx6", 1), Quantity: 1, Days: -1}}, 1, ErrInvalidDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLineItems(tt.items, tt.days)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateLineItems() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFormatUGX(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "UGX 0"},
		{999, "UGX 999"},
		{1234567, "UGX 1,234,567"},
		{309749.6, "UGX 309,750"},
	}
	for _, tt := range tests {
		if got := FormatUGX(tt.in); got != tt.want {
			t.Errorf("FormatUGX(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
