package search

import "github.com/Kerhoff/KlaGear/internal/models"

// Filter narrows the catalog. Zero values disable a criterion.
type Filter struct {
	Category      string
	MinPrice      int64
	MaxPrice      int64
	AvailableOnly bool
}

// Apply keeps the items matching every set criterion, preserving order.
func Apply(gear []models.GearItem, f Filter) []models.GearItem {
	out := make([]models.GearItem, 0, len(gear))
	for _, g := range gear {
		if f.Category != "" && f.Category != "all" && g.Category != f.Category {
			continue
		}
		if f.MinPrice > 0 && g.PricePerDay < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && g.PricePerDay > f.MaxPrice {
			continue
		}
		if f.AvailableOnly && !g.Available {
			continue
		}
		out = append(out, g)
	}
	return out
}
