package search

import (
	"sort"
	"strings"

	"github.com/Kerhoff/KlaGear/internal/models"
)

// SortMode selects a catalog ordering
type SortMode string

const (
	SortFeatured  SortMode = "featured"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
	SortNameAsc   SortMode = "name-asc"
	SortNameDesc  SortMode = "name-desc"
	SortNewest    SortMode = "newest"
)

// ParseSortMode maps a query value to a mode, defaulting to featured.
func ParseSortMode(s string) SortMode {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SortPriceLow, SortPriceHigh, SortNameAsc, SortNameDesc, SortNewest:
		return m
	default:
		return SortFeatured
	}
}

// Sort returns a sorted copy of gear. The input slice is left untouched.
func Sort(gear []models.GearItem, mode SortMode) []models.GearItem {
	out := make([]models.GearItem, len(gear))
	copy(out, gear)

	var less func(a, b models.GearItem) bool
	switch mode {
	case SortPriceLow:
		less = func(a, b models.GearItem) bool { return a.PricePerDay < b.PricePerDay }
	case SortPriceHigh:
		less = func(a, b models.GearItem) bool { return a.PricePerDay > b.PricePerDay }
	case SortNameAsc:
		less = func(a, b models.GearItem) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortNameDesc:
		less = func(a, b models.GearItem) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	case SortNewest:
		less = func(a, b models.GearItem) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		less = featuredLess
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// featuredLess orders featured before not, then available before not, then
// cheaper first. Each key only breaks ties left by the one before it.
func featuredLess(a, b models.GearItem) bool {
	if a.Featured != b.Featured {
		return a.Featured
	}
	if a.Available != b.Available {
		return a.Available
	}
	return a.PricePerDay < b.PricePerDay
}
