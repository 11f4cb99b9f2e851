package compare

import (
	"errors"
	"sort"

	"github.com/Kerhoff/KlaGear/internal/models"
)

const (
	MinItems = 2
	MaxItems = 4

	// NotApplicable fills a spec cell for an item that lacks the spec.
	NotApplicable = "N/A"
)

// ErrItemCount is returned when fewer than MinItems or more than MaxItems
// items are compared.
var ErrItemCount = errors.New("compare needs between 2 and 4 items")

// SpecRow is one spec name with a value per compared item, in item order
type SpecRow struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// PriceCell is one item's price and how far it sits above the cheapest
type PriceCell struct {
	Amount   int64 `json:"amount"`
	Delta    int64 `json:"delta"`
	IsLowest bool  `json:"isLowest"`
}

// PriceRow compares one rate across all items
type PriceRow struct {
	Label string      `json:"label"`
	Cells []PriceCell `json:"cells"`
}

// Savings is what booking a full week saves over seven single days
type Savings struct {
	GearID  string  `json:"gearId"`
	Amount  int64   `json:"amount"`
	Percent float64 `json:"percent"`
}

// Result is the aligned comparison of 2–4 items
type Result struct {
	Items         []models.GearItem   `json:"items"`
	Specs         []SpecRow           `json:"specs"`
	Prices        []PriceRow          `json:"prices"`
	WeeklySavings []Savings           `json:"weeklySavings"`
	Badges        map[string][]string `json:"badges"`
}

// Compare aligns the specs and prices of the given items.
func Compare(items []models.GearItem) (*Result, error) {
	if len(items) < MinItems || len(items) > MaxItems {
		return nil, ErrItemCount
	}

	res := &Result{
		Items:  items,
		Specs:  specMatrix(items),
		Badges: ValuePropositions(items),
	}

	res.Prices = []PriceRow{
		priceRow("Daily rate", items, func(g models.GearItem) int64 { return g.PricePerDay }),
		priceRow("Weekly rate", items, func(g models.GearItem) int64 { return g.PricePerWeek }),
	}

	for _, g := range items {
		s := Savings{GearID: g.ID, Amount: g.WeeklySavings()}
		if full := g.PricePerDay * 7; full > 0 {
			s.Percent = float64(s.Amount) / float64(full) * 100
		}
		res.WeeklySavings = append(res.WeeklySavings, s)
	}

	return res, nil
}

// specMatrix builds one row per spec name found on any item, sorted by name.
func specMatrix(items []models.GearItem) []SpecRow {
	seen := make(map[string]struct{})
	for _, g := range items {
		for k := range g.Specs {
			seen[k] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)

	rows := make([]SpecRow, 0, len(names))
	for _, name := range names {
		row := SpecRow{Name: name, Values: make([]string, len(items))}
		for i, g := range items {
			if v, ok := g.Specs[name]; ok {
				row.Values[i] = v
			} else {
				row.Values[i] = NotApplicable
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func priceRow(label string, items []models.GearItem, price func(models.GearItem) int64) PriceRow {
	lowest := price(items[0])
	for _, g := range items[1:] {
		if p := price(g); p < lowest {
			lowest = p
		}
	}

	row := PriceRow{Label: label, Cells: make([]PriceCell, len(items))}
	for i, g := range items {
		p := price(g)
		row.Cells[i] = PriceCell{Amount: p, Delta: p - lowest, IsLowest: p == lowest}
	}
	return row
}
