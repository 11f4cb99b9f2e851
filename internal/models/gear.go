package models

import "time"

// Category groups gear on the catalog (cameras, lenses, lighting, ...)
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Icon string `json:"icon" db:"icon"`
}

// GearItem represents a rentable equipment unit
type GearItem struct {
	ID           string            `json:"id" db:"id"`
	Name         string            `json:"name" db:"name"`
	Category     string            `json:"category" db:"category_id"`
	Description  string            `json:"description" db:"description"`
	PricePerDay  int64             `json:"pricePerDay" db:"price_per_day"`
	PricePerWeek int64             `json:"pricePerWeek" db:"price_per_week"`
	Specs        map[string]string `json:"specs"`
	Image        string            `json:"image" db:"image"`
	Available    bool              `json:"available" db:"available"`
	Featured     bool              `json:"featured" db:"featured"`
	BookedDates  []string          `json:"bookedDates"`
	CreatedAt    time.Time         `json:"createdAt" db:"created_at"`
}

// WeeklySavings returns how much a full week costs less than seven single days
func (g *GearItem) WeeklySavings() int64 {
	return g.PricePerDay*7 - g.PricePerWeek
}
