package compare

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Kerhoff/KlaGear/internal/models"
)

func TestCompare_ItemCount(t *testing.T) {
	one := []models.GearItem{{ID: "a"}}
	five := []models.GearItem{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}

	for _, items := range [][]models.GearItem{nil, one, five} {
		if _, err := Compare(items); !errors.Is(err, ErrItemCount) {
			t.Errorf("Compare(%d items) error = %v, want ErrItemCount", len(items), err)
		}
	}
}

func TestCompare_SpecMatrix(t *testing.T) {
	items := []models.GearItem{
		{ID: "fx6", Specs: map[string]string{"Sensor": "Full Frame", "Mount": "E"}},
		{ID: "c70", Specs: map[string]string{"Sensor": "Super 35", "ND": "10 stops"}},
	}

	res, err := Compare(items)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	want := []SpecRow{
		{Name: "Mount", Values: []string{"E", NotApplicable}},
		{Name: "ND", Values: []string{NotApplicable, "10 stops"}},
		{Name: "Sensor", Values: []string{"Full Frame", "Super 35"}},
	}
	if !reflect.DeepEqual(res.Specs, want) {
		t.Errorf("Specs = %+v, want %+v", res.Specs, want)
	}
}

func TestCompare_PricesAndSavings(t *testing.T) {
	items := []models.GearItem{
		{ID: "fx6", PricePerDay: 350000, PricePerWeek: 1750000},
		{ID: "fx3", PricePerDay: 200000, PricePerWeek: 1200000},
	}

	res, err := Compare(items)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	daily := res.Prices[0]
	if daily.Cells[0].Delta != 150000 || daily.Cells[1].Delta != 0 || !daily.Cells[1].IsLowest {
		t.Errorf("daily row = %+v", daily)
	}
	weekly := res.Prices[1]
	if weekly.Cells[0].Delta != 550000 || !weekly.Cells[1].IsLowest {
		t.Errorf("weekly row = %+v", weekly)
	}

	if s := res.WeeklySavings[0]; s.Amount != 700000 || s.Percent < 28.57 || s.Percent > 28.58 {
		t.Errorf("fx6 savings = %+v, want 700000 (~28.57%%)", s)
	}
	if s := res.WeeklySavings[1]; s.Amount != 200000 {
		t.Errorf("fx3 savings = %+v, want 200000", s)
	}
}

func TestCompare_FreeItemHasNoSavingsPercent(t *testing.T) {
	res, err := Compare([]models.GearItem{{ID: "a"}, {ID: "b", PricePerDay: 10, PricePerWeek: 50}})
	if err != nil {
		t.Fatal(err)
	}
	if res.WeeklySavings[0].Percent != 0 {
		t.Errorf("Percent = %v, want 0", res.WeeklySavings[0].Percent)
	}
}

func TestValuePropositions(t *testing.T) {
	tests := []struct {
		name  string
		items []models.GearItem
		want  map[string][]string
	}{
		{
			name: "all available gets no availability badge",
			items: []models.GearItem{
				{ID: "a", PricePerDay: 100, PricePerWeek: 600, Available: true},
				{ID: "b", PricePerDay: 200, PricePerWeek: 500, Available: true, Featured: true},
				{ID: "c", PricePerDay: 300, PricePerWeek: 900, Available: true},
			},
			want: map[string][]string{
				"a": {BadgeMostAffordable},
				"b": {BadgeBestWeeklyValue, BadgeFeatured},
			},
		},
		{
			name: "exactly one available",
			items: []models.GearItem{
				{ID: "a", PricePerDay: 100, PricePerWeek: 500, Available: false},
				{ID: "b", PricePerDay: 200, PricePerWeek: 900, Available: true},
				{ID: "c", PricePerDay: 300, PricePerWeek: 900, Available: false},
			},
			want: map[string][]string{
				"a": {BadgeMostAffordable, BadgeBestWeeklyValue},
				"b": {BadgeCurrentlyAvailable},
			},
		},
		{
			name: "none available and ties resolved to first",
			items: []models.GearItem{
				{ID: "a", PricePerDay: 100, PricePerWeek: 500},
				{ID: "b", PricePerDay: 100, PricePerWeek: 500},
			},
			want: map[string][]string{
				"a": {BadgeMostAffordable, BadgeBestWeeklyValue},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValuePropositions(tt.items)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValuePropositions() = %v, want %v", got, tt.want)
			}
		})
	}
}
