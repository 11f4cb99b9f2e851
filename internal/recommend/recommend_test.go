package recommend

import (
	"testing"

	"github.com/Kerhoff/KlaGear/internal/models"
)

var anchor = models.GearItem{
	ID:          "fx6",
	Name:        "Sony FX6 Cinema Camera",
	Category:    "cameras",
	PricePerDay: 350000,
	Available:   true,
}

func testCatalog() []models.GearItem {
	return []models.GearItem{
		anchor,
		{ID: "cn-e", Name: "Canon CN-E 50mm Lens", Category: "lenses", PricePerDay: 80000, Available: true},
		{ID: "fx3", Name: "Sony FX3 Camera", Category: "cameras", PricePerDay: 250000},
		{ID: "rs3", Name: "DJI RS3 Pro Gimbal", Category: "grip", PricePerDay: 60000, Available: true, Featured: true},
		{ID: "ntg3", Name: "Rode NTG3 Microphone", Category: "audio", PricePerDay: 40000},
		{ID: "600d", Name: "Aputure 600D", Category: "lighting", PricePerDay: 300000},
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		// complementary 5 + camera/lens 3 + cinema/lens 3 + available 2
		{"cn-e", 13},
		// same category 2 + price 1
		{"fx3", 3},
		// complementary 5 + camera/gimbal 3 + featured 1 + available 2
		{"rs3", 11},
		{"ntg3", 0},
		// price 1
		{"600d", 1},
	}

	byID := map[string]models.GearItem{}
	for _, g := range testCatalog() {
		byID[g.ID] = g
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := Score(anchor, byID[tt.id]); got != tt.want {
				t.Errorf("Score(%s) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	got := Recommend(testCatalog(), anchor, 10)

	want := []string{"cn-e", "rs3", "fx3", "600d"}
	if len(got) != len(want) {
		t.Fatalf("Recommend() returned %d items, want %d", len(got), len(want))
	}
	for i, g := range got {
		if g.ID != want[i] {
			t.Errorf("Recommend()[%d] = %s, want %s", i, g.ID, want[i])
		}
		if g.ID == anchor.ID {
			t.Error("Recommend() included the anchor item")
		}
		if g.ID == "ntg3" {
			t.Error("Recommend() included a zero-score item")
		}
	}
}

func TestRecommend_Limit(t *testing.T) {
	got := Recommend(testCatalog(), anchor, 2)
	if len(got) != 2 || got[0].ID != "cn-e" || got[1].ID != "rs3" {
		t.Errorf("Recommend(limit=2) = %v", got)
	}
}

func TestRecommend_TiesKeepCatalogOrder(t *testing.T) {
	a := models.GearItem{ID: "a", Name: "Thing", Category: "misc", PricePerDay: 1000}
	catalog := []models.GearItem{
		a,
		{ID: "x", Name: "Other", Category: "misc2", Available: true},
		{ID: "y", Name: "Another", Category: "misc2", Available: true},
	}

	got := Scores(catalog, a)
	if len(got) != 2 || got[0].Item.ID != "x" || got[1].Item.ID != "y" {
		t.Errorf("Scores() = %+v, want x then y", got)
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	if got := Recommend(nil, anchor, 5); len(got) != 0 {
		t.Errorf("Recommend(nil) = %v, want empty", got)
	}
}

func TestPriceNear(t *testing.T) {
	if !priceNear(0, 0) {
		t.Error("priceNear(0, 0) = false, want true")
	}
	if !priceNear(100, 140) {
		t.Error("priceNear(100, 140) = false, want true")
	}
	if priceNear(100, 200) {
		t.Error("priceNear(100, 200) = true, want false")
	}
}
