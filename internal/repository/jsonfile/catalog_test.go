package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kerhoff/KlaGear/internal/repository"
)

const sample = `{
  "categories": [
    {"id": "cameras", "name": "Cameras", "icon": "camera"},
    {"id": "lighting", "name": "Lighting", "icon": "bulb"}
  ],
  "gear": [
    {
      "id": "fx6",
      "name": "Sony FX6",
      "category": "cameras",
      "description": "Full-frame cinema camera",
      "pricePerDay": 350000,
      "pricePerWeek": 1750000,
      "specs": {"Sensor": "Full Frame"},
      "available": true,
      "featured": true,
      "bookedDates": ["2025-12-16", "2025-12-15"]
    },
    {
      "id": "600d",
      "name": "Aputure 600D",
      "category": "lighting",
      "pricePerDay": 120000,
      "pricePerWeek": 600000,
      "available": false
    }
  ]
}`

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	ctx := context.Background()

	gear, err := c.Gear().List(ctx, repository.GearFilters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(gear) != 2 {
		t.Fatalf("List() returned %d items, want 2", len(gear))
	}

	fx6 := gear[0]
	if fx6.PricePerDay != 350000 || fx6.PricePerWeek != 1750000 || !fx6.Featured {
		t.Errorf("fx6 = %+v", fx6)
	}
	if len(fx6.BookedDates) != 2 || fx6.BookedDates[0] != "2025-12-16" {
		t.Errorf("BookedDates = %v, want file order", fx6.BookedDates)
	}
	if gear[1].Specs == nil {
		t.Error("missing specs should decode as an empty map")
	}

	cats, err := c.Categories().List(ctx)
	if err != nil || len(cats) != 2 || cats[1].Icon != "bulb" {
		t.Errorf("Categories().List() = %v, %v", cats, err)
	}
}

func TestGearFilters(t *testing.T) {
	c, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	lighting := "lighting"
	got, _ := c.Gear().List(ctx, repository.GearFilters{Category: &lighting})
	if len(got) != 1 || got[0].ID != "600d" {
		t.Errorf("List(category) = %v", got)
	}

	got, _ = c.Gear().List(ctx, repository.GearFilters{AvailableOnly: true})
	if len(got) != 1 || got[0].ID != "fx6" {
		t.Errorf("List(available) = %v", got)
	}

	got, _ = c.Gear().List(ctx, repository.GearFilters{Limit: 1})
	if len(got) != 1 {
		t.Errorf("List(limit 1) returned %d", len(got))
	}
}

func TestGetByID(t *testing.T) {
	c, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	item, err := c.Gear().GetByID(context.Background(), "600d")
	if err != nil || item == nil || item.Name != "Aputure 600D" {
		t.Fatalf("GetByID(600d) = %v, %v", item, err)
	}

	item.Name = "changed"
	again, _ := c.Gear().GetByID(context.Background(), "600d")
	if again.Name != "Aputure 600D" {
		t.Error("GetByID() returned a pointer into the catalog")
	}

	missing, err := c.Gear().GetByID(context.Background(), "nope")
	if err != nil || missing != nil {
		t.Errorf("GetByID(nope) = %v, %v; want nil, nil", missing, err)
	}
}

func TestDecode_RejectsMissingID(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"gear": [{"name": "No id"}]}`))
	if err == nil {
		t.Error("Decode() expected error for gear without id")
	}
}

func TestOpen_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"gear": [{"id": "only"}]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := c.Gear().List(context.Background(), repository.GearFilters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "only" {
		t.Errorf("List() after file change = %v", got)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Open() expected error for missing file")
	}
}
