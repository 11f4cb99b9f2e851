// Package jsonfile serves the catalog from a static JSON document, the same
// shape the public site ships as its data file:
//
//	{"categories": [{"id": "cameras", ...}], "gear": [{"id": "fx6", "pricePerDay": 350000, ...}]}
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/repository"
)

type document struct {
	Categories []*models.Category `json:"categories"`
	Gear       []*models.GearItem `json:"gear"`
}

// Catalog is a read-only catalog loaded from a JSON file. Reload re-reads
// the file so edits are picked up by the catalog refresher.
type Catalog struct {
	path string

	mu  sync.RWMutex
	doc document
}

// Open reads and decodes the catalog at path
func Open(path string) (*Catalog, error) {
	c := &Catalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Decode builds a catalog from r without a backing file
func Decode(r io.Reader) (*Catalog, error) {
	doc, err := decode(r)
	if err != nil {
		return nil, err
	}
	return &Catalog{doc: doc}, nil
}

// Reload re-reads the backing file. A catalog built by Decode has none and
// keeps its contents.
func (c *Catalog) Reload() error {
	if c.path == "" {
		return nil
	}

	f, err := os.Open(c.path)
	if err != nil {
		return fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	doc, err := decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", c.path, err)
	}

	c.mu.Lock()
	c.doc = doc
	c.mu.Unlock()
	return nil
}

func decode(r io.Reader) (document, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return document{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	for i, g := range doc.Gear {
		if g == nil || g.ID == "" {
			return document{}, fmt.Errorf("gear entry %d has no id", i)
		}
		if g.Specs == nil {
			g.Specs = map[string]string{}
		}
	}
	return doc, nil
}

// Gear returns the catalog as a GearRepository
func (c *Catalog) Gear() repository.GearRepository {
	return gearSource{c}
}

// Categories returns the catalog as a CategoryRepository
func (c *Catalog) Categories() repository.CategoryRepository {
	return categorySource{c}
}

type gearSource struct{ c *Catalog }

func (s gearSource) List(ctx context.Context, filters repository.GearFilters) ([]*models.GearItem, error) {
	if err := s.c.Reload(); err != nil {
		return nil, err
	}

	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	var items []*models.GearItem
	for _, g := range s.c.doc.Gear {
		if filters.Category != nil && g.Category != *filters.Category {
			continue
		}
		if filters.AvailableOnly && !g.Available {
			continue
		}
		cp := *g
		items = append(items, &cp)
		if filters.Limit > 0 && len(items) == filters.Limit {
			break
		}
	}
	return items, nil
}

func (s gearSource) GetByID(ctx context.Context, id string) (*models.GearItem, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	for _, g := range s.c.doc.Gear {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

type categorySource struct{ c *Catalog }

func (s categorySource) List(ctx context.Context) ([]*models.Category, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	out := make([]*models.Category, len(s.c.doc.Categories))
	for i, cat := range s.c.doc.Categories {
		cp := *cat
		out[i] = &cp
	}
	return out, nil
}
