package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/availability"
	"github.com/Kerhoff/KlaGear/internal/compare"
	"github.com/Kerhoff/KlaGear/internal/dates"
	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/recommend"
	"github.com/Kerhoff/KlaGear/internal/repository"
	"github.com/Kerhoff/KlaGear/internal/search"
)

const (
	DefaultRecommendations = 4
	MaxRecommendations     = 12
)

// Reload fetches the catalog from the repositories and swaps it in.
func (s *Service) Reload(ctx context.Context) error {
	gear, err := s.Gear.List(ctx, repository.GearFilters{})
	if err != nil {
		s.metrics.CatalogReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to load gear: %w", err)
	}
	cats, err := s.Categories.List(ctx)
	if err != nil {
		s.metrics.CatalogReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to load categories: %w", err)
	}

	next := catalog{
		gear:       make([]models.GearItem, 0, len(gear)),
		byID:       make(map[string]int, len(gear)),
		categories: make([]models.Category, 0, len(cats)),
		loadedAt:   s.now(),
	}
	for _, g := range gear {
		if _, dup := next.byID[g.ID]; dup {
			s.logger.WithField("gear_id", g.ID).Warn("Duplicate gear id in catalog, keeping the first")
			continue
		}
		next.byID[g.ID] = len(next.gear)
		next.gear = append(next.gear, *g)
	}
	for _, c := range cats {
		next.categories = append(next.categories, *c)
	}

	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()

	s.metrics.CatalogReloads.WithLabelValues("ok").Inc()
	s.metrics.CatalogItems.Set(float64(len(next.gear)))
	s.logger.WithFields(logrus.Fields{
		"gear":       len(next.gear),
		"categories": len(next.categories),
	}).Debug("Catalog reloaded")
	return nil
}

// catalogView returns the current snapshot. Its slices are never written
// after the swap, so callers may read them without the lock.
func (s *Service) catalogView() catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// LoadedAt is when the current snapshot was fetched
func (s *Service) LoadedAt() time.Time {
	return s.catalogView().loadedAt
}

// ListQuery describes a catalog listing
type ListQuery struct {
	Query  string
	Filter search.Filter
	// Sort is a raw sort mode. Left empty with a Query, results stay in
	// relevance order; left empty without one, the featured order applies.
	Sort string
}

// ListGear filters, searches and sorts the catalog.
func (s *Service) ListGear(q ListQuery) []models.GearItem {
	items := search.Apply(s.catalogView().gear, q.Filter)

	if q.Query != "" {
		s.metrics.Searches.Inc()
		items = search.Search(items, q.Query)
		if q.Sort == "" {
			return items
		}
	}
	return search.Sort(items, search.ParseSortMode(q.Sort))
}

// GetGear returns one catalog item
func (s *Service) GetGear(id string) (models.GearItem, error) {
	c := s.catalogView()
	i, ok := c.byID[id]
	if !ok {
		return models.GearItem{}, newErr(ErrNotFound, fmt.Sprintf("gear %q not found", id))
	}
	return c.gear[i], nil
}

// CategoryList returns the catalog categories in display order
func (s *Service) CategoryList() []models.Category {
	return s.catalogView().categories
}

// AvailabilityResult is a conflict check plus the first open day after the
// first conflict
type AvailabilityResult struct {
	availability.ItemResult
	NextFreeDate string `json:"nextFreeDate,omitempty"`
}

// Availability checks an item's booked dates against start..end (YYYY-MM-DD).
func (s *Service) Availability(id, start, end string) (*AvailabilityResult, error) {
	item, err := s.GetGear(id)
	if err != nil {
		return nil, err
	}
	from, to, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, newErr(ErrInvalidInput, "end is before start")
	}

	res := &AvailabilityResult{ItemResult: availability.CheckItem(item, from, to)}
	if res.HasConflict {
		s.metrics.Conflicts.Inc()
		first, _ := dates.Parse(res.ConflictDates[0])
		if d, ok := availability.NextFreeDate(item.BookedDates, first); ok {
			res.NextFreeDate = dates.Format(d)
		}
	}
	return res, nil
}

// Compare aligns 2 to 4 catalog items side by side.
func (s *Service) Compare(ids []string) (*compare.Result, error) {
	seen := make(map[string]struct{}, len(ids))
	items := make([]models.GearItem, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, newErr(ErrInvalidInput, fmt.Sprintf("gear %q listed twice", id))
		}
		seen[id] = struct{}{}

		item, err := s.GetGear(id)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	res, err := compare.Compare(items)
	if errors.Is(err, compare.ErrItemCount) {
		return nil, newErr(ErrInvalidInput, err.Error())
	}
	return res, err
}

// Recommend returns companions for an item. limit is clamped to
// 1..MaxRecommendations, with 0 meaning DefaultRecommendations.
func (s *Service) Recommend(id string, limit int) ([]models.GearItem, error) {
	anchor, err := s.GetGear(id)
	if err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = DefaultRecommendations
	case limit > MaxRecommendations:
		limit = MaxRecommendations
	}

	return recommend.Recommend(s.catalogView().gear, anchor, limit), nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	from, err := dates.Parse(start)
	if err != nil {
		return time.Time{}, time.Time{}, newErr(ErrInvalidInput, "start must be YYYY-MM-DD")
	}
	to, err := dates.Parse(end)
	if err != nil {
		return time.Time{}, time.Time{}, newErr(ErrInvalidInput, "end must be YYYY-MM-DD")
	}
	return from, to, nil
}
