package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/repository"
)

type gearRepository struct {
	db *sql.DB
}

// NewGearRepository creates a new gear repository
func NewGearRepository(db *sql.DB) repository.GearRepository {
	return &gearRepository{db: db}
}

const gearColumns = `
		SELECT g.id, g.name, g.category_id, g.description, g.price_per_day, g.price_per_week,
		       g.image, g.available, g.featured, g.created_at,
		       COALESCE((SELECT array_agg(to_char(b.booked_on, 'YYYY-MM-DD'))
		                 FROM gear_booked_dates b WHERE b.gear_id = g.id), '{}')
		FROM gear g`

func (r *gearRepository) List(ctx context.Context, filters repository.GearFilters) ([]*models.GearItem, error) {
	query := gearColumns + ` WHERE 1 = 1`
	args := []interface{}{}
	argIdx := 1

	if filters.Category != nil {
		query += fmt.Sprintf(" AND g.category_id = $%d", argIdx)
		args = append(args, *filters.Category)
		argIdx++
	}
	if filters.AvailableOnly {
		query += " AND g.available = true"
	}

	query += " ORDER BY g.created_at ASC, g.id ASC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query gear: %w", err)
	}
	defer rows.Close()

	var items []*models.GearItem
	byID := make(map[string]*models.GearItem)
	for rows.Next() {
		item, err := scanGear(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gear: %w", err)
		}
		items = append(items, item)
		byID[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return items, nil
	}
	if err := r.loadSpecs(ctx, byID); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *gearRepository) GetByID(ctx context.Context, id string) (*models.GearItem, error) {
	query := gearColumns + ` WHERE g.id = $1`

	item, err := scanGear(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gear item: %w", err)
	}

	if err := r.loadSpecs(ctx, map[string]*models.GearItem{item.ID: item}); err != nil {
		return nil, err
	}

	return item, nil
}

// loadSpecs fills Specs for every item in byID with one query.
func (r *gearRepository) loadSpecs(ctx context.Context, byID map[string]*models.GearItem) error {
	ids := make([]string, 0, len(byID))
	for id, item := range byID {
		ids = append(ids, id)
		item.Specs = make(map[string]string)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT gear_id, name, value FROM gear_specs WHERE gear_id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("failed to query gear specs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var gearID, name, value string
		if err := rows.Scan(&gearID, &name, &value); err != nil {
			return fmt.Errorf("failed to scan gear spec: %w", err)
		}
		if item, ok := byID[gearID]; ok {
			item.Specs[name] = value
		}
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGear(row rowScanner) (*models.GearItem, error) {
	item := &models.GearItem{}
	var booked pq.StringArray
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.Description,
		&item.PricePerDay,
		&item.PricePerWeek,
		&item.Image,
		&item.Available,
		&item.Featured,
		&item.CreatedAt,
		&booked,
	); err != nil {
		return nil, err
	}
	item.BookedDates = []string(booked)
	return item, nil
}
