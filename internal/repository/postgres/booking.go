package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new booking request repository
func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.BookingRequest) (_ *models.BookingRequest, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO booking_requests (reference, customer_name, customer_phone, customer_email, company, notes,
			start_date, end_date, days, channel, status,
			subtotal, weekly_discount, bundle_discount, insurance, tax, total, deposit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at`

	booking.CreatedAt = time.Now()

	err = tx.QueryRowContext(ctx, query,
		booking.Reference,
		booking.CustomerName,
		booking.CustomerPhone,
		booking.CustomerEmail,
		booking.Company,
		booking.Notes,
		booking.StartDate,
		booking.EndDate,
		booking.Days,
		booking.Channel,
		booking.Status,
		booking.Totals.Subtotal,
		booking.Totals.WeeklyDiscount,
		booking.Totals.BundleDiscount,
		booking.Totals.Insurance,
		booking.Totals.Tax,
		booking.Totals.Total,
		booking.Totals.Deposit,
		booking.CreatedAt,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking request: %w", err)
	}

	itemQuery := `
		INSERT INTO booking_items (booking_id, gear_id, gear_name, quantity, price_per_day)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	for i := range booking.Items {
		item := &booking.Items[i]
		item.BookingID = booking.ID
		err = tx.QueryRowContext(ctx, itemQuery,
			item.BookingID,
			item.GearID,
			item.GearName,
			item.Quantity,
			item.PricePerDay,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to add booking item %s: %w", item.GearID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking request: %w", err)
	}

	return booking, nil
}

const bookingColumns = `
		SELECT id, reference, customer_name, customer_phone, customer_email, company, notes,
		       start_date, end_date, days, channel, status,
		       subtotal, weekly_discount, bundle_discount, insurance, tax, total, deposit, created_at
		FROM booking_requests`

func (r *bookingRepository) GetByReference(ctx context.Context, reference string) (*models.BookingRequest, error) {
	query := bookingColumns + ` WHERE reference = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, reference))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking request: %w", err)
	}

	items, err := r.getItems(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Items = items

	return booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filters repository.BookingFilters) ([]*models.BookingRequest, error) {
	query := bookingColumns + ` WHERE 1 = 1`
	args := []interface{}{}
	argIdx := 1

	if filters.From != nil {
		query += fmt.Sprintf(" AND start_date >= $%d", argIdx)
		args = append(args, *filters.From)
		argIdx++
	}
	if filters.To != nil {
		query += fmt.Sprintf(" AND start_date <= $%d", argIdx)
		args = append(args, *filters.To)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking requests: %w", err)
	}
	defer rows.Close()

	var bookings []*models.BookingRequest
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking request: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) getItems(ctx context.Context, bookingID int64) ([]models.BookingItem, error) {
	query := `
		SELECT id, booking_id, gear_id, gear_name, quantity, price_per_day
		FROM booking_items
		WHERE booking_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking items: %w", err)
	}
	defer rows.Close()

	var items []models.BookingItem
	for rows.Next() {
		var item models.BookingItem
		if err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.GearID,
			&item.GearName,
			&item.Quantity,
			&item.PricePerDay,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func scanBooking(row rowScanner) (*models.BookingRequest, error) {
	b := &models.BookingRequest{}
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.CustomerEmail,
		&b.Company,
		&b.Notes,
		&b.StartDate,
		&b.EndDate,
		&b.Days,
		&b.Channel,
		&b.Status,
		&b.Totals.Subtotal,
		&b.Totals.WeeklyDiscount,
		&b.Totals.BundleDiscount,
		&b.Totals.Insurance,
		&b.Totals.Tax,
		&b.Totals.Total,
		&b.Totals.Deposit,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}
