package repository

import (
	"context"

	"github.com/Kerhoff/KlaGear/internal/models"
)

// GearRepository defines the interface for reading the equipment catalog
type GearRepository interface {
	List(ctx context.Context, filters GearFilters) ([]*models.GearItem, error)
	GetByID(ctx context.Context, id string) (*models.GearItem, error)
}

// CategoryRepository defines the interface for reading catalog categories
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
}

// BookingRepository defines the interface for booking request operations
type BookingRepository interface {
	Create(ctx context.Context, booking *models.BookingRequest) (*models.BookingRequest, error)
	GetByReference(ctx context.Context, reference string) (*models.BookingRequest, error)
	List(ctx context.Context, filters BookingFilters) ([]*models.BookingRequest, error)
}

// GearFilters represents filters for querying the catalog
type GearFilters struct {
	Category      *string
	AvailableOnly bool
	Limit         int
}

// BookingFilters represents filters for querying booking requests. From and
// To bound the rental start date (YYYY-MM-DD).
type BookingFilters struct {
	From  *string
	To    *string
	Limit int
}
