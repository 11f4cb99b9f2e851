package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/handoff"
	"github.com/Kerhoff/KlaGear/internal/metrics"
	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/repository"
)

// Notifier tells the business about a new booking request
type Notifier interface {
	NotifyBooking(ctx context.Context, booking *models.BookingRequest) error
}

// Options carries the optional collaborators of a Service
type Options struct {
	Contact         handoff.Contact
	PaymentRedirect string
	Notifier        Notifier
}

// Service is the business logic layer. Catalog reads are served from an
// in-memory snapshot that Reload replaces as a whole.
type Service struct {
	logger     *logrus.Logger
	metrics    *metrics.Metrics
	Gear       repository.GearRepository
	Categories repository.CategoryRepository
	Bookings   repository.BookingRepository

	contact         handoff.Contact
	paymentRedirect string
	notifier        Notifier
	validate        *validator.Validate
	now             func() time.Time

	mu       sync.RWMutex
	snapshot catalog
}

type catalog struct {
	gear       []models.GearItem
	byID       map[string]int
	categories []models.Category
	loadedAt   time.Time
}

// New creates a new Service with all required dependencies.
func New(logger *logrus.Logger, m *metrics.Metrics,
	gear repository.GearRepository,
	categories repository.CategoryRepository,
	bookings repository.BookingRepository,
	opts Options,
) *Service {
	return &Service{
		logger:          logger,
		metrics:         m,
		Gear:            gear,
		Categories:      categories,
		Bookings:        bookings,
		contact:         opts.Contact,
		paymentRedirect: opts.PaymentRedirect,
		notifier:        opts.Notifier,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		now:             time.Now,
		snapshot:        catalog{byID: map[string]int{}},
	}
}

// SetNotifier swaps the booking notifier. The Telegram bot is built after the
// service, so it is attached here.
func (s *Service) SetNotifier(n Notifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

func (s *Service) currentNotifier() Notifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notifier
}

// Contact returns the configured business contact points
func (s *Service) Contact() handoff.Contact {
	return s.contact
}
