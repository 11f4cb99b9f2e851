package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/availability"
	"github.com/Kerhoff/KlaGear/internal/dates"
	"github.com/Kerhoff/KlaGear/internal/handoff"
	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/repository"
)

// BookingLine is one item in a booking request
type BookingLine struct {
	GearID   string `json:"gearId" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1,max=50"`
}

// BookingInput is what a customer submits
type BookingInput struct {
	CustomerName  string        `json:"customerName" validate:"required,max=120"`
	CustomerPhone string        `json:"customerPhone" validate:"required,min=7,max=32"`
	CustomerEmail string        `json:"customerEmail,omitempty" validate:"omitempty,email"`
	Company       string        `json:"company,omitempty" validate:"max=120"`
	Notes         string        `json:"notes,omitempty" validate:"max=1000"`
	StartDate     string        `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string        `json:"endDate" validate:"required,datetime=2006-01-02"`
	Channel       string        `json:"channel" validate:"required,oneof=whatsapp phone email deposit"`
	Items         []BookingLine `json:"items" validate:"required,min=1,dive"`
}

// BookingResult is a stored booking request plus where to send the customer
type BookingResult struct {
	Booking *models.BookingRequest `json:"booking"`
	Links   handoff.Links          `json:"links"`
	Payment *handoff.PaymentIntent `json:"payment,omitempty"`
}

// SubmitBooking validates and stores a booking request, then notifies the
// operator. Booked dates are left untouched: a request only becomes a booking
// once a human confirms it.
func (s *Service) SubmitBooking(ctx context.Context, in BookingInput) (*BookingResult, error) {
	channel := channelLabel(in.Channel)
	br, items, err := s.prepareBooking(in)
	if err != nil {
		s.metrics.BookingRequests.WithLabelValues(channel, outcome(err)).Inc()
		return nil, err
	}

	quote, err := s.price(items, br.Days)
	if err != nil {
		s.metrics.BookingRequests.WithLabelValues(channel, outcome(err)).Inc()
		return nil, err
	}
	br.Totals = quote.Rounded

	created, err := s.Bookings.Create(ctx, br)
	if err != nil {
		s.metrics.BookingRequests.WithLabelValues(channel, "error").Inc()
		return nil, fmt.Errorf("failed to save booking request: %w", err)
	}
	s.metrics.BookingRequests.WithLabelValues(channel, "ok").Inc()

	log := s.logger.WithFields(logrus.Fields{
		"reference": created.Reference,
		"channel":   created.Channel,
		"total":     created.Totals.Total,
	})
	log.Info("Booking request received")

	if n := s.currentNotifier(); n != nil {
		if err := n.NotifyBooking(ctx, created); err != nil {
			log.WithError(err).Warn("Failed to notify operator about booking request")
		}
	}

	res := &BookingResult{
		Booking: created,
		Links:   handoff.BuildLinks(s.contact, created),
	}
	if created.Channel == models.BookingChannelDeposit {
		p := handoff.NewPaymentIntent(created, s.paymentRedirect)
		res.Payment = &p
	}
	return res, nil
}

func (s *Service) prepareBooking(in BookingInput) (*models.BookingRequest, []models.LineItem, error) {
	if err := s.validateStruct(in); err != nil {
		return nil, nil, err
	}

	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, nil, err
	}
	if end.Before(start) {
		return nil, nil, newErr(ErrInvalidInput, "endDate is before startDate")
	}
	if dates.IsPastAt(start, s.now()) {
		return nil, nil, newErr(ErrPastDate, fmt.Sprintf("startDate %s is in the past", in.StartDate))
	}
	days := dates.DaysBetweenInclusive(start, end)

	br := &models.BookingRequest{
		Reference:     uuid.NewString(),
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		Company:       in.Company,
		Notes:         in.Notes,
		StartDate:     start,
		EndDate:       end,
		Days:          days,
		Channel:       models.BookingChannel(in.Channel),
		Status:        models.BookingStatusPending,
		CreatedAt:     s.now(),
	}

	items := make([]models.LineItem, 0, len(in.Items))
	seen := make(map[string]int, len(in.Items))
	for _, l := range in.Items {
		if i, dup := seen[l.GearID]; dup {
			items[i].Quantity += l.Quantity
			br.Items[i].Quantity += l.Quantity
			continue
		}

		g, err := s.GetGear(l.GearID)
		if err != nil {
			return nil, nil, err
		}
		if !g.Available {
			return nil, nil, newErr(ErrUnavailable, fmt.Sprintf("%s is not available for hire", g.Name))
		}
		if res := availability.CheckConflict(start, end, g.BookedDates); res.HasConflict {
			s.metrics.Conflicts.Inc()
			return nil, nil, &Error{
				Code:    ErrConflict,
				Message: fmt.Sprintf("%s is already booked", g.Name),
				Dates:   res.ConflictDates,
			}
		}

		seen[l.GearID] = len(items)
		items = append(items, models.LineItem{Gear: g, Quantity: l.Quantity})
		br.Items = append(br.Items, models.BookingItem{
			GearID:      g.ID,
			GearName:    g.Name,
			Quantity:    l.Quantity,
			PricePerDay: g.PricePerDay,
		})
	}
	return br, items, nil
}

func channelLabel(c string) string {
	switch models.BookingChannel(c) {
	case models.BookingChannelWhatsApp, models.BookingChannelPhone,
		models.BookingChannelEmail, models.BookingChannelDeposit:
		return c
	}
	return "unknown"
}

func outcome(err error) string {
	if c := Code(err); c != "" {
		return string(c)
	}
	return "error"
}

// GetBooking looks a booking request up by its reference
func (s *Service) GetBooking(ctx context.Context, reference string) (*models.BookingRequest, error) {
	if err := uuid.Validate(reference); err != nil {
		return nil, newErr(ErrNotFound, fmt.Sprintf("booking %q not found", reference))
	}

	b, err := s.Bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking request: %w", err)
	}
	if b == nil {
		return nil, newErr(ErrNotFound, fmt.Sprintf("booking %q not found", reference))
	}
	return b, nil
}

// RecentBookings lists the latest booking requests for the operator
func (s *Service) RecentBookings(ctx context.Context, limit int) ([]*models.BookingRequest, error) {
	if limit <= 0 {
		limit = 10
	}
	bookings, err := s.Bookings.List(ctx, repository.BookingFilters{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list booking requests: %w", err)
	}
	return bookings, nil
}
