package service

import (
	"fmt"

	"github.com/Kerhoff/KlaGear/internal/dates"
	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/pricing"
)

// QuoteLine selects a catalog item for a quote. Days overrides the quote's
// day count for this line when set.
type QuoteLine struct {
	GearID   string `json:"gearId" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1,max=50"`
	Days     int    `json:"days,omitempty" validate:"min=0,max=366"`
}

// QuoteRequest is priced either over Days or over the inclusive
// StartDate..EndDate range. The range wins when both are given.
type QuoteRequest struct {
	Items     []QuoteLine `json:"items" validate:"required,min=1,dive"`
	Days      int         `json:"days,omitempty" validate:"min=0,max=366"`
	StartDate string      `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string      `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// FormattedTotals are display strings for the rounded amounts
type FormattedTotals struct {
	Subtotal       string `json:"subtotal"`
	WeeklyDiscount string `json:"weeklyDiscount"`
	BundleDiscount string `json:"bundleDiscount"`
	Insurance      string `json:"insurance"`
	Tax            string `json:"tax"`
	Total          string `json:"total"`
	Deposit        string `json:"deposit"`
	Balance        string `json:"balance"`
}

// QuoteResult carries the raw breakdown alongside rounded and formatted values
type QuoteResult struct {
	Items     []models.LineItem  `json:"items"`
	Breakdown pricing.Breakdown  `json:"breakdown"`
	Rounded   models.QuoteTotals `json:"rounded"`
	Formatted FormattedTotals    `json:"formatted"`
}

// Quote prices a selection of catalog items.
func (s *Service) Quote(req QuoteRequest) (*QuoteResult, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	days, err := quoteDays(req)
	if err != nil {
		return nil, err
	}

	items := make([]models.LineItem, 0, len(req.Items))
	for _, l := range req.Items {
		g, err := s.GetGear(l.GearID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.LineItem{Gear: g, Quantity: l.Quantity, Days: l.Days})
	}

	res, err := s.price(items, days)
	if err != nil {
		return nil, err
	}
	s.metrics.Quotes.Inc()
	s.metrics.QuoteValue.Observe(res.Breakdown.Total)
	return res, nil
}

func (s *Service) price(items []models.LineItem, days int) (*QuoteResult, error) {
	if err := pricing.ValidateLineItems(items, days); err != nil {
		return nil, newErr(ErrInvalidInput, err.Error())
	}

	b := pricing.ComputeQuote(items, days)
	r := b.Rounded()
	return &QuoteResult{
		Items:     items,
		Breakdown: b,
		Rounded:   r,
		Formatted: FormattedTotals{
			Subtotal:       pricing.FormatUGX(float64(r.Subtotal)),
			WeeklyDiscount: pricing.FormatUGX(float64(r.WeeklyDiscount)),
			BundleDiscount: pricing.FormatUGX(float64(r.BundleDiscount)),
			Insurance:      pricing.FormatUGX(float64(r.Insurance)),
			Tax:            pricing.FormatUGX(float64(r.Tax)),
			Total:          pricing.FormatUGX(float64(r.Total)),
			Deposit:        pricing.FormatUGX(float64(r.Deposit)),
			Balance:        pricing.FormatUGX(float64(r.Total - r.Deposit)),
		},
	}, nil
}

func quoteDays(req QuoteRequest) (int, error) {
	if req.StartDate == "" && req.EndDate == "" {
		if req.Days < 1 {
			return 0, newErr(ErrInvalidInput, "days or a date range is required")
		}
		return req.Days, nil
	}
	if req.StartDate == "" || req.EndDate == "" {
		return 0, newErr(ErrInvalidInput, "both startDate and endDate are required")
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return 0, err
	}
	if end.Before(start) {
		return 0, newErr(ErrInvalidInput, fmt.Sprintf("endDate %s is before startDate %s", req.EndDate, req.StartDate))
	}
	return dates.DaysBetweenInclusive(start, end), nil
}
