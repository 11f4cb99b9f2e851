package availability

import (
	"time"

	"github.com/Kerhoff/KlaGear/internal/dates"
	"github.com/Kerhoff/KlaGear/internal/models"
)

// Result is the outcome of checking a date range against booked days
type Result struct {
	HasConflict   bool     `json:"hasConflict"`
	ConflictDates []string `json:"conflictDates"`
}

// ItemResult adds the item's own availability flag to a conflict check
type ItemResult struct {
	Result
	GearID    string `json:"gearId"`
	Available bool   `json:"available"`
	Bookable  bool   `json:"bookable"`
	Days      int    `json:"days"`
}

// CheckConflict walks every day from start to end inclusive and reports each
// one found in booked, in chronological order.
func CheckConflict(start, end time.Time, booked []string) Result {
	res := Result{ConflictDates: []string{}}
	if len(booked) == 0 {
		return res
	}

	set := make(map[string]struct{}, len(booked))
	for _, d := range booked {
		set[d] = struct{}{}
	}

	dates.Each(start, end, func(day time.Time) {
		key := dates.Format(day)
		if _, ok := set[key]; ok {
			res.ConflictDates = append(res.ConflictDates, key)
		}
	})
	res.HasConflict = len(res.ConflictDates) > 0
	return res
}

// CheckItem runs CheckConflict for a gear item. An item switched off in the
// catalog is never bookable, whatever its calendar says.
func CheckItem(item models.GearItem, start, end time.Time) ItemResult {
	res := CheckConflict(start, end, item.BookedDates)
	return ItemResult{
		Result:    res,
		GearID:    item.ID,
		Available: item.Available,
		Bookable:  item.Available && !res.HasConflict,
		Days:      dates.DaysBetweenInclusive(start, end),
	}
}

// maxLookahead bounds NextFreeDate for a calendar that is booked solid.
const maxLookahead = 366

// NextFreeDate returns the first day on or after from that is not booked.
// ok is false when nothing is free within a year.
func NextFreeDate(booked []string, from time.Time) (day time.Time, ok bool) {
	set := make(map[string]struct{}, len(booked))
	for _, d := range booked {
		set[d] = struct{}{}
	}

	d := dates.Day(from)
	for i := 0; i < maxLookahead; i++ {
		if _, taken := set[dates.Format(d)]; !taken {
			return d, true
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}
