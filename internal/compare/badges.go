package compare

import "github.com/Kerhoff/KlaGear/internal/models"

const (
	BadgeMostAffordable     = "Most Affordable"
	BadgeBestWeeklyValue    = "Best Weekly Value"
	BadgeFeatured           = "Featured"
	BadgeCurrentlyAvailable = "Currently Available"
)

// ValuePropositions assigns badges by item id. Lowest-price badges go to the
// first item holding the minimum. The availability badge is only given when
// exactly one item is available.
func ValuePropositions(items []models.GearItem) map[string][]string {
	badges := make(map[string][]string, len(items))
	if len(items) == 0 {
		return badges
	}

	cheapest, bestWeekly := 0, 0
	var available []int
	for i, g := range items {
		if g.PricePerDay < items[cheapest].PricePerDay {
			cheapest = i
		}
		if weeklyPerDay(g) < weeklyPerDay(items[bestWeekly]) {
			bestWeekly = i
		}
		if g.Available {
			available = append(available, i)
		}
	}

	add := func(i int, badge string) {
		badges[items[i].ID] = append(badges[items[i].ID], badge)
	}

	add(cheapest, BadgeMostAffordable)
	add(bestWeekly, BadgeBestWeeklyValue)
	for i, g := range items {
		if g.Featured {
			add(i, BadgeFeatured)
		}
	}
	if len(available) == 1 {
		add(available[0], BadgeCurrentlyAvailable)
	}
	return badges
}

func weeklyPerDay(g models.GearItem) float64 {
	return float64(g.PricePerWeek) / 7
}
