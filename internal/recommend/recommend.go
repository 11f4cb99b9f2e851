// Package recommend scores catalog items as companions to an anchor item.
package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/Kerhoff/KlaGear/internal/models"
)

const (
	pointsSameCategory  = 2
	pointsComplementary = 5
	pointsKeywordPair   = 3
	pointsPriceNear     = 1
	pointsFeatured      = 1
	pointsAvailable     = 2

	// priceProximity is the largest relative price difference, against the
	// mean of both prices, that still counts as a similar price point.
	priceProximity = 0.5
)

// Scored is a candidate with its points
type Scored struct {
	Item  models.GearItem `json:"item"`
	Score int             `json:"score"`
}

// Score adds up the points candidate earns as a companion to anchor.
func Score(anchor, candidate models.GearItem) int {
	score := 0

	if candidate.Category == anchor.Category {
		score += pointsSameCategory
	}
	for _, c := range complementaryCategories[anchor.Category] {
		if candidate.Category == c {
			score += pointsComplementary
			break
		}
	}

	anchorName := strings.ToLower(anchor.Name)
	candidateName := strings.ToLower(candidate.Name)
	for trigger, companions := range complementaryKeywords {
		if !strings.Contains(anchorName, trigger) {
			continue
		}
		for _, c := range companions {
			if strings.Contains(candidateName, c) {
				score += pointsKeywordPair
			}
		}
	}

	if priceNear(anchor.PricePerDay, candidate.PricePerDay) {
		score += pointsPriceNear
	}
	if candidate.Featured {
		score += pointsFeatured
	}
	if candidate.Available {
		score += pointsAvailable
	}
	return score
}

func priceNear(a, b int64) bool {
	mean := float64(a+b) / 2
	if mean == 0 {
		return true
	}
	return math.Abs(float64(a-b))/mean < priceProximity
}

// Scores ranks every catalog item except the anchor, dropping zero scores.
// Equal scores keep catalog order.
func Scores(catalog []models.GearItem, anchor models.GearItem) []Scored {
	out := make([]Scored, 0, len(catalog))
	for _, g := range catalog {
		if g.ID == anchor.ID {
			continue
		}
		if s := Score(anchor, g); s > 0 {
			out = append(out, Scored{Item: g, Score: s})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Recommend returns up to limit companions for anchor, best first. A limit
// of zero or less returns every scoring item.
func Recommend(catalog []models.GearItem, anchor models.GearItem, limit int) []models.GearItem {
	scored := Scores(catalog, anchor)
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	out := make([]models.GearItem, len(scored))
	for i, s := range scored {
		out[i] = s.Item
	}
	return out
}
