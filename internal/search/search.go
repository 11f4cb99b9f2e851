// Package search ranks catalog items against free text and orders them for
// display.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/Kerhoff/KlaGear/internal/models"
)

// Threshold is the worst normalized distance (0 exact, 1 nothing in common)
// an item may score and still match.
const Threshold = 0.3

// MinSubstringLen is the shortest query term that matches as a substring of
// a word. Shorter terms must match a whole word or fall back to edit distance.
const MinSubstringLen = 2

type match struct {
	item  models.GearItem
	score float64
}

// Search returns the items whose name, description or category fuzzily match
// the query, best match first. An empty query returns gear unchanged.
func Search(gear []models.GearItem, query string) []models.GearItem {
	terms := tokenize(query)
	if len(terms) == 0 {
		return gear
	}

	matches := make([]match, 0, len(gear))
	for _, g := range gear {
		if s := Score(g, terms); s <= Threshold {
			matches = append(matches, match{item: g, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	out := make([]models.GearItem, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return out
}

// Score is the mean, over query terms, of each term's closest distance to a
// word of the item's text.
func Score(g models.GearItem, terms []string) float64 {
	words := tokenize(g.Name + " " + g.Description + " " + g.Category)
	if len(words) == 0 {
		return 1
	}

	var total float64
	for _, term := range terms {
		total += bestDistance(term, words)
	}
	return total / float64(len(terms))
}

func bestDistance(term string, words []string) float64 {
	best := 1.0
	partial := len([]rune(term)) >= MinSubstringLen
	for _, w := range words {
		if w == term || (partial && strings.Contains(w, term)) {
			return 0
		}
		d := normalized(term, w)
		if d < best {
			best = d
		}
	}
	return best
}

func normalized(a, b string) float64 {
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
