package usecase

import (
	"sort"

	"pilot-career-service/internal/domain/entity"
)

// Score contributions
const (
	haulMatchScore    = 2
	airlineMatchScore = 1
)

// RouteScorer ranks routes against haul and airline preferences
type RouteScorer struct{}

// Score is +2 when the route's haul is the preferred (or dominant weighted)
// bucket and +1 when it is flown by the preferred airline
func (RouteScorer) Score(r entity.Route, prefs entity.HaulPreferences, airline string) int {
	score := 0
	if dominant, ok := prefs.Dominant(); ok && r.Haul() == dominant {
		score += haulMatchScore
	}
	if airline != "" && r.AirlineIATA == airline {
		score += airlineMatchScore
	}
	return score
}

// KeepProbability is the chance the weighted-random policy retains r
func (RouteScorer) KeepProbability(r entity.Route, prefs entity.HaulPreferences) float64 {
	total := prefs.TotalWeight()
	if total <= 0 {
		return 0
	}
	return prefs.Weight(r.Haul()) / total
}

// Rank returns a copy of routes ordered by descending score. Equal scores
// keep their input order.
func (s RouteScorer) Rank(routes []entity.Route, prefs entity.HaulPreferences, airline string) []entity.Route {
	type scored struct {
		route entity.Route
		score int
	}
	items := make([]scored, len(routes))
	for i, r := range routes {
		items[i] = scored{route: r, score: s.Score(r, prefs, airline)}
	}
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].score > items[b].score
	})

	ranked := make([]entity.Route, len(items))
	for i, item := range items {
		ranked[i] = item.route
	}
	return ranked
}
