package usecase

import (
	"math/rand"
	"strings"

	"pilot-career-service/internal/domain/entity"
)

// Policy names
const (
	PolicyWeightedRandom = "weighted"
	PolicyScoreRanked    = "ranked"
)

// SelectionPolicy orders the candidate routes at one step of the search.
// The generator takes the first route in the returned order that still fits
// the remaining budget.
type SelectionPolicy interface {
	// Name is the canonical policy name stored with schedules
	Name() string

	// CanHandle determines if this policy answers to the given name
	CanHandle(name string) bool

	// Order returns candidates in order of preference. rng is owned by the
	// current run and must not be retained.
	Order(rng *rand.Rand, candidates []entity.Route, prefs entity.HaulPreferences, airline string) []entity.Route
}

// PolicyRouter resolves selection policies by name
type PolicyRouter interface {
	// Register registers a policy
	Register(policy SelectionPolicy)

	// GetPolicy returns the policy answering to name, or nil
	GetPolicy(name string) SelectionPolicy
}

// ScoreRankedPolicy always prefers the highest scoring route. It is fully
// deterministic.
type ScoreRankedPolicy struct {
	scorer RouteScorer
}

// NewScoreRankedPolicy creates the deterministic policy
func NewScoreRankedPolicy() *ScoreRankedPolicy {
	return &ScoreRankedPolicy{}
}

func (p *ScoreRankedPolicy) Name() string { return PolicyScoreRanked }

func (p *ScoreRankedPolicy) CanHandle(name string) bool {
	return matchesName(name, PolicyScoreRanked, "score_ranked", "deterministic")
}

func (p *ScoreRankedPolicy) Order(_ *rand.Rand, candidates []entity.Route, prefs entity.HaulPreferences, airline string) []entity.Route {
	return p.scorer.Rank(candidates, prefs, airline)
}

// WeightedRandomPolicy keeps each candidate with probability equal to its
// haul bucket's share of the total weight, then picks uniformly among the
// kept ones. When nothing is kept the full candidate list is used.
type WeightedRandomPolicy struct {
	scorer RouteScorer
}

// NewWeightedRandomPolicy creates the probabilistic policy
func NewWeightedRandomPolicy() *WeightedRandomPolicy {
	return &WeightedRandomPolicy{}
}

func (p *WeightedRandomPolicy) Name() string { return PolicyWeightedRandom }

func (p *WeightedRandomPolicy) CanHandle(name string) bool {
	return matchesName(name, PolicyWeightedRandom, "weighted_random", "random")
}

// Order returns the kept pool shuffled, followed by the rejected candidates
// shuffled, so a budget-limited caller can still fall through to them.
func (p *WeightedRandomPolicy) Order(rng *rand.Rand, candidates []entity.Route, prefs entity.HaulPreferences, _ string) []entity.Route {
	kept := make([]entity.Route, 0, len(candidates))
	rejected := make([]entity.Route, 0, len(candidates))
	for _, c := range candidates {
		if rng.Float64() < p.scorer.KeepProbability(c, prefs) {
			kept = append(kept, c)
		} else {
			rejected = append(rejected, c)
		}
	}

	shuffle(rng, kept)
	shuffle(rng, rejected)
	return append(kept, rejected...)
}

func shuffle(rng *rand.Rand, routes []entity.Route) {
	rng.Shuffle(len(routes), func(i, j int) {
		routes[i], routes[j] = routes[j], routes[i]
	})
}

func matchesName(name string, names ...string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range names {
		if name == n {
			return true
		}
	}
	return false
}
