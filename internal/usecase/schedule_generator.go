package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"
)

// Generator defaults
const (
	DefaultTurnaround    = 60 * time.Minute
	DefaultClosingWindow = 24 * time.Hour
)

// GeneratorOption configures a ScheduleGenerator
type GeneratorOption func(*ScheduleGenerator)

// WithTurnaround sets the ground time added after every leg. Requests may
// cap it further through MaxLayoverMinutes.
func WithTurnaround(d time.Duration) GeneratorOption {
	return func(g *ScheduleGenerator) {
		if d >= 0 {
			g.turnaround = d
		}
	}
}

// WithClosingWindow sets how close to the end of the budget the generator
// starts looking for a direct leg to the end location
func WithClosingWindow(d time.Duration) GeneratorOption {
	return func(g *ScheduleGenerator) {
		if d > 0 {
			g.closingWindow = d
		}
	}
}

// WithSeed makes every run draw from a fresh source seeded with seed
func WithSeed(seed int64) GeneratorOption {
	return func(g *ScheduleGenerator) {
		g.newRand = func() *rand.Rand {
			return rand.New(rand.NewSource(seed))
		}
	}
}

// WithClock replaces the clock used when a request has no StartAt
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *ScheduleGenerator) {
		if now != nil {
			g.now = now
		}
	}
}

// ScheduleGenerator walks the route network leg by leg until the duration
// budget is spent or the end location is reached. It holds no per-run state
// and is safe for concurrent use.
type ScheduleGenerator struct {
	turnaround    time.Duration
	closingWindow time.Duration
	newRand       func() *rand.Rand
	now           func() time.Time
	validate      *validator.Validate
	scorer        RouteScorer
}

// NewScheduleGenerator creates a generator with the default turnaround and
// closing window
func NewScheduleGenerator(opts ...GeneratorOption) *ScheduleGenerator {
	g := &ScheduleGenerator{
		turnaround:    DefaultTurnaround,
		closingWindow: DefaultClosingWindow,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		now:      time.Now,
		validate: newRequestValidator(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// TurnaroundMinutes is the ground time applied between legs for req
func (g *ScheduleGenerator) TurnaroundMinutes(req entity.ScheduleRequest) int {
	turnaround := int(g.turnaround / time.Minute)
	if limit := req.LayoverCapMinutes(); turnaround > limit {
		turnaround = limit
	}
	return turnaround
}

// Generate produces the ordered legs of a schedule for req. Failures are
// returned as *GenerationError unless the catalog itself fails.
func (g *ScheduleGenerator) Generate(ctx context.Context, catalog repository.RouteCatalog, req entity.ScheduleRequest, policy SelectionPolicy) ([]entity.GeneratedFlight, error) {
	if policy == nil {
		policy = NewScoreRankedPolicy()
	}
	if err := validateRequest(g.validate, req); err != nil {
		return nil, err
	}

	start := req.StartAt
	if start.IsZero() {
		start = g.now().Truncate(time.Minute)
	}

	run := &generationRun{
		catalog:       newMemoCatalog(catalog),
		policy:        policy,
		scorer:        g.scorer,
		rng:           g.newRand(),
		prefs:         req.HaulPreferences,
		airline:       req.PreferredAirline,
		airlineOnly:   req.AirlineOnly,
		start:         start,
		end:           req.ResolvedEndLocation(),
		homeBase:      req.ResolvedHomeBase(),
		budget:        req.BudgetMinutes(),
		turnaround:    g.TurnaroundMinutes(req),
		closingWindow: int(g.closingWindow / time.Minute),
		location:      req.StartLocation,
	}

	if err := run.checkAirports(ctx, req.StartLocation, run.end, run.homeBase); err != nil {
		return nil, err
	}
	return run.execute(ctx)
}

// generationRun is the private state of one Generate call
type generationRun struct {
	catalog *memoCatalog
	policy  SelectionPolicy
	scorer  RouteScorer
	rng     *rand.Rand

	prefs       entity.HaulPreferences
	airline     string
	airlineOnly bool

	start         time.Time
	end           string
	homeBase      string
	budget        int
	turnaround    int
	closingWindow int

	location string
	elapsed  int
	lastHaul entity.HaulType
	legs     []entity.GeneratedFlight
}

func (r *generationRun) checkAirports(ctx context.Context, codes ...string) error {
	for _, code := range codes {
		known, err := r.catalog.HasAirport(ctx, code)
		if err != nil {
			return fmt.Errorf("check airport %s: %w", code, err)
		}
		if !known {
			return &GenerationError{Kind: KindUnknownAirport, Airport: code}
		}
	}
	return nil
}

func (r *generationRun) execute(ctx context.Context) ([]entity.GeneratedFlight, error) {
	// Every leg consumes at least one minute plus turnaround
	maxLegs := r.budget/(r.turnaround+1) + 1

	for step := 0; r.elapsed < r.budget && step < maxLegs; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		remaining := r.budget - r.elapsed

		if remaining < r.closingWindow {
			if r.landed() {
				return r.legs, nil
			}
			route, ok, err := r.closingLeg(ctx, remaining)
			if err != nil {
				return nil, err
			}
			if ok {
				r.accept(route)
				return r.legs, nil
			}
		}

		candidates, err := r.candidates(ctx, "")
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			if r.landed() {
				return r.legs, nil
			}
			return nil, r.deadEnd()
		}

		eligible := r.applyContinuity(candidates)
		if len(eligible) == 0 {
			if r.landed() {
				return r.legs, nil
			}
			return nil, r.fail(KindNoRoutesAvailable, "no long-haul continuation away from home base")
		}

		route, ok := r.firstFitting(r.policy.Order(r.rng, eligible, r.prefs, r.airline), remaining)
		if !ok {
			break
		}
		r.accept(route)
	}

	if r.landed() {
		return r.legs, nil
	}
	return nil, r.fail(KindScheduleInfeasible,
		fmt.Sprintf("budget exhausted after %d legs without reaching %s", len(r.legs), r.end))
}

// closingLeg looks for a direct route to the end location that fits
func (r *generationRun) closingLeg(ctx context.Context, remaining int) (entity.Route, bool, error) {
	direct, err := r.candidates(ctx, r.end)
	if err != nil {
		return entity.Route{}, false, err
	}
	ranked := r.scorer.Rank(r.applyContinuity(direct), r.prefs, r.airline)
	route, ok := r.firstFitting(ranked, remaining)
	return route, ok, nil
}

func (r *generationRun) candidates(ctx context.Context, arrival string) ([]entity.Route, error) {
	query := entity.RouteQuery{Departure: r.location, Arrival: arrival}
	if r.airlineOnly {
		query.Airline = r.airline
	}

	routes, err := r.catalog.FindRoutes(ctx, query)
	if errors.Is(err, repository.ErrUnknownAirport) {
		return nil, &GenerationError{Kind: KindUnknownAirport, Airport: r.location, Legs: r.legs}
	}
	if err != nil {
		return nil, fmt.Errorf("find routes from %s: %w", r.location, err)
	}

	usable := make([]entity.Route, 0, len(routes))
	for _, route := range routes {
		if route.DurationMinutes > 0 {
			usable = append(usable, route)
		}
	}
	return usable, nil
}

// applyContinuity keeps a long-haul rotation on long-haul legs until the
// aircraft is back at home base
func (r *generationRun) applyContinuity(routes []entity.Route) []entity.Route {
	if r.lastHaul != entity.HaulLong || r.location == r.homeBase {
		return routes
	}
	long := make([]entity.Route, 0, len(routes))
	for _, route := range routes {
		if route.Haul() == entity.HaulLong {
			long = append(long, route)
		}
	}
	return long
}

func (r *generationRun) firstFitting(ordered []entity.Route, remaining int) (entity.Route, bool) {
	for _, route := range ordered {
		if route.DurationMinutes+r.turnaround <= remaining {
			return route, true
		}
	}
	return entity.Route{}, false
}

func (r *generationRun) accept(route entity.Route) {
	departure := r.start.Add(time.Duration(r.elapsed) * time.Minute)
	r.legs = append(r.legs, entity.NewGeneratedFlight(len(r.legs)+1, route, departure))
	r.elapsed += route.DurationMinutes + r.turnaround
	r.location = route.ArrivalIATA
	r.lastHaul = route.Haul()
}

func (r *generationRun) landed() bool {
	return len(r.legs) > 0 && r.location == r.end
}

// deadEnd reports an airport without usable departures. Being stuck at the
// start means there was never anything to fly; being stuck later means the
// end location cannot be reached from where the search went.
func (r *generationRun) deadEnd() error {
	if len(r.legs) == 0 {
		return r.fail(KindNoRoutesAvailable, "no outbound routes")
	}
	return r.fail(KindScheduleInfeasible, fmt.Sprintf("stranded with no outbound routes, cannot reach %s", r.end))
}

func (r *generationRun) fail(kind ErrorKind, detail string) *GenerationError {
	return &GenerationError{Kind: kind, Airport: r.location, Detail: detail, Legs: r.legs}
}
