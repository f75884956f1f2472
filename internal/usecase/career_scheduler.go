package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"
	"pilot-career-service/pkg/logger"
	"pilot-career-service/pkg/metrics"
	"pilot-career-service/pkg/utils"
)

// Listing limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// CareerScheduler generates, stores and looks up pilot schedules
type CareerScheduler struct {
	catalog       repository.RouteCatalog
	airlines      repository.AirlineRepository
	schedules     repository.ScheduleRepository
	policies      PolicyRouter
	generator     *ScheduleGenerator
	metrics       *metrics.Metrics
	logger        logger.Logger
	defaultPolicy string
	newID         func() string
	now           func() time.Time
}

// NewCareerScheduler creates a new career scheduler. airlines, schedules and
// m may be nil: airline checks, persistence and metrics are then skipped.
func NewCareerScheduler(
	catalog repository.RouteCatalog,
	airlines repository.AirlineRepository,
	schedules repository.ScheduleRepository,
	policies PolicyRouter,
	generator *ScheduleGenerator,
	m *metrics.Metrics,
	logger logger.Logger,
	defaultPolicy string,
) *CareerScheduler {
	if defaultPolicy == "" {
		defaultPolicy = PolicyScoreRanked
	}
	return &CareerScheduler{
		catalog:       catalog,
		airlines:      airlines,
		schedules:     schedules,
		policies:      policies,
		generator:     generator,
		metrics:       m,
		logger:        logger,
		defaultPolicy: defaultPolicy,
		newID:         uuid.NewString,
		now:           time.Now,
	}
}

// Generate builds a schedule for req and stores it. Failed runs are not
// stored.
func (s *CareerScheduler) Generate(ctx context.Context, req entity.ScheduleRequest) (*entity.Schedule, error) {
	schedule, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.schedules == nil {
		return schedule, nil
	}

	schedule.ID = s.newID()
	if err := s.schedules.Save(ctx, schedule); err != nil {
		s.countError("save_schedule")
		s.logger.Error("Failed to save schedule", "scheduleID", schedule.ID, "error", err)
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	s.logger.Info("Schedule generated",
		"scheduleID", schedule.ID,
		"pilotID", schedule.PilotID,
		"legs", len(schedule.Flights),
		"policy", schedule.Policy)
	return schedule, nil
}

// Preview builds a schedule without storing it
func (s *CareerScheduler) Preview(ctx context.Context, req entity.ScheduleRequest) (*entity.Schedule, error) {
	return s.build(ctx, req)
}

// GetSchedule loads a stored schedule
func (s *CareerScheduler) GetSchedule(ctx context.Context, id string) (*entity.Schedule, error) {
	if s.schedules == nil {
		return nil, repository.ErrScheduleNotFound
	}
	return s.schedules.FindByID(ctx, id)
}

// ListSchedules returns the newest schedules for a pilot
func (s *CareerScheduler) ListSchedules(ctx context.Context, pilotID string, limit int) ([]*entity.Schedule, error) {
	if pilotID == "" {
		return nil, invalidRequest("pilot id is required")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if s.schedules == nil {
		return []*entity.Schedule{}, nil
	}
	return s.schedules.ListByPilot(ctx, pilotID, limit)
}

// SearchRoutes queries the route catalog directly
func (s *CareerScheduler) SearchRoutes(ctx context.Context, query entity.RouteQuery) ([]entity.Route, error) {
	query.Departure = utils.NormalizeCode(query.Departure)
	query.Arrival = utils.NormalizeCode(query.Arrival)
	query.Airline = utils.NormalizeCode(query.Airline)

	if !utils.IsAirportCode(query.Departure) {
		return nil, invalidRequest("departure %q is not an airport code", query.Departure)
	}
	if query.Arrival != "" && !utils.IsAirportCode(query.Arrival) {
		return nil, invalidRequest("arrival %q is not an airport code", query.Arrival)
	}
	if query.Airline != "" && !utils.IsAirlineCode(query.Airline) {
		return nil, invalidRequest("airline %q is not an airline code", query.Airline)
	}
	if query.Limit < 0 || query.Offset < 0 {
		return nil, invalidRequest("limit and offset must not be negative")
	}
	if query.Limit == 0 || query.Limit > MaxListLimit {
		query.Limit = MaxListLimit
	}

	routes, err := s.catalog.FindRoutes(ctx, query)
	if errors.Is(err, repository.ErrUnknownAirport) {
		return nil, &GenerationError{Kind: KindUnknownAirport, Airport: query.Departure}
	}
	if err != nil {
		s.countError("search_routes")
		return nil, fmt.Errorf("failed to search routes: %w", err)
	}
	return routes, nil
}

func (s *CareerScheduler) build(ctx context.Context, req entity.ScheduleRequest) (*entity.Schedule, error) {
	req = NormalizeRequest(req)
	if req.StartAt.IsZero() {
		req.StartAt = s.now().UTC().Truncate(time.Minute)
	}

	policy, err := s.resolvePolicy(req.Policy)
	if err != nil {
		s.record("unknown", err, 0)
		return nil, err
	}
	if err := s.checkAirline(ctx, req.PreferredAirline); err != nil {
		s.record(policy.Name(), err, 0)
		return nil, err
	}

	log := s.logger.With("pilotID", req.PilotID, "start", req.StartLocation, "policy", policy.Name())
	log.Debug("Generating schedule", "days", req.DurationDays, "end", req.ResolvedEndLocation())

	started := time.Now()
	legs, err := s.generator.Generate(ctx, s.catalog, req, policy)
	s.record(policy.Name(), err, len(legs))
	if s.metrics != nil {
		s.metrics.GenerationTime.Observe(time.Since(started).Seconds())
	}
	if err != nil {
		if KindOf(err) == "" {
			s.countError("generate_schedule")
			log.Error("Schedule generation failed", "error", err)
		} else {
			log.Info("Schedule not generated", "reason", err.Error())
		}
		return nil, err
	}

	now := s.now()
	return &entity.Schedule{
		PilotID:           req.PilotID,
		StartLocation:     req.StartLocation,
		EndLocation:       req.ResolvedEndLocation(),
		HomeBase:          req.ResolvedHomeBase(),
		DurationDays:      req.DurationDays,
		Policy:            policy.Name(),
		TurnaroundMinutes: s.generator.TurnaroundMinutes(req),
		StartAt:           req.StartAt,
		Flights:           legs,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

func (s *CareerScheduler) resolvePolicy(name string) (SelectionPolicy, error) {
	if name == "" {
		name = s.defaultPolicy
	}
	if s.policies == nil {
		return nil, invalidRequest("no selection policies registered")
	}
	policy := s.policies.GetPolicy(name)
	if policy == nil {
		return nil, invalidRequest("unknown selection policy %q", name)
	}
	return policy, nil
}

func (s *CareerScheduler) checkAirline(ctx context.Context, code string) error {
	if code == "" || s.airlines == nil {
		return nil
	}
	if _, err := s.airlines.GetByCode(ctx, code); err != nil {
		if errors.Is(err, repository.ErrAirlineNotFound) {
			return invalidRequest("unknown airline %s", code)
		}
		s.countError("get_airline")
		return fmt.Errorf("failed to look up airline %s: %w", code, err)
	}
	return nil
}

func (s *CareerScheduler) record(policy string, err error, legs int) {
	if s.metrics == nil {
		return
	}
	s.metrics.SchedulesGenerated.WithLabelValues(policy, outcomeOf(err)).Inc()
	if err == nil {
		s.metrics.LegsPerSchedule.Observe(float64(legs))
	}
}

func (s *CareerScheduler) countError(operation string) {
	if s.metrics != nil {
		s.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch KindOf(err) {
	case KindInvalidRequest:
		return metrics.OutcomeInvalidRequest
	case KindUnknownAirport:
		return metrics.OutcomeUnknownAirport
	case KindNoRoutesAvailable:
		return metrics.OutcomeNoRoutes
	case KindScheduleInfeasible:
		return metrics.OutcomeInfeasible
	}
	return metrics.OutcomeError
}
