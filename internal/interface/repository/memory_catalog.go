package repository

import (
	"context"
	"sort"
	"sync"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"
)

// MemoryCatalog is an in-process RouteCatalog. Routes are returned in
// insertion order. It also serves airport and airline lookups.
type MemoryCatalog struct {
	mu       sync.RWMutex
	airports map[string]entity.Airport
	airlines map[string]entity.Airline
	routes   []entity.Route
}

// NewMemoryCatalog creates an empty catalog
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		airports: make(map[string]entity.Airport),
		airlines: make(map[string]entity.Airline),
	}
}

// AddAirport registers an airport, replacing any previous entry
func (c *MemoryCatalog) AddAirport(airport entity.Airport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.airports[airport.IATA] = airport
}

// AddAirline registers an airline, replacing any previous entry
func (c *MemoryCatalog) AddAirline(airline entity.Airline) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.airlines[airline.Code] = airline
}

// AddRoute appends a route and registers both endpoints as airports
func (c *MemoryCatalog) AddRoute(route entity.Route) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if route.ID == 0 {
		route.ID = uint(len(c.routes) + 1)
	}
	for _, code := range []string{route.DepartureIATA, route.ArrivalIATA} {
		if _, ok := c.airports[code]; !ok {
			c.airports[code] = entity.Airport{IATA: code}
		}
	}
	c.routes = append(c.routes, route)
}

// FindRoutes returns routes matching query, or repository.ErrUnknownAirport
// when the departure airport was never registered
func (c *MemoryCatalog) FindRoutes(ctx context.Context, query entity.RouteQuery) ([]entity.Route, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.airports[query.Departure]; !ok {
		return nil, repository.ErrUnknownAirport
	}

	var matched []entity.Route
	for _, r := range c.routes {
		if r.DepartureIATA != query.Departure {
			continue
		}
		if query.Arrival != "" && r.ArrivalIATA != query.Arrival {
			continue
		}
		if query.Airline != "" && r.AirlineIATA != query.Airline {
			continue
		}
		if query.Haul != "" && query.Haul != entity.HaulAny && r.Haul() != query.Haul {
			continue
		}
		matched = append(matched, r)
	}
	return paginate(matched, query.Limit, query.Offset), nil
}

// HasAirport reports whether iata is registered
func (c *MemoryCatalog) HasAirport(ctx context.Context, iata string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.airports[iata]
	return ok, nil
}

// GetByIATA implements repository.AirportRepository
func (c *MemoryCatalog) GetByIATA(ctx context.Context, iata string) (*entity.Airport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	airport, ok := c.airports[iata]
	if !ok {
		return nil, repository.ErrUnknownAirport
	}
	return &airport, nil
}

// Exists implements repository.AirportRepository
func (c *MemoryCatalog) Exists(ctx context.Context, iata string) (bool, error) {
	return c.HasAirport(ctx, iata)
}

// GetByCode implements repository.AirlineRepository
func (c *MemoryCatalog) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	airline, ok := c.airlines[code]
	if !ok {
		return nil, repository.ErrAirlineNotFound
	}
	return &airline, nil
}

// List implements repository.AirlineRepository
func (c *MemoryCatalog) List(ctx context.Context) ([]*entity.Airline, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*entity.Airline, 0, len(c.airlines))
	for _, a := range c.airlines {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// Airports lists registered airports ordered by code
func (c *MemoryCatalog) Airports() []entity.Airport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Airport, 0, len(c.airports))
	for _, a := range c.airports {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IATA < out[j].IATA })
	return out
}

func paginate(routes []entity.Route, limit, offset int) []entity.Route {
	if offset > 0 {
		if offset >= len(routes) {
			return []entity.Route{}
		}
		routes = routes[offset:]
	}
	if limit > 0 && limit < len(routes) {
		routes = routes[:limit]
	}
	if routes == nil {
		return []entity.Route{}
	}
	return routes
}
