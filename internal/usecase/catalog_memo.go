package usecase

import (
	"context"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"
)

// memoCatalog caches lookups for the lifetime of one generation run
type memoCatalog struct {
	catalog  repository.RouteCatalog
	routes   map[entity.RouteQuery][]entity.Route
	airports map[string]bool
}

func newMemoCatalog(catalog repository.RouteCatalog) *memoCatalog {
	return &memoCatalog{
		catalog:  catalog,
		routes:   make(map[entity.RouteQuery][]entity.Route),
		airports: make(map[string]bool),
	}
}

func (m *memoCatalog) FindRoutes(ctx context.Context, query entity.RouteQuery) ([]entity.Route, error) {
	if routes, ok := m.routes[query]; ok {
		return routes, nil
	}
	routes, err := m.catalog.FindRoutes(ctx, query)
	if err != nil {
		return nil, err
	}
	m.routes[query] = routes
	return routes, nil
}

func (m *memoCatalog) HasAirport(ctx context.Context, iata string) (bool, error) {
	if known, ok := m.airports[iata]; ok {
		return known, nil
	}
	known, err := m.catalog.HasAirport(ctx, iata)
	if err != nil {
		return false, err
	}
	m.airports[iata] = known
	return known, nil
}
