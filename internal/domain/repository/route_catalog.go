package repository

import (
	"context"
	"errors"

	"pilot-career-service/internal/domain/entity"
)

// ErrUnknownAirport may be returned by FindRoutes when the departure airport
// is not in the catalog. An airport without matching routes yields an empty
// slice instead.
var ErrUnknownAirport = errors.New("unknown airport")

// RouteCatalog is the read side of the route network used by the schedule
// generator. Implementations must return routes in a stable order.
type RouteCatalog interface {
	FindRoutes(ctx context.Context, query entity.RouteQuery) ([]entity.Route, error)
	HasAirport(ctx context.Context, iata string) (bool, error)
}
