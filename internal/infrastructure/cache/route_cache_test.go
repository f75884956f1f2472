package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilot-career-service/internal/domain/entity"
	domainrepo "pilot-career-service/internal/domain/repository"
	"pilot-career-service/internal/interface/repository"
	"pilot-career-service/pkg/logger"
	"pilot-career-service/pkg/metrics"
)

func TestRouteKey(t *testing.T) {
	key := RouteKey(entity.RouteQuery{Departure: "LAX", Arrival: "JFK", Airline: "AA", Haul: entity.HaulMedium, Limit: 10, Offset: 20})
	assert.Equal(t, "career:routes:LAX:JFK:AA:medium:10:20", key)

	assert.Equal(t, "career:routes:LAX::::0:0", RouteKey(entity.RouteQuery{Departure: "LAX"}))
}

func TestCachedRouteCatalogFallsBackWithoutRedis(t *testing.T) {
	catalog := repository.NewMemoryCatalog()
	catalog.AddRoute(entity.Route{ID: 1, DepartureIATA: "LAX", ArrivalIATA: "JFK", AirlineIATA: "AA", DurationMinutes: 330})
	m := metrics.NewMetrics("test", prometheus.NewRegistry())

	cached := NewCachedRouteCatalog(catalog, Config{
		RedisAddr:   "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
	}, logger.NewNopLogger(), m)
	defer cached.Close()

	assert.False(t, cached.IsAvailable())

	ctx := context.Background()
	routes, err := cached.FindRoutes(ctx, entity.RouteQuery{Departure: "LAX"})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "JFK", routes[0].ArrivalIATA)

	known, err := cached.HasAirport(ctx, "JFK")
	require.NoError(t, err)
	assert.True(t, known)

	assert.NoError(t, cached.Invalidate(ctx))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(resultDisabled)))
}

func TestCachedRouteCatalogWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	catalog := repository.NewMemoryCatalog()
	catalog.AddRoute(entity.Route{ID: 1, DepartureIATA: "LAX", ArrivalIATA: "JFK", AirlineIATA: "AA", DurationMinutes: 330, DistanceKm: 3983})
	m := metrics.NewMetrics("test", prometheus.NewRegistry())

	cached := NewCachedRouteCatalog(catalog, Config{
		RedisAddr: mr.Addr(),
		RouteTTL:  time.Minute,
	}, logger.NewNopLogger(), m)
	defer cached.Close()
	require.True(t, cached.IsAvailable())

	ctx := context.Background()
	query := entity.RouteQuery{Departure: "LAX"}
	key := RouteKey(query)

	first, err := cached.FindRoutes(ctx, query)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	// Served from Redis, so the new route stays invisible until invalidation
	catalog.AddRoute(entity.Route{ID: 2, DepartureIATA: "LAX", ArrivalIATA: "SFO", AirlineIATA: "UA", DurationMinutes: 85})
	second, err := cached.FindRoutes(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(resultMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(resultHit)))

	_, err = cached.FindRoutes(ctx, entity.RouteQuery{Departure: "ZZZ"})
	assert.ErrorIs(t, err, domainrepo.ErrUnknownAirport)
	assert.False(t, mr.Exists(RouteKey(entity.RouteQuery{Departure: "ZZZ"})))

	require.NoError(t, cached.Invalidate(ctx))
	assert.Empty(t, mr.Keys())

	routes, err := cached.FindRoutes(ctx, query)
	require.NoError(t, err)
	assert.Len(t, routes, 2)

	mr.Close()
	routes, err = cached.FindRoutes(ctx, query)
	require.NoError(t, err)
	assert.Len(t, routes, 2)
	assert.False(t, cached.IsAvailable())

	_, err = cached.FindRoutes(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(resultDisabled)))
}
