package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"
)

const testCatalogYAML = `
airports:
  - {iata: lax, name: Los Angeles International, city: Los Angeles, country: US, timezone: America/Los_Angeles}
  - {iata: JFK, name: John F Kennedy International, city: New York, country: US, timezone: America/New_York}
  - {iata: SFO, name: San Francisco International, city: San Francisco, country: US, timezone: America/Los_Angeles}
airlines:
  - {code: aa, name: American Airlines, country: US}
  - {code: UA, name: United Airlines, country: US}
routes:
  - {id: 1, departure: LAX, arrival: JFK, airline: AA, duration_minutes: 330, distance_km: 3983}
  - {id: 2, departure: LAX, arrival: SFO, airline: UA, duration_minutes: 85, distance_km: 543}
  - {id: 3, departure: LAX, arrival: NRT, airline: AA, duration_minutes: 700, distance_km: 8756}
  - {id: 4, departure: JFK, arrival: LAX, airline: AA, duration_minutes: 360, distance_km: 3983}
`

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db), "migrate schema")
	return db
}

func seededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	file, err := ParseCatalog([]byte(testCatalogYAML))
	require.NoError(t, err)
	require.NoError(t, SeedCatalog(context.Background(), db, file))
	return db
}

func TestParseCatalogNormalizesCodes(t *testing.T) {
	file, err := ParseCatalog([]byte(testCatalogYAML))
	require.NoError(t, err)

	assert.Equal(t, "LAX", file.Airports[0].IATA)
	assert.Equal(t, "AA", file.Airlines[0].Code)
	assert.Len(t, file.Routes, 4)
	assert.Equal(t, 330, file.Routes[0].DurationMinutes)
}

func TestParseCatalogRejectsBadRoutes(t *testing.T) {
	_, err := ParseCatalog([]byte(`routes: [{departure: LAX, arrival: JFK, airline: AA, duration_minutes: 0}]`))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte(`routes: [{departure: LAXX, arrival: JFK, airline: AA, duration_minutes: 60}]`))
	assert.Error(t, err)
}

func TestGormRouteCatalogFindRoutes(t *testing.T) {
	db := seededDB(t)
	catalog := NewGormRouteCatalog(db)
	ctx := context.Background()

	tests := []struct {
		name  string
		query entity.RouteQuery
		ids   []uint
	}{
		{"all from LAX", entity.RouteQuery{Departure: "LAX"}, []uint{1, 2, 3}},
		{"arrival", entity.RouteQuery{Departure: "LAX", Arrival: "JFK"}, []uint{1}},
		{"airline", entity.RouteQuery{Departure: "LAX", Airline: "AA"}, []uint{1, 3}},
		{"short haul", entity.RouteQuery{Departure: "LAX", Haul: entity.HaulShort}, []uint{2}},
		{"medium haul", entity.RouteQuery{Departure: "LAX", Haul: entity.HaulMedium}, []uint{1}},
		{"long haul", entity.RouteQuery{Departure: "LAX", Haul: entity.HaulLong}, []uint{3}},
		{"paged", entity.RouteQuery{Departure: "LAX", Limit: 1, Offset: 1}, []uint{2}},
		{"known airport no routes", entity.RouteQuery{Departure: "SFO"}, []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes, err := catalog.FindRoutes(ctx, tt.query)
			require.NoError(t, err)
			ids := make([]uint, 0, len(routes))
			for _, r := range routes {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestGormRouteCatalogUnknownAirport(t *testing.T) {
	catalog := NewGormRouteCatalog(seededDB(t))
	ctx := context.Background()

	_, err := catalog.FindRoutes(ctx, entity.RouteQuery{Departure: "ZZZ"})
	assert.ErrorIs(t, err, repository.ErrUnknownAirport)

	known, err := catalog.HasAirport(ctx, "NRT")
	require.NoError(t, err)
	assert.True(t, known, "route endpoints are registered as airports")

	known, err = catalog.HasAirport(ctx, "ZZZ")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	db := seededDB(t)
	file, err := ParseCatalog([]byte(testCatalogYAML))
	require.NoError(t, err)
	require.NoError(t, SeedCatalog(context.Background(), db, file))

	var routes, airports int64
	require.NoError(t, db.Model(&Routes{}).Count(&routes).Error)
	require.NoError(t, db.Model(&Airports{}).Count(&airports).Error)
	assert.EqualValues(t, 4, routes)
	assert.EqualValues(t, 4, airports)
}

func TestGormAirlineRepository(t *testing.T) {
	repo := NewGormAirlineRepository(seededDB(t))
	ctx := context.Background()

	airline, err := repo.GetByCode(ctx, "AA")
	require.NoError(t, err)
	assert.Equal(t, "American Airlines", airline.Name)

	_, err = repo.GetByCode(ctx, "ZZ")
	assert.ErrorIs(t, err, repository.ErrAirlineNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "UA", all[1].Code)
}

func TestGormAirportRepository(t *testing.T) {
	repo := NewGormAirportRepository(seededDB(t))
	ctx := context.Background()

	airport, err := repo.GetByIATA(ctx, "JFK")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", airport.TzName)

	_, err = repo.GetByIATA(ctx, "ZZZ")
	assert.ErrorIs(t, err, repository.ErrUnknownAirport)
}

func TestGormScheduleRepositoryRoundTrip(t *testing.T) {
	repo := NewGormScheduleRepository(newTestDB(t))
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	schedule := &entity.Schedule{
		ID:                "c7a4c0b8-0000-4000-8000-000000000001",
		PilotID:           "pilot-7",
		StartLocation:     "LAX",
		EndLocation:       "LAX",
		HomeBase:          "LAX",
		DurationDays:      1,
		Policy:            "ranked",
		TurnaroundMinutes: 60,
		StartAt:           start,
		Flights: []entity.GeneratedFlight{
			entity.NewGeneratedFlight(1, entity.Route{ID: 1, DepartureIATA: "LAX", ArrivalIATA: "JFK", AirlineIATA: "AA", DurationMinutes: 330}, start),
			entity.NewGeneratedFlight(2, entity.Route{ID: 4, DepartureIATA: "JFK", ArrivalIATA: "LAX", AirlineIATA: "AA", DurationMinutes: 360}, start.Add(390*time.Minute)),
		},
	}
	require.NoError(t, repo.Save(ctx, schedule))
	assert.False(t, schedule.CreatedAt.IsZero())

	loaded, err := repo.FindByID(ctx, schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, "pilot-7", loaded.PilotID)
	require.Len(t, loaded.Flights, 2)
	assert.Equal(t, "JFK", loaded.Flights[1].DepartureIATA)
	assert.Equal(t, entity.HaulMedium, loaded.Flights[1].Haul)
	assert.True(t, loaded.Flights[0].ArrivalTime.Equal(start.Add(330*time.Minute)))

	list, err := repo.ListByPilot(ctx, "pilot-7", 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrScheduleNotFound)
}

func TestMemoryCatalog(t *testing.T) {
	file, err := ParseCatalog([]byte(testCatalogYAML))
	require.NoError(t, err)
	catalog := file.MemoryCatalog()
	ctx := context.Background()

	routes, err := catalog.FindRoutes(ctx, entity.RouteQuery{Departure: "LAX", Haul: entity.HaulLong})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "NRT", routes[0].ArrivalIATA)

	routes, err = catalog.FindRoutes(ctx, entity.RouteQuery{Departure: "SFO"})
	require.NoError(t, err)
	assert.Empty(t, routes)

	_, err = catalog.FindRoutes(ctx, entity.RouteQuery{Departure: "ZZZ"})
	assert.ErrorIs(t, err, repository.ErrUnknownAirport)

	airport, err := catalog.GetByIATA(ctx, "LAX")
	require.NoError(t, err)
	assert.Equal(t, "Los Angeles", airport.City)
	assert.Len(t, catalog.Airports(), 4)

	airline, err := catalog.GetByCode(ctx, "AA")
	require.NoError(t, err)
	assert.Equal(t, "AA", airline.Code)
	_, err = catalog.GetByCode(ctx, "ZZ")
	assert.ErrorIs(t, err, repository.ErrAirlineNotFound)

	airlines, err := catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, airlines, 2)
	assert.Equal(t, "UA", airlines[1].Code)
}
