package templates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/interface/repository"
	"pilot-career-service/pkg/logger"
)

func testSchedule() *entity.Schedule {
	start := time.Date(2026, 5, 4, 15, 0, 0, 0, time.UTC)
	out := entity.Route{ID: 1, DepartureIATA: "LAX", ArrivalIATA: "JFK", AirlineIATA: "AA", DurationMinutes: 330}
	back := entity.Route{ID: 2, DepartureIATA: "JFK", ArrivalIATA: "LAX", AirlineIATA: "AA", DurationMinutes: 360}
	first := entity.NewGeneratedFlight(1, out, start)
	second := entity.NewGeneratedFlight(2, back, first.ArrivalTime.Add(time.Hour))
	return &entity.Schedule{
		ID:            "sched-1",
		PilotID:       "pilot-7",
		StartLocation: "LAX",
		EndLocation:   "LAX",
		DurationDays:  1,
		Policy:        "ranked",
		StartAt:       start,
		Flights:       []entity.GeneratedFlight{first, second},
	}
}

func TestRenderWithoutAirportData(t *testing.T) {
	out, err := NewItineraryRenderer(nil, logger.NewNopLogger()).Render(context.Background(), testSchedule())
	require.NoError(t, err)

	assert.Contains(t, out, "Schedule sched-1 for pilot-7")
	assert.Contains(t, out, "LAX -> LAX | 1 day(s) | 2 leg(s) | block 11h30m | policy ranked")
	assert.Contains(t, out, " 1. AA LAX -> JFK (medium, 5h30m)")
	assert.Contains(t, out, "Departs 04 May 2026 15:00 UTC | LAX")
	assert.Contains(t, out, "Arrives 04 May 2026 20:30 UTC | JFK")
	assert.Contains(t, out, " 2. AA JFK -> LAX (medium, 6h)")
}

func TestRenderUsesAirportTimeZones(t *testing.T) {
	catalog := repository.NewMemoryCatalog()
	catalog.AddAirport(entity.Airport{IATA: "LAX", Name: "Los Angeles Intl", City: "Los Angeles", TzName: "America/Los_Angeles"})
	catalog.AddAirport(entity.Airport{IATA: "JFK", Name: "John F Kennedy Intl", City: "New York", TzName: "Not/AZone"})

	out, err := NewItineraryRenderer(catalog, logger.NewNopLogger()).Render(context.Background(), testSchedule())
	require.NoError(t, err)

	assert.Contains(t, out, "Departs 04 May 2026 08:00 PDT | Los Angeles Intl | Los Angeles")
	assert.Contains(t, out, "Arrives 04 May 2026 20:30 UTC | John F Kennedy Intl | New York")
}

func TestRenderPreview(t *testing.T) {
	s := testSchedule()
	s.ID = ""
	s.PilotID = ""

	out, err := NewItineraryRenderer(nil, logger.NewNopLogger()).Render(context.Background(), s)
	require.NoError(t, err)
	assert.Contains(t, out, "Schedule (preview)\n")
}
