package templates

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"
	_ "time/tzdata"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"
	"pilot-career-service/pkg/logger"
	"pilot-career-service/pkg/utils"
)

const scheduleTemplate = `Schedule {{if .ID}}{{.ID}}{{else}}(preview){{end}}{{if .PilotID}} for {{.PilotID}}{{end}}
{{.Start}} -> {{.End}} | {{.Days}} day(s) | {{.Legs}} leg(s) | block {{.Block}} | policy {{.Policy}}
{{range .Flights}}
{{printf "%2d" .Sequence}}. {{.Airline}} {{.From}} -> {{.To}} ({{.Haul}}, {{.Duration}})
    Departs {{.Departs}} | {{.FromName}}
    Arrives {{.Arrives}} | {{.ToName}}
{{end}}`

var summaryTmpl = template.Must(template.New("schedule").Parse(scheduleTemplate))

type summaryView struct {
	ID      string
	PilotID string
	Start   string
	End     string
	Days    int
	Legs    int
	Block   string
	Policy  string
	Flights []legView
}

type legView struct {
	Sequence int
	Airline  string
	From     string
	To       string
	Haul     entity.HaulType
	Duration string
	Departs  string
	Arrives  string
	FromName string
	ToName   string
}

// ItineraryRenderer renders schedules as plain text itineraries, with local
// departure and arrival times when airport time zones are known
type ItineraryRenderer struct {
	airports repository.AirportRepository
	logger   logger.Logger
}

// NewItineraryRenderer creates a renderer. airports may be nil, in which
// case all times are shown in UTC.
func NewItineraryRenderer(airports repository.AirportRepository, logger logger.Logger) *ItineraryRenderer {
	return &ItineraryRenderer{
		airports: airports,
		logger:   logger,
	}
}

// Render writes the itinerary for schedule
func (r *ItineraryRenderer) Render(ctx context.Context, schedule *entity.Schedule) (string, error) {
	places := make(map[string]place)
	lookup := func(iata string) (place, error) {
		if p, ok := places[iata]; ok {
			return p, nil
		}
		p, err := r.place(ctx, iata)
		if err != nil {
			return place{}, err
		}
		places[iata] = p
		return p, nil
	}

	view := summaryView{
		ID:      schedule.ID,
		PilotID: schedule.PilotID,
		Start:   schedule.StartLocation,
		End:     schedule.EndLocation,
		Days:    schedule.DurationDays,
		Legs:    len(schedule.Flights),
		Block:   utils.FormatMinutes(schedule.BlockMinutes()),
		Policy:  schedule.Policy,
		Flights: make([]legView, 0, len(schedule.Flights)),
	}

	for _, f := range schedule.Flights {
		from, err := lookup(f.DepartureIATA)
		if err != nil {
			return "", err
		}
		to, err := lookup(f.ArrivalIATA)
		if err != nil {
			return "", err
		}
		view.Flights = append(view.Flights, legView{
			Sequence: f.Sequence,
			Airline:  f.AirlineIATA,
			From:     f.DepartureIATA,
			To:       f.ArrivalIATA,
			Haul:     f.Haul,
			Duration: utils.FormatMinutes(f.DurationMinutes),
			Departs:  from.format(f.DepartureTime),
			Arrives:  to.format(f.ArrivalTime),
			FromName: from.label,
			ToName:   to.label,
		})
	}

	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render schedule: %w", err)
	}
	return buf.String(), nil
}

type place struct {
	label    string
	location *time.Location
}

func (p place) format(t time.Time) string {
	return t.In(p.location).Format(utils.DATE_LAYOUT) + " " + t.In(p.location).Format("MST")
}

func (r *ItineraryRenderer) place(ctx context.Context, iata string) (place, error) {
	p := place{label: iata, location: time.UTC}
	if r.airports == nil {
		return p, nil
	}

	airport, err := r.airports.GetByIATA(ctx, iata)
	if errors.Is(err, repository.ErrUnknownAirport) {
		return p, nil
	}
	if err != nil {
		return place{}, fmt.Errorf("failed to get airport %s: %w", iata, err)
	}

	switch {
	case airport.Name != "" && airport.City != "":
		p.label = fmt.Sprintf("%s | %s", airport.Name, airport.City)
	case airport.Name != "":
		p.label = airport.Name
	}
	if airport.TzName != "" {
		loc, err := time.LoadLocation(airport.TzName)
		if err != nil {
			r.logger.Warn("Unknown airport time zone, using UTC", "iata", iata, "tz", airport.TzName)
		} else {
			p.location = loc
		}
	}
	return p, nil
}
