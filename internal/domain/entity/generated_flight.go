package entity

import (
	"time"
)

// GeneratedFlight is one accepted leg of a generated schedule
type GeneratedFlight struct {
	Sequence        int       `json:"sequence" bson:"sequence"`
	RouteID         uint      `json:"routeId" bson:"routeId"`
	DepartureIATA   string    `json:"departureIata" bson:"departureIata"`
	ArrivalIATA     string    `json:"arrivalIata" bson:"arrivalIata"`
	AirlineIATA     string    `json:"airlineIata" bson:"airlineIata"`
	DurationMinutes int       `json:"durationMinutes" bson:"durationMinutes"`
	Haul            HaulType  `json:"haul" bson:"haul"`
	DepartureTime   time.Time `json:"departureTime" bson:"departureTime"`
	ArrivalTime     time.Time `json:"arrivalTime" bson:"arrivalTime"`
}

// NewGeneratedFlight schedules route r to depart at departure
func NewGeneratedFlight(seq int, r Route, departure time.Time) GeneratedFlight {
	return GeneratedFlight{
		Sequence:        seq,
		RouteID:         r.ID,
		DepartureIATA:   r.DepartureIATA,
		ArrivalIATA:     r.ArrivalIATA,
		AirlineIATA:     r.AirlineIATA,
		DurationMinutes: r.DurationMinutes,
		Haul:            r.Haul(),
		DepartureTime:   departure,
		ArrivalTime:     departure.Add(time.Duration(r.DurationMinutes) * time.Minute),
	}
}
