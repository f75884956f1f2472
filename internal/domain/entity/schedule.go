package entity

import "time"

// Schedule is a persisted, successfully generated itinerary
type Schedule struct {
	ID                string            `json:"id" bson:"scheduleId"`
	PilotID           string            `json:"pilotId,omitempty" bson:"pilotId,omitempty"`
	StartLocation     string            `json:"startLocation" bson:"startLocation"`
	EndLocation       string            `json:"endLocation" bson:"endLocation"`
	HomeBase          string            `json:"homeBase" bson:"homeBase"`
	DurationDays      int               `json:"durationDays" bson:"durationDays"`
	Policy            string            `json:"policy" bson:"policy"`
	TurnaroundMinutes int               `json:"turnaroundMinutes" bson:"turnaroundMinutes"`
	StartAt           time.Time         `json:"startAt" bson:"startAt"`
	Flights           []GeneratedFlight `json:"flights" bson:"flights"`
	CreatedAt         time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// BlockMinutes sums airborne time over all legs
func (s *Schedule) BlockMinutes() int {
	total := 0
	for _, f := range s.Flights {
		total += f.DurationMinutes
	}
	return total
}

// EndsAt is the arrival time of the last leg, or StartAt for an empty schedule
func (s *Schedule) EndsAt() time.Time {
	if len(s.Flights) == 0 {
		return s.StartAt
	}
	return s.Flights[len(s.Flights)-1].ArrivalTime
}
