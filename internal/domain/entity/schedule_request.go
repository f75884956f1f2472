package entity

import "time"

// ReturnPolicy decides where a schedule ends when no explicit end location
// is requested
type ReturnPolicy string

const (
	ReturnToStart    ReturnPolicy = "start"
	ReturnToHomeBase ReturnPolicy = "home_base"
)

// DefaultMaxLayoverMinutes bounds the turnaround when a request leaves it unset
const DefaultMaxLayoverMinutes = 240

// ScheduleRequest describes one schedule generation call. It is never
// mutated by the generator.
type ScheduleRequest struct {
	PilotID           string          `json:"pilotId,omitempty" validate:"max=64"`
	StartLocation     string          `json:"startLocation" validate:"required,airport"`
	EndLocation       string          `json:"endLocation,omitempty" validate:"omitempty,airport"`
	HomeBase          string          `json:"homeBase,omitempty" validate:"omitempty,airport"`
	ReturnTo          ReturnPolicy    `json:"returnTo,omitempty" validate:"omitempty,oneof=start home_base"`
	DurationDays      int             `json:"durationDays" validate:"min=1,max=30"`
	HaulPreferences   HaulPreferences `json:"haulPreferences"`
	PreferredAirline  string          `json:"preferredAirline,omitempty" validate:"omitempty,airline"`
	AirlineOnly       bool            `json:"airlineOnly,omitempty"`
	MaxLayoverMinutes int             `json:"maxLayoverMinutes,omitempty" validate:"gte=0"`
	StartAt           time.Time       `json:"startAt,omitempty"`
	Policy            string          `json:"policy,omitempty"`
}

// ResolvedHomeBase is the declared home base, or the start location
func (r ScheduleRequest) ResolvedHomeBase() string {
	if r.HomeBase != "" {
		return r.HomeBase
	}
	return r.StartLocation
}

// ResolvedEndLocation applies ReturnTo when EndLocation is empty
func (r ScheduleRequest) ResolvedEndLocation() string {
	if r.EndLocation != "" {
		return r.EndLocation
	}
	if r.ReturnTo == ReturnToHomeBase {
		return r.HomeBase
	}
	return r.StartLocation
}

// BudgetMinutes is the total schedule length
func (r ScheduleRequest) BudgetMinutes() int {
	return r.DurationDays * 24 * 60
}

// LayoverCapMinutes is MaxLayoverMinutes with the default applied
func (r ScheduleRequest) LayoverCapMinutes() int {
	if r.MaxLayoverMinutes > 0 {
		return r.MaxLayoverMinutes
	}
	return DefaultMaxLayoverMinutes
}
