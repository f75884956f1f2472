package entity

// Route is a scheduled city pair flown by one airline. Routes are read-only
// catalog data.
type Route struct {
	ID              uint   `json:"routeId" yaml:"id"`
	DepartureIATA   string `json:"departureIata" yaml:"departure"`
	ArrivalIATA     string `json:"arrivalIata" yaml:"arrival"`
	AirlineIATA     string `json:"airlineIata" yaml:"airline"`
	DurationMinutes int    `json:"durationMinutes" yaml:"duration_minutes"`
	DistanceKm      int    `json:"distanceKm" yaml:"distance_km"`
}

// Haul classifies the route by its block time
func (r Route) Haul() HaulType {
	return ClassifyHaul(r.DurationMinutes)
}

// RouteQuery filters catalog lookups. Empty fields match everything.
type RouteQuery struct {
	Departure string
	Arrival   string
	Airline   string
	Haul      HaulType

	// Paging is only honoured by browsing endpoints
	Limit  int
	Offset int
}
