package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline represents an operating carrier in the route catalog
type Airline struct {
	ID        uint
	Code      string // IATA designator, e.g. "AA"
	Name      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
