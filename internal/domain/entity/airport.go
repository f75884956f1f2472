package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents an airport known to the route catalog
type Airport struct {
	ID        uint
	IATA      string
	Name      string
	City      string
	Country   string
	TzName    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
