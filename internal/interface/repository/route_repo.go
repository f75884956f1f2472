package repository

import (
	"context"
	"time"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormRouteCatalog implements RouteCatalog over the m_routes and
// m_airports tables
type GormRouteCatalog struct {
	db       *gorm.DB
	airports repository.AirportRepository
}

// NewGormRouteCatalog creates a new GORM route catalog
func NewGormRouteCatalog(db *gorm.DB) *GormRouteCatalog {
	return &GormRouteCatalog{
		db:       db,
		airports: NewGormAirportRepository(db),
	}
}

// Routes GORM model for database mapping
type Routes struct {
	ID              uint   `gorm:"primaryKey"`
	DepartureIATA   string `gorm:"column:departure_iata;type:varchar(3);index:idx_routes_departure_arrival,priority:1"`
	ArrivalIATA     string `gorm:"column:arrival_iata;type:varchar(3);index:idx_routes_departure_arrival,priority:2"`
	AirlineIATA     string `gorm:"column:airline_iata;type:varchar(3)"`
	DurationMinutes int    `gorm:"column:duration_minutes"`
	DistanceKm      int    `gorm:"column:distance_km"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (Routes) TableName() string {
	return "m_routes"
}

// FindRoutes returns routes matching query ordered by id. An empty result
// for a departure airport that does not exist is reported as
// repository.ErrUnknownAirport.
func (c *GormRouteCatalog) FindRoutes(ctx context.Context, query entity.RouteQuery) ([]entity.Route, error) {
	db := c.db.WithContext(ctx).Model(&Routes{}).Where("departure_iata = ?", query.Departure)
	if query.Arrival != "" {
		db = db.Where("arrival_iata = ?", query.Arrival)
	}
	if query.Airline != "" {
		db = db.Where("airline_iata = ?", query.Airline)
	}
	db = applyHaulFilter(db, query.Haul)
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}
	if query.Offset > 0 {
		db = db.Offset(query.Offset)
	}

	var rows []Routes
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		known, err := c.airports.Exists(ctx, query.Departure)
		if err != nil {
			return nil, err
		}
		if !known {
			return nil, repository.ErrUnknownAirport
		}
	}

	routes := make([]entity.Route, 0, len(rows))
	for _, row := range rows {
		routes = append(routes, entity.Route{
			ID:              row.ID,
			DepartureIATA:   row.DepartureIATA,
			ArrivalIATA:     row.ArrivalIATA,
			AirlineIATA:     row.AirlineIATA,
			DurationMinutes: row.DurationMinutes,
			DistanceKm:      row.DistanceKm,
		})
	}
	return routes, nil
}

// HasAirport reports whether the airport exists
func (c *GormRouteCatalog) HasAirport(ctx context.Context, iata string) (bool, error) {
	return c.airports.Exists(ctx, iata)
}

// applyHaulFilter translates a haul bucket into a duration band
func applyHaulFilter(db *gorm.DB, haul entity.HaulType) *gorm.DB {
	switch haul {
	case entity.HaulShort:
		return db.Where("duration_minutes <= ?", entity.ShortHaulMaxMinutes)
	case entity.HaulMedium:
		return db.Where("duration_minutes > ? AND duration_minutes <= ?", entity.ShortHaulMaxMinutes, entity.MediumHaulMaxMinutes)
	case entity.HaulLong:
		return db.Where("duration_minutes > ?", entity.MediumHaulMaxMinutes)
	}
	return db
}
