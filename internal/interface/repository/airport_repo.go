package repository

import (
	"context"
	"errors"
	"time"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	ID        uint           `gorm:"primaryKey"`
	IATA      string         `gorm:"column:iata;type:varchar(3);uniqueIndex"`
	Name      string         `gorm:"column:airport_name"`
	City      string         `gorm:"column:city"`
	Country   string         `gorm:"column:country"`
	TzName    string         `gorm:"column:tzname"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// GetByIATA finds an airport by its IATA code
func (r *GormAirportRepository) GetByIATA(ctx context.Context, iata string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Where("iata = ?", iata).First(&airport)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, repository.ErrUnknownAirport
	}
	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.Airport{
		ID:        airport.ID,
		IATA:      airport.IATA,
		Name:      airport.Name,
		City:      airport.City,
		Country:   airport.Country,
		TzName:    airport.TzName,
		CreatedAt: airport.CreatedAt,
		UpdatedAt: airport.UpdatedAt,
		DeletedAt: airport.DeletedAt,
	}, nil
}

// Exists reports whether an active airport with the code is present
func (r *GormAirportRepository) Exists(ctx context.Context, iata string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Airports{}).Where("iata = ?", iata).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
