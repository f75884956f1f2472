package repository

import (
	"context"
	"errors"
	"time"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirlineRepository implements the AirlineRepository interface
type GormAirlineRepository struct {
	db *gorm.DB
}

// NewGormAirlineRepository creates a new GORM airline repository
func NewGormAirlineRepository(db *gorm.DB) repository.AirlineRepository {
	return &GormAirlineRepository{
		db: db,
	}
}

// Airlines GORM model for database mapping
type Airlines struct {
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"column:code;type:varchar(3);uniqueIndex"`
	Name      string         `gorm:"column:name"`
	Country   string         `gorm:"column:country"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airlines) TableName() string {
	return "m_airlines"
}

// GetByCode finds an airline by its IATA designator
func (r *GormAirlineRepository) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	var airline Airlines
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&airline)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, repository.ErrAirlineNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return airline.toEntity(), nil
}

// List returns all active airlines ordered by code
func (r *GormAirlineRepository) List(ctx context.Context) ([]*entity.Airline, error) {
	var airlines []Airlines
	if err := r.db.WithContext(ctx).Order("code").Find(&airlines).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.Airline, 0, len(airlines))
	for i := range airlines {
		entities = append(entities, airlines[i].toEntity())
	}
	return entities, nil
}

// Convert GORM model to domain entity
func (a *Airlines) toEntity() *entity.Airline {
	return &entity.Airline{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Country:   a.Country,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		DeletedAt: a.DeletedAt,
	}
}
