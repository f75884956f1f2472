package repository

import (
	"context"

	"pilot-career-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport lookups
type AirportRepository interface {
	GetByIATA(ctx context.Context, iata string) (*entity.Airport, error)
	Exists(ctx context.Context, iata string) (bool, error)
}
