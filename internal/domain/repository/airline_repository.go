package repository

import (
	"context"
	"errors"

	"pilot-career-service/internal/domain/entity"
)

// AirlineRepository defines the interface for airline operations
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
	List(ctx context.Context) ([]*entity.Airline, error)
}

// ErrAirlineNotFound is returned when no airline matches the code
var ErrAirlineNotFound = errors.New("airline not found")
