package repository

import (
	"context"
	"errors"

	"pilot-career-service/internal/domain/entity"
)

// ErrScheduleNotFound is returned when no schedule matches the lookup
var ErrScheduleNotFound = errors.New("schedule not found")

// ScheduleRepository defines the interface for schedule storage operations
type ScheduleRepository interface {
	Save(ctx context.Context, schedule *entity.Schedule) error
	FindByID(ctx context.Context, id string) (*entity.Schedule, error)
	ListByPilot(ctx context.Context, pilotID string, limit int) ([]*entity.Schedule, error)
}
