package repository

import (
	"context"
	"errors"
	"time"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormScheduleRepository implements the ScheduleRepository interface
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewGormScheduleRepository creates a new GORM schedule repository
func NewGormScheduleRepository(db *gorm.DB) repository.ScheduleRepository {
	return &GormScheduleRepository{
		db: db,
	}
}

// CareerSchedules GORM model for the schedule header
type CareerSchedules struct {
	ID                string                  `gorm:"primaryKey;type:varchar(36)"`
	PilotID           string                  `gorm:"column:pilot_id;index"`
	StartLocation     string                  `gorm:"column:start_location;type:varchar(3)"`
	EndLocation       string                  `gorm:"column:end_location;type:varchar(3)"`
	HomeBase          string                  `gorm:"column:home_base;type:varchar(3)"`
	DurationDays      int                     `gorm:"column:duration_days"`
	Policy            string                  `gorm:"column:policy"`
	TurnaroundMinutes int                     `gorm:"column:turnaround_minutes"`
	StartAt           time.Time               `gorm:"column:start_at"`
	Flights           []CareerScheduleFlights `gorm:"foreignKey:ScheduleID"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides the default table name
func (CareerSchedules) TableName() string {
	return "career_schedules"
}

// CareerScheduleFlights GORM model for one leg
type CareerScheduleFlights struct {
	ID              uint      `gorm:"primaryKey"`
	ScheduleID      string    `gorm:"column:schedule_id;type:varchar(36);index"`
	Sequence        int       `gorm:"column:sequence"`
	RouteID         uint      `gorm:"column:route_id"`
	DepartureIATA   string    `gorm:"column:departure_iata;type:varchar(3)"`
	ArrivalIATA     string    `gorm:"column:arrival_iata;type:varchar(3)"`
	AirlineIATA     string    `gorm:"column:airline_iata;type:varchar(3)"`
	DurationMinutes int       `gorm:"column:duration_minutes"`
	Haul            string    `gorm:"column:haul"`
	DepartureTime   time.Time `gorm:"column:departure_time"`
	ArrivalTime     time.Time `gorm:"column:arrival_time"`
}

// TableName overrides the default table name
func (CareerScheduleFlights) TableName() string {
	return "career_schedule_flights"
}

// Save inserts the schedule header and its legs in one transaction
func (r *GormScheduleRepository) Save(ctx context.Context, schedule *entity.Schedule) error {
	model := CareerSchedules{
		ID:                schedule.ID,
		PilotID:           schedule.PilotID,
		StartLocation:     schedule.StartLocation,
		EndLocation:       schedule.EndLocation,
		HomeBase:          schedule.HomeBase,
		DurationDays:      schedule.DurationDays,
		Policy:            schedule.Policy,
		TurnaroundMinutes: schedule.TurnaroundMinutes,
		StartAt:           schedule.StartAt,
	}
	for _, f := range schedule.Flights {
		model.Flights = append(model.Flights, CareerScheduleFlights{
			ScheduleID:      schedule.ID,
			Sequence:        f.Sequence,
			RouteID:         f.RouteID,
			DepartureIATA:   f.DepartureIATA,
			ArrivalIATA:     f.ArrivalIATA,
			AirlineIATA:     f.AirlineIATA,
			DurationMinutes: f.DurationMinutes,
			Haul:            string(f.Haul),
			DepartureTime:   f.DepartureTime,
			ArrivalTime:     f.ArrivalTime,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	if err != nil {
		return err
	}

	// Update the entity with the generated timestamps
	schedule.CreatedAt = model.CreatedAt
	schedule.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID loads a schedule with its legs in sequence order
func (r *GormScheduleRepository) FindByID(ctx context.Context, id string) (*entity.Schedule, error) {
	var model CareerSchedules
	result := r.db.WithContext(ctx).
		Preload("Flights", func(db *gorm.DB) *gorm.DB { return db.Order("sequence") }).
		Where("id = ?", id).
		First(&model)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, repository.ErrScheduleNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return model.toEntity(), nil
}

// ListByPilot returns the newest schedules of a pilot first
func (r *GormScheduleRepository) ListByPilot(ctx context.Context, pilotID string, limit int) ([]*entity.Schedule, error) {
	var models []CareerSchedules
	db := r.db.WithContext(ctx).
		Preload("Flights", func(db *gorm.DB) *gorm.DB { return db.Order("sequence") }).
		Where("pilot_id = ?", pilotID).
		Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}

	// Convert to domain entities
	entities := make([]*entity.Schedule, 0, len(models))
	for i := range models {
		entities = append(entities, models[i].toEntity())
	}
	return entities, nil
}

func (m *CareerSchedules) toEntity() *entity.Schedule {
	schedule := &entity.Schedule{
		ID:                m.ID,
		PilotID:           m.PilotID,
		StartLocation:     m.StartLocation,
		EndLocation:       m.EndLocation,
		HomeBase:          m.HomeBase,
		DurationDays:      m.DurationDays,
		Policy:            m.Policy,
		TurnaroundMinutes: m.TurnaroundMinutes,
		StartAt:           m.StartAt,
		Flights:           make([]entity.GeneratedFlight, 0, len(m.Flights)),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	for _, f := range m.Flights {
		schedule.Flights = append(schedule.Flights, entity.GeneratedFlight{
			Sequence:        f.Sequence,
			RouteID:         f.RouteID,
			DepartureIATA:   f.DepartureIATA,
			ArrivalIATA:     f.ArrivalIATA,
			AirlineIATA:     f.AirlineIATA,
			DurationMinutes: f.DurationMinutes,
			Haul:            entity.HaulType(f.Haul),
			DepartureTime:   f.DepartureTime,
			ArrivalTime:     f.ArrivalTime,
		})
	}
	return schedule
}
