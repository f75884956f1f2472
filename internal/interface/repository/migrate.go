package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate creates or updates every table owned by this service
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Airlines{},
		&Airports{},
		&Routes{},
		&CareerSchedules{},
		&CareerScheduleFlights{},
	)
}

// SeedCatalog upserts the airports, airlines and routes of file. Routes
// without an id get one assigned by the database.
func SeedCatalog(ctx context.Context, db *gorm.DB, file *CatalogFile) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range file.Airports {
			row := Airports{IATA: a.IATA, Name: a.Name, City: a.City, Country: a.Country, TzName: a.Timezone}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "iata"}},
				DoUpdates: clause.AssignmentColumns([]string{"airport_name", "city", "country", "tzname", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("seed airport %s: %w", a.IATA, err)
			}
		}

		for _, a := range file.Airlines {
			row := Airlines{Code: a.Code, Name: a.Name, Country: a.Country}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "code"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "country", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("seed airline %s: %w", a.Code, err)
			}
		}

		for _, r := range file.Routes {
			// Route endpoints must exist for HasAirport to agree with FindRoutes
			for _, code := range []string{r.DepartureIATA, r.ArrivalIATA} {
				if err := tx.Where(Airports{IATA: code}).FirstOrCreate(&Airports{IATA: code}).Error; err != nil {
					return fmt.Errorf("seed airport %s: %w", code, err)
				}
			}

			row := Routes{
				ID:              r.ID,
				DepartureIATA:   r.DepartureIATA,
				ArrivalIATA:     r.ArrivalIATA,
				AirlineIATA:     r.AirlineIATA,
				DurationMinutes: r.DurationMinutes,
				DistanceKm:      r.DistanceKm,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"departure_iata", "arrival_iata", "airline_iata", "duration_minutes", "distance_km", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("seed route %s-%s: %w", r.DepartureIATA, r.ArrivalIATA, err)
			}
		}
		return nil
	})
}
