package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scheduleCollection = "career_schedules"

// MongoScheduleRepository implements ScheduleRepository with one document
// per schedule, legs embedded
type MongoScheduleRepository struct {
	collection *mongo.Collection
}

// NewMongoScheduleRepository creates a new schedule repository and makes
// sure its indexes exist
func NewMongoScheduleRepository(ctx context.Context, db *mongo.Database) (repository.ScheduleRepository, error) {
	collection := db.Collection(scheduleCollection)

	if _, err := collection.Indexes().CreateMany(ctx, scheduleIndexes()); err != nil {
		return nil, fmt.Errorf("failed to create schedule indexes: %w", err)
	}

	return &MongoScheduleRepository{
		collection: collection,
	}, nil
}

// scheduleIndexes keeps scheduleId unique and serves newest-first listing
// per pilot
func scheduleIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "scheduleId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "pilotId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	}
}

// Save creates or replaces a schedule document
func (r *MongoScheduleRepository) Save(ctx context.Context, schedule *entity.Schedule) error {
	now := time.Now()
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"scheduleId": schedule.ID}

	_, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{"$set": scheduleDocument(schedule)},
		opts,
	)
	return err
}

// FindByID finds a schedule by its id
func (r *MongoScheduleRepository) FindByID(ctx context.Context, id string) (*entity.Schedule, error) {
	var schedule entity.Schedule
	err := r.collection.FindOne(ctx, bson.M{"scheduleId": id}).Decode(&schedule)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListByPilot returns the newest schedules of a pilot first
func (r *MongoScheduleRepository) ListByPilot(ctx context.Context, pilotID string, limit int) ([]*entity.Schedule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"pilotId": pilotID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	schedules := []*entity.Schedule{}
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// scheduleDocument builds the $set document for an upsert
func scheduleDocument(s *entity.Schedule) bson.M {
	return bson.M{
		"scheduleId":        s.ID,
		"pilotId":           s.PilotID,
		"startLocation":     s.StartLocation,
		"endLocation":       s.EndLocation,
		"homeBase":          s.HomeBase,
		"durationDays":      s.DurationDays,
		"policy":            s.Policy,
		"turnaroundMinutes": s.TurnaroundMinutes,
		"startAt":           s.StartAt,
		"flights":           s.Flights,
		"createdAt":         s.CreatedAt,
		"updatedAt":         s.UpdatedAt,
	}
}
