package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"park-system/internal/database"
	"park-system/internal/models"
)

// ParkRepository handles park data operations
type ParkRepository struct {
	col *mongo.Collection
}

// NewParkRepository creates a new park repository
func NewParkRepository(db *database.DB) *ParkRepository {
	return &ParkRepository{col: db.Collection(database.CollectionParks)}
}

// GetAll retrieves all parks, ordered by park id.
func (r *ParkRepository) GetAll(ctx context.Context) ([]*models.Park, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "park_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list parks: %w", err)
	}
	defer cursor.Close(ctx)

	var parks []*models.Park
	if err := cursor.All(ctx, &parks); err != nil {
		return nil, fmt.Errorf("failed to decode parks: %w", err)
	}
	return parks, nil
}

// GetByParkID retrieves a park by its park id
func (r *ParkRepository) GetByParkID(ctx context.Context, parkID string) (*models.Park, error) {
	park := &models.Park{}
	err := r.col.FindOne(ctx, bson.M{"park_id": parkID}).Decode(park)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrParkNotFound
		}
		return nil, fmt.Errorf("failed to get park: %w", err)
	}
	return park, nil
}

// Save upserts the park document keyed by park id.
func (r *ParkRepository) Save(ctx context.Context, park *models.Park) error {
	if err := park.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, err := r.col.ReplaceOne(ctx, bson.M{"park_id": park.ParkID}, park, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save park: %w", err)
	}
	return nil
}

// Delete removes a park by park id
func (r *ParkRepository) Delete(ctx context.Context, parkID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"park_id": parkID})
	if err != nil {
		return fmt.Errorf("failed to delete park: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrParkNotFound
	}
	return nil
}

// UpdateSchedules replaces the schedule list for a park.
func (r *ParkRepository) UpdateSchedules(ctx context.Context, parkID string, schedules []models.Schedule) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"park_id": parkID},
		bson.M{"$set": bson.M{"schedules": schedules}})
	if err != nil {
		return fmt.Errorf("failed to update schedules: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrParkNotFound
	}
	return nil
}

// BookSpots atomically increments a schedule's occupancy by qty, guarded
// against exceeding the park-level capacity. The update filter pins the
// occupancy value read during validation, so a concurrent change makes
// the write a no-op and the booking fails rather than overbooking.
func (r *ParkRepository) BookSpots(ctx context.Context, parkID, visitDate string, qty int) error {
	park, err := r.GetByParkID(ctx, parkID)
	if err != nil {
		return err
	}

	schedule := park.FindSchedule(visitDate)
	if schedule == nil {
		return models.ErrScheduleNotFound
	}
	if schedule.CurrentOccupancy+qty > park.MaxCapacity {
		return models.ErrScheduleFull
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{
			"park_id": parkID,
			"schedules": bson.M{"$elemMatch": bson.M{
				"visit_date":        visitDate,
				"current_occupancy": schedule.CurrentOccupancy,
			}},
		},
		bson.M{"$inc": bson.M{"schedules.$.current_occupancy": qty}})
	if err != nil {
		return fmt.Errorf("failed to book spots: %w", err)
	}
	if res.ModifiedCount == 0 {
		return models.ErrScheduleFull
	}
	return nil
}

// ReleaseSpots decrements a schedule's occupancy by qty, clamped at zero.
func (r *ParkRepository) ReleaseSpots(ctx context.Context, parkID, visitDate string, qty int) error {
	park, err := r.GetByParkID(ctx, parkID)
	if err != nil {
		return err
	}

	schedule := park.FindSchedule(visitDate)
	if schedule == nil {
		return models.ErrScheduleNotFound
	}

	next := schedule.CurrentOccupancy - qty
	if next < 0 {
		next = 0
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"park_id": parkID, "schedules.visit_date": visitDate},
		bson.M{"$set": bson.M{"schedules.$.current_occupancy": next}})
	if err != nil {
		return fmt.Errorf("failed to release spots: %w", err)
	}
	return nil
}

// Count returns the total number of parks.
func (r *ParkRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count parks: %w", err)
	}
	return count, nil
}
