// Package schedulestore persists feed and water dispense schedules.
package schedulestore

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/coophub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding schedules.
const CollectionName = "schedules"

var (
	// ErrNotFound is returned when the schedule does not exist for the farm.
	ErrNotFound = errors.New("schedule not found")
	// ErrInvalidKind is returned for a kind other than feed or water.
	ErrInvalidKind = errors.New("schedule kind must be feed or water")
	// ErrInvalidTime is returned for a time not in HH:MM form.
	ErrInvalidTime = errors.New("schedule time must be HH:MM")
	// ErrMissingAmount is returned when no amount is given.
	ErrMissingAmount = errors.New("schedule amount is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// ListByFarm returns the farm's schedules of one kind ordered by time of day.
func (s *Store) ListByFarm(ctx context.Context, farm, kind string) ([]models.FeedSchedule, error) {
	if !models.IsValidScheduleKind(kind) {
		return nil, ErrInvalidKind
	}
	cur, err := s.c.Find(ctx, bson.M{"farm": farm, "kind": kind},
		options.Find().SetSort(bson.D{{Key: "time", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.FeedSchedule
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Add creates an enabled schedule.
func (s *Store) Add(ctx context.Context, farm, kind, tm, amount string) (models.FeedSchedule, error) {
	fs := models.FeedSchedule{Farm: farm, Kind: kind, Time: strings.TrimSpace(tm), Amount: strings.TrimSpace(amount), Enabled: true}
	return s.Insert(ctx, fs)
}

// Insert validates and stores a schedule as given.
func (s *Store) Insert(ctx context.Context, fs models.FeedSchedule) (models.FeedSchedule, error) {
	if !models.IsValidScheduleKind(fs.Kind) {
		return models.FeedSchedule{}, ErrInvalidKind
	}
	if !models.IsClockTime(fs.Time) {
		return models.FeedSchedule{}, ErrInvalidTime
	}
	if fs.Amount == "" {
		return models.FeedSchedule{}, ErrMissingAmount
	}
	if fs.ID.IsZero() {
		fs.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, fs); err != nil {
		return models.FeedSchedule{}, err
	}
	return fs, nil
}

// Toggle flips whether one schedule is enabled.
func (s *Store) Toggle(ctx context.Context, farm string, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "farm": farm}, mongo.Pipeline{
		{{Key: "$set", Value: bson.M{"enabled": bson.M{"$not": bson.A{"$enabled"}}}}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
