// Package doorstore persists the simulated coop door state for each farm.
package doorstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/coophub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding door states.
const CollectionName = "doors"

var (
	// ErrNotFound is returned when the farm has no door.
	ErrNotFound = errors.New("door not found")
	// ErrInvalidStatus is returned for a status other than open or closed.
	ErrInvalidStatus = errors.New("door status must be open or closed")
	// ErrInvalidTime is returned for sunrise or sunset times not in HH:MM form.
	ErrInvalidTime = errors.New("sunrise and sunset must be HH:MM")
	// ErrStatusChanged is returned by SaveTelemetry when the door no longer has
	// the status the caller read.
	ErrStatusChanged = errors.New("door status changed since it was read")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// GetByFarm loads the door for farm.
func (s *Store) GetByFarm(ctx context.Context, farm string) (*models.DoorState, error) {
	var d models.DoorState
	if err := s.c.FindOne(ctx, bson.M{"farm": farm}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns every door.
func (s *Store) List(ctx context.Context) ([]models.DoorState, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "farm", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.DoorState
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save writes the full state of a farm's door, creating it if needed.
func (s *Store) Save(ctx context.Context, d models.DoorState) error {
	if !models.IsValidDoorStatus(d.Status) {
		return ErrInvalidStatus
	}
	if d.Alerts == nil {
		d.Alerts = []string{}
	}
	d.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"status":     d.Status,
		"auto_mode":  d.AutoMode,
		"sunrise":    d.Sunrise,
		"sunset":     d.Sunset,
		"battery":    d.Battery,
		"alerts":     d.Alerts,
		"updated_at": d.UpdatedAt,
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"farm": d.Farm}, bson.M{"$set": set}, options.Update().SetUpsert(true))
	return err
}

// SaveTelemetry writes the simulated fields (status, battery, alerts) only,
// leaving auto mode and its times untouched. The write applies only while the
// door still has prevStatus, so an open or close made after the caller read
// the door is never overwritten.
func (s *Store) SaveTelemetry(ctx context.Context, prevStatus string, d models.DoorState) error {
	if !models.IsValidDoorStatus(d.Status) {
		return ErrInvalidStatus
	}
	if d.Alerts == nil {
		d.Alerts = []string{}
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"farm": d.Farm, "status": prevStatus}, bson.M{"$set": bson.M{
		"status":     d.Status,
		"battery":    d.Battery,
		"alerts":     d.Alerts,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStatusChanged
	}
	return nil
}

// SetStatus opens or closes the farm's door.
func (s *Store) SetStatus(ctx context.Context, farm, status string) error {
	if !models.IsValidDoorStatus(status) {
		return ErrInvalidStatus
	}
	return s.update(ctx, farm, bson.M{"status": status})
}

// SetAutoMode turns automatic operation on or off with its sunrise and sunset times.
func (s *Store) SetAutoMode(ctx context.Context, farm string, enabled bool, sunrise, sunset string) error {
	if !models.IsClockTime(sunrise) || !models.IsClockTime(sunset) {
		return ErrInvalidTime
	}
	return s.update(ctx, farm, bson.M{"auto_mode": enabled, "sunrise": sunrise, "sunset": sunset})
}

func (s *Store) update(ctx context.Context, farm string, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{"farm": farm}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
