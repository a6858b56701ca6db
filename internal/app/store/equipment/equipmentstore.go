// Package equipmentstore persists coop devices shown on the equipment monitoring screen.
package equipmentstore

import (
	"context"
	"errors"
	"regexp"

	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding equipment.
const CollectionName = "equipment"

var (
	// ErrNotFound is returned when no equipment matches the id.
	ErrNotFound = errors.New("equipment not found")
	// ErrInvalidStatus is returned for a status outside online|maintenance|offline.
	ErrInvalidStatus = errors.New("invalid equipment status")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// List returns equipment whose type contains filter, case-insensitively.
// An empty filter or "all" returns everything.
func (s *Store) List(ctx context.Context, filter string) ([]models.Equipment, error) {
	q := bson.M{}
	if f := normalize.Filter(filter); f != "" {
		q["type"] = bson.M{"$regex": regexp.QuoteMeta(f), "$options": "i"}
	}
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Equipment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads equipment by id.
func (s *Store) Get(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error) {
	var e models.Equipment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Insert stores a device. Used by seeding.
func (s *Store) Insert(ctx context.Context, e models.Equipment) (models.Equipment, error) {
	if !models.IsValidEquipmentStatus(e.Status) {
		return models.Equipment{}, ErrInvalidStatus
	}
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}

// SetStatus changes the status of a single device.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	if !models.IsValidEquipmentStatus(status) {
		return ErrInvalidStatus
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of devices per status. Every status is present.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	out := map[string]int64{
		models.EquipmentOnline:      0,
		models.EquipmentMaintenance: 0,
		models.EquipmentOffline:     0,
	}
	for st := range out {
		n, err := s.c.CountDocuments(ctx, bson.M{"status": st})
		if err != nil {
			return nil, err
		}
		out[st] = n
	}
	return out, nil
}
