// Package farmerstore persists farmer registrations managed by admins.
package farmerstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding farmers.
const CollectionName = "farmers"

var (
	// ErrNotFound is returned when no farmer matches the id.
	ErrNotFound = errors.New("farmer not found")
	// ErrDuplicateEmail is returned when another farmer already uses the email.
	ErrDuplicateEmail = errors.New("a farmer with this email already exists")
	// ErrMissingFields is returned when name, email or farm is empty.
	ErrMissingFields = errors.New("name, email and farm are required")
	// ErrInvalidStatus is returned for a status outside Active|Inactive|Pending.
	ErrInvalidStatus = errors.New("invalid farmer status")
	// ErrInvalidEquipment is returned for an unknown equipment model.
	ErrInvalidEquipment = errors.New("invalid equipment model")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// List returns farmers in registration order.
func (s *Store) List(ctx context.Context) ([]models.Farmer, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Farmer
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads a farmer by id.
func (s *Store) Get(ctx context.Context, id primitive.ObjectID) (*models.Farmer, error) {
	var f models.Farmer
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func clean(f *models.Farmer) error {
	f.Name = normalize.Name(f.Name)
	f.Email = normalize.Email(f.Email)
	f.Farm = normalize.Name(f.Farm)
	f.Location = normalize.Name(f.Location)
	f.Phone = normalize.Name(f.Phone)
	if f.Name == "" || f.Email == "" || f.Farm == "" {
		return ErrMissingFields
	}
	return nil
}

// Create registers a new farmer. New farmers start Active with no equipment.
func (s *Store) Create(ctx context.Context, f models.Farmer) (models.Farmer, error) {
	if err := clean(&f); err != nil {
		return models.Farmer{}, err
	}
	f.ID = primitive.NewObjectID()
	f.Status = models.FarmerActive
	f.Equipment = models.UnassignedEquipment
	now := time.Now()
	f.CreatedAt, f.UpdatedAt = now, now
	return f, s.insert(ctx, f)
}

// Insert stores f with its own status and equipment. Used by seeding.
func (s *Store) Insert(ctx context.Context, f models.Farmer) (models.Farmer, error) {
	if err := clean(&f); err != nil {
		return models.Farmer{}, err
	}
	if !models.IsValidFarmerStatus(f.Status) {
		return models.Farmer{}, ErrInvalidStatus
	}
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	return f, s.insert(ctx, f)
}

func (s *Store) insert(ctx context.Context, f models.Farmer) error {
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Update replaces the editable fields of a farmer.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, f models.Farmer) error {
	if err := clean(&f); err != nil {
		return err
	}
	if !models.IsValidFarmerStatus(f.Status) {
		return ErrInvalidStatus
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":       f.Name,
		"email":      f.Email,
		"farm":       f.Farm,
		"location":   f.Location,
		"phone":      f.Phone,
		"status":     f.Status,
		"updated_at": time.Now(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignEquipment sets the device model installed for a farmer.
func (s *Store) AssignEquipment(ctx context.Context, id primitive.ObjectID, model string) error {
	if !models.IsValidEquipmentModel(model) {
		return ErrInvalidEquipment
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"equipment":  model,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a farmer.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of farmers per status. Every status is present.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	out := map[string]int64{
		models.FarmerActive:   0,
		models.FarmerInactive: 0,
		models.FarmerPending:  0,
	}
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "n": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			N      int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Status] = row.N
	}
	return out, cur.Err()
}
