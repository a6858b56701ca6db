// Package productstore persists the egg products each farm lists for sale.
package productstore

import (
	"context"
	"errors"

	"github.com/dalemusser/coophub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding products.
const CollectionName = "products"

var (
	// ErrNotFound is returned when the product does not exist for the farm.
	ErrNotFound = errors.New("product not found")
	// ErrNegative is returned for a negative price or stock level.
	ErrNegative = errors.New("value cannot be negative")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// ListByFarm returns the farm's products in display order.
func (s *Store) ListByFarm(ctx context.Context, farm string) ([]models.Product, error) {
	cur, err := s.c.Find(ctx, bson.M{"farm": farm}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Insert stores a product. Used by seeding.
func (s *Store) Insert(ctx context.Context, p models.Product) (models.Product, error) {
	if p.Price < 0 || p.Stock < 0 {
		return models.Product{}, ErrNegative
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *Store) set(ctx context.Context, farm string, id primitive.ObjectID, upd any) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "farm": farm}, upd)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePrice sets the price of one product.
func (s *Store) UpdatePrice(ctx context.Context, farm string, id primitive.ObjectID, price float64) error {
	if price < 0 {
		return ErrNegative
	}
	return s.set(ctx, farm, id, bson.M{"$set": bson.M{"price": price}})
}

// UpdateStock sets the stock level of one product.
func (s *Store) UpdateStock(ctx context.Context, farm string, id primitive.ObjectID, stock int) error {
	if stock < 0 {
		return ErrNegative
	}
	return s.set(ctx, farm, id, bson.M{"$set": bson.M{"stock": stock}})
}

// ToggleAvailability flips whether one product is offered for sale.
func (s *Store) ToggleAvailability(ctx context.Context, farm string, id primitive.ObjectID) error {
	return s.set(ctx, farm, id, mongo.Pipeline{
		{{Key: "$set", Value: bson.M{"available": bson.M{"$not": bson.A{"$available"}}}}},
	})
}
