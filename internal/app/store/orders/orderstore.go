// Package orderstore persists customer orders and guards their status transitions.
package orderstore

import (
	"context"
	"errors"

	"github.com/dalemusser/coophub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding orders.
const CollectionName = "orders"

var (
	// ErrNotFound is returned when the order does not exist for the farm.
	ErrNotFound = errors.New("order not found")
	// ErrInvalidTransition is returned when the order's status does not allow the action.
	ErrInvalidTransition = models.ErrOrderTransition
	// ErrInvalidStatus is returned when seeding an order with an unknown status.
	ErrInvalidStatus = errors.New("invalid order status")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

func (s *Store) find(ctx context.Context, q bson.M) ([]models.Order, error) {
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByFarm returns every order for farm, newest first.
func (s *Store) ListByFarm(ctx context.Context, farm string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"farm": farm})
}

// Incoming returns the pending orders for farm.
func (s *Store) Incoming(ctx context.Context, farm string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"farm": farm, "status": models.OrderPending})
}

// History returns the decided orders for farm.
func (s *Store) History(ctx context.Context, farm string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"farm": farm, "status": bson.M{"$ne": models.OrderPending}})
}

// Get loads an order by id, scoped to farm.
func (s *Store) Get(ctx context.Context, farm string, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "farm": farm}).Decode(&o); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Insert stores an order. Used by seeding.
func (s *Store) Insert(ctx context.Context, o models.Order) (models.Order, error) {
	if !models.IsValidOrderStatus(o.Status) {
		return models.Order{}, ErrInvalidStatus
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

// Accept schedules delivery for a pending order.
func (s *Store) Accept(ctx context.Context, farm string, id primitive.ObjectID, date, tm string) (models.Order, error) {
	return s.transition(ctx, farm, id, func(o models.Order) (models.Order, error) {
		return o.Accept(date, tm)
	})
}

// Decline rejects a pending order.
func (s *Store) Decline(ctx context.Context, farm string, id primitive.ObjectID) (models.Order, error) {
	return s.transition(ctx, farm, id, models.Order.Decline)
}

// MarkDelivered completes an accepted order.
func (s *Store) MarkDelivered(ctx context.Context, farm string, id primitive.ObjectID) (models.Order, error) {
	return s.transition(ctx, farm, id, models.Order.MarkDelivered)
}

// transition applies fn to the stored order and writes the result only if the
// status is still the one fn saw.
func (s *Store) transition(ctx context.Context, farm string, id primitive.ObjectID, fn func(models.Order) (models.Order, error)) (models.Order, error) {
	cur, err := s.Get(ctx, farm, id)
	if err != nil {
		return models.Order{}, err
	}
	next, err := fn(*cur)
	if err != nil {
		return models.Order{}, err
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "farm": farm, "status": cur.Status},
		bson.M{"$set": bson.M{
			"status":        next.Status,
			"delivery_date": next.DeliveryDate,
			"delivery_time": next.DeliveryTime,
		}})
	if err != nil {
		return models.Order{}, err
	}
	if res.MatchedCount == 0 {
		return models.Order{}, ErrInvalidTransition
	}
	return next, nil
}
