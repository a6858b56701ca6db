// Package ticketstore persists customer support tickets and their conversations.
package ticketstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/coophub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding tickets.
const CollectionName = "tickets"

// SupportSender is the sender name on replies posted from the support screen.
const SupportSender = "Support Team"

// TimestampLayout formats message timestamps and ticket update times.
const TimestampLayout = "2006-01-02 15:04"

var (
	// ErrNotFound is returned when no ticket matches the id.
	ErrNotFound = errors.New("ticket not found")
	// ErrInvalidStatus is returned for a status outside open|in-progress|resolved.
	ErrInvalidStatus = errors.New("invalid ticket status")
	// ErrEmptyReply is returned when a reply has no text after sanitizing.
	ErrEmptyReply = errors.New("reply cannot be empty")
)

type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName), now: time.Now}
}

// List returns tickets with the given status, newest first. An empty status or
// "all" returns every ticket.
func (s *Store) List(ctx context.Context, status string) ([]models.Ticket, error) {
	q := bson.M{}
	if st := normalize.Filter(status); st != "" {
		q["status"] = st
	}
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Ticket
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads a ticket by id.
func (s *Store) Get(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	var t models.Ticket
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Insert stores a ticket. Used by seeding.
func (s *Store) Insert(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	if !models.IsValidTicketStatus(t.Status) {
		return models.Ticket{}, ErrInvalidStatus
	}
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.Messages == nil {
		t.Messages = []models.TicketMessage{}
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Ticket{}, err
	}
	return t, nil
}

// Reply appends a support message with markup stripped. An open ticket moves
// to in-progress.
func (s *Store) Reply(ctx context.Context, id primitive.ObjectID, message string) (models.Ticket, error) {
	text := htmlsanitize.StripTags(message)
	if text == "" {
		return models.Ticket{}, ErrEmptyReply
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return models.Ticket{}, err
	}
	stamp := s.now().Format(TimestampLayout)
	msg := models.TicketMessage{Sender: SupportSender, Message: text, Timestamp: stamp}
	next := models.StatusAfterReply(t.Status)

	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"status": next, "last_update": stamp},
	})
	if err != nil {
		return models.Ticket{}, err
	}
	t.Messages = append(t.Messages, msg)
	t.Status = next
	t.LastUpdate = stamp
	return *t, nil
}

// SetStatus changes the status of one ticket.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	if !models.IsValidTicketStatus(status) {
		return ErrInvalidStatus
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":      status,
		"last_update": s.now().Format(TimestampLayout),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of tickets per status. Every status is present.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, st := range []string{models.TicketOpen, models.TicketInProgress, models.TicketResolved} {
		n, err := s.c.CountDocuments(ctx, bson.M{"status": st})
		if err != nil {
			return nil, err
		}
		out[st] = n
	}
	return out, nil
}
