// Package farmprofilestore persists production updates and stories posted to a farm profile.
package farmprofilestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/coophub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/coophub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UpdatesCollection = "production_updates"
	StoriesCollection = "farm_stories"
)

// DateLayout formats the display date of new posts.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidCount is returned when a production update has no positive egg count.
	ErrInvalidCount = errors.New("egg count must be a positive number")
	// ErrEmptyStory is returned when a story has no content after trimming.
	ErrEmptyStory = errors.New("story cannot be empty")
)

type Store struct {
	updates *mongo.Collection
	stories *mongo.Collection
	now     func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{
		updates: db.Collection(UpdatesCollection),
		stories: db.Collection(StoriesCollection),
		now:     time.Now,
	}
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

// ListUpdates returns the farm's production updates, newest first.
func (s *Store) ListUpdates(ctx context.Context, farm string) ([]models.ProductionUpdate, error) {
	cur, err := s.updates.Find(ctx, bson.M{"farm": farm}, newestFirst)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ProductionUpdate
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddUpdate posts today's egg count with optional notes.
func (s *Store) AddUpdate(ctx context.Context, farm string, count int, notes string) (models.ProductionUpdate, error) {
	now := s.now()
	return s.InsertUpdate(ctx, models.ProductionUpdate{
		Farm:      farm,
		Date:      now.Format(DateLayout),
		Count:     count,
		Notes:     htmlsanitize.StripTags(notes),
		CreatedAt: now,
	})
}

// InsertUpdate stores a production update as given.
func (s *Store) InsertUpdate(ctx context.Context, u models.ProductionUpdate) (models.ProductionUpdate, error) {
	if u.Count <= 0 {
		return models.ProductionUpdate{}, ErrInvalidCount
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	if _, err := s.updates.InsertOne(ctx, u); err != nil {
		return models.ProductionUpdate{}, err
	}
	return u, nil
}

// ListStories returns the farm's stories, newest first.
func (s *Store) ListStories(ctx context.Context, farm string) ([]models.FarmStory, error) {
	cur, err := s.stories.Find(ctx, bson.M{"farm": farm}, newestFirst)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.FarmStory
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddStory posts a story. Content is trimmed and sanitized and must not be empty.
func (s *Store) AddStory(ctx context.Context, farm, content string) (models.FarmStory, error) {
	now := s.now()
	return s.InsertStory(ctx, models.FarmStory{
		Farm:      farm,
		Date:      now.Format(DateLayout),
		Content:   content,
		CreatedAt: now,
	})
}

// InsertStory sanitizes and stores a story.
func (s *Store) InsertStory(ctx context.Context, st models.FarmStory) (models.FarmStory, error) {
	st.Content = strings.TrimSpace(htmlsanitize.Sanitize(strings.TrimSpace(st.Content)))
	if htmlsanitize.StripTags(st.Content) == "" {
		return models.FarmStory{}, ErrEmptyStory
	}
	if st.ID.IsZero() {
		st.ID = primitive.NewObjectID()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = s.now()
	}
	if _, err := s.stories.InsertOne(ctx, st); err != nil {
		return models.FarmStory{}, err
	}
	return st, nil
}
