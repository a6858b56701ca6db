// Package seed loads the embedded mock records and chart datasets and writes
// the records into MongoDB at startup.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	doorstore "github.com/dalemusser/coophub/internal/app/store/doors"
	equipmentstore "github.com/dalemusser/coophub/internal/app/store/equipment"
	farmerstore "github.com/dalemusser/coophub/internal/app/store/farmers"
	farmprofilestore "github.com/dalemusser/coophub/internal/app/store/farmprofile"
	orderstore "github.com/dalemusser/coophub/internal/app/store/orders"
	productstore "github.com/dalemusser/coophub/internal/app/store/products"
	schedulestore "github.com/dalemusser/coophub/internal/app/store/schedules"
	settingsstore "github.com/dalemusser/coophub/internal/app/store/settings"
	ticketstore "github.com/dalemusser/coophub/internal/app/store/tickets"
	userstore "github.com/dalemusser/coophub/internal/app/store/users"
	"github.com/dalemusser/coophub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Records are the mutable mock records written to the database.
type Records struct {
	Farmers           []models.Farmer           `yaml:"farmers"`
	Equipment         []models.Equipment        `yaml:"equipment"`
	Accounts          []models.Account          `yaml:"accounts"`
	Orders            []models.Order            `yaml:"orders"`
	Products          []models.Product          `yaml:"products"`
	Tickets           []models.Ticket           `yaml:"tickets"`
	Schedules         []models.FeedSchedule     `yaml:"schedules"`
	Doors             []models.DoorState        `yaml:"doors"`
	FarmerSettings    []models.FarmerSettings   `yaml:"farmer_settings"`
	ProductionUpdates []models.ProductionUpdate `yaml:"production_updates"`
	FarmStories       []models.FarmStory        `yaml:"farm_stories"`
}

// Data is the parsed contents of seed.yaml. Everything outside Records is
// read-only display data handed to screens.
type Data struct {
	Records Records            `yaml:"records"`
	Admin   AdminData          `yaml:"admin"`
	Farmer  FarmerData         `yaml:"farmer"`
	Charts  map[string]Dataset `yaml:"charts"`
}

// Load parses the embedded seed file.
func Load() (*Data, error) {
	return Parse(seedYAML)
}

// Parse decodes seed data from raw YAML.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	if d.Charts == nil {
		d.Charts = map[string]Dataset{}
	}
	for key, ds := range d.Charts {
		if err := ds.validate(); err != nil {
			return nil, fmt.Errorf("chart %q: %w", key, err)
		}
	}
	return &d, nil
}

// Chart returns the dataset stored under key. A missing key yields an empty dataset.
func (d *Data) Chart(key string) Dataset {
	return d.Charts[key]
}

var collections = []string{
	farmerstore.CollectionName,
	equipmentstore.CollectionName,
	userstore.CollectionName,
	orderstore.CollectionName,
	productstore.CollectionName,
	ticketstore.CollectionName,
	schedulestore.CollectionName,
	doorstore.CollectionName,
	settingsstore.SystemCollection,
	settingsstore.FarmerCollection,
	farmprofilestore.UpdatesCollection,
	farmprofilestore.StoriesCollection,
}

// Apply writes the seed records. With reset, every seeded collection is emptied
// first, so records changed in a previous run are discarded. Without reset the
// records are written only into an empty database.
func Apply(ctx context.Context, db *mongo.Database, d *Data, reset bool, logger *zap.Logger) error {
	if reset {
		for _, name := range collections {
			if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
				return fmt.Errorf("clear %s: %w", name, err)
			}
		}
	} else {
		n, err := db.Collection(farmerstore.CollectionName).EstimatedDocumentCount(ctx)
		if err != nil {
			return fmt.Errorf("count farmers: %w", err)
		}
		if n > 0 {
			logger.Info("seed skipped; database already populated")
			return nil
		}
	}

	r := d.Records
	if err := insertAll(ctx, r.Farmers, farmerstore.New(db).Insert); err != nil {
		return fmt.Errorf("seed farmers: %w", err)
	}
	if err := insertAll(ctx, r.Equipment, equipmentstore.New(db).Insert); err != nil {
		return fmt.Errorf("seed equipment: %w", err)
	}
	if err := insertAll(ctx, r.Accounts, userstore.New(db).Insert); err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	if err := insertAll(ctx, r.Orders, orderstore.New(db).Insert); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}
	if err := insertAll(ctx, r.Products, productstore.New(db).Insert); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if err := insertAll(ctx, r.Tickets, ticketstore.New(db).Insert); err != nil {
		return fmt.Errorf("seed tickets: %w", err)
	}
	if err := insertAll(ctx, r.Schedules, schedulestore.New(db).Insert); err != nil {
		return fmt.Errorf("seed schedules: %w", err)
	}

	doors := doorstore.New(db)
	for _, door := range r.Doors {
		if err := doors.Save(ctx, door); err != nil {
			return fmt.Errorf("seed doors: %w", err)
		}
	}
	settings := settingsstore.New(db)
	for _, st := range r.FarmerSettings {
		if err := settings.SeedFarmer(ctx, st); err != nil {
			return fmt.Errorf("seed farmer settings: %w", err)
		}
	}

	profiles := farmprofilestore.New(db)
	for _, u := range r.ProductionUpdates {
		u.CreatedAt = postedAt(u.Date)
		if _, err := profiles.InsertUpdate(ctx, u); err != nil {
			return fmt.Errorf("seed production updates: %w", err)
		}
	}
	for _, s := range r.FarmStories {
		s.CreatedAt = postedAt(s.Date)
		if _, err := profiles.InsertStory(ctx, s); err != nil {
			return fmt.Errorf("seed farm stories: %w", err)
		}
	}

	logger.Info("seed data applied",
		zap.Bool("reset", reset),
		zap.Int("farmers", len(r.Farmers)),
		zap.Int("equipment", len(r.Equipment)),
		zap.Int("accounts", len(r.Accounts)),
		zap.Int("orders", len(r.Orders)),
		zap.Int("tickets", len(r.Tickets)))
	return nil
}

func insertAll[T any](ctx context.Context, items []T, insert func(context.Context, T) (T, error)) error {
	for _, it := range items {
		if _, err := insert(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

// postedAt turns a display date into a creation time so newest-first ordering
// matches the dates. Unparseable dates sort as now.
func postedAt(date string) time.Time {
	t, err := time.Parse(farmprofilestore.DateLayout, date)
	if err != nil {
		return time.Now()
	}
	return t
}
