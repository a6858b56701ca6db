// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/coophub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUnknownCategory is returned when a save names a settings tab that does not exist.
var ErrUnknownCategory = errors.New("unknown settings category")

// Collection names.
const (
	SystemCollection = "system_settings"
	FarmerCollection = "farmer_settings"
)

// systemDocID is the _id of the single platform settings document.
const systemDocID = "system"

// Store provides access to the system_settings and farmer_settings collections.
// System settings are one document; farmer settings are one document per farm.
type Store struct {
	sys    *mongo.Collection
	farmer *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{
		sys:    db.Collection(SystemCollection),
		farmer: db.Collection(FarmerCollection),
	}
}

// GetSystem returns the platform settings, or the defaults when none are saved.
func (s *Store) GetSystem(ctx context.Context) (models.SystemSettings, error) {
	var out models.SystemSettings
	err := s.sys.FindOne(ctx, bson.M{"_id": systemDocID}).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return models.DefaultSystemSettings(), nil
	}
	if err != nil {
		return models.SystemSettings{}, err
	}
	return out, nil
}

// SaveSystem stores only the named category from in. Other categories keep their
// saved values (or defaults, on first save).
func (s *Store) SaveSystem(ctx context.Context, category string, in models.SystemSettings) error {
	var value any
	switch category {
	case models.SettingsGeneral:
		value = in.General
	case models.SettingsSecurity:
		value = in.Security
	case models.SettingsNotifications:
		value = in.Notifications
	case models.SettingsDatabase:
		value = in.Database
	case models.SettingsAPI:
		value = in.API
	default:
		return ErrUnknownCategory
	}

	def := models.DefaultSystemSettings()
	onInsert := bson.M{}
	for _, c := range models.SystemSettingsCategories {
		if c == category {
			continue
		}
		onInsert[c] = systemCategory(def, c)
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set":         bson.M{category: value, "updated_at": now},
		"$setOnInsert": onInsert,
	}
	_, err := s.sys.UpdateOne(ctx, bson.M{"_id": systemDocID}, update, options.Update().SetUpsert(true))
	return err
}

func systemCategory(st models.SystemSettings, c string) any {
	switch c {
	case models.SettingsGeneral:
		return st.General
	case models.SettingsSecurity:
		return st.Security
	case models.SettingsNotifications:
		return st.Notifications
	case models.SettingsDatabase:
		return st.Database
	default:
		return st.API
	}
}

// SiteName returns the configured system name, falling back to the default.
func (s *Store) SiteName(ctx context.Context) string {
	st, err := s.GetSystem(ctx)
	if err != nil || st.General.SystemName == "" {
		return models.DefaultSiteName
	}
	return st.General.SystemName
}

// GetFarmer returns the settings for farm, or its defaults when none are saved.
func (s *Store) GetFarmer(ctx context.Context, farm string) (models.FarmerSettings, error) {
	var out models.FarmerSettings
	err := s.farmer.FindOne(ctx, bson.M{"farm": farm}).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return models.DefaultFarmerSettings(farm), nil
	}
	if err != nil {
		return models.FarmerSettings{}, err
	}
	return out, nil
}

// SaveFarmer stores only the named category of in for farm.
func (s *Store) SaveFarmer(ctx context.Context, farm, category string, in models.FarmerSettings) error {
	var value any
	switch category {
	case models.FarmerSettingsProfile:
		value = in.Profile
	case models.FarmerSettingsNotifications:
		value = in.Notifications
	case models.FarmerSettingsSecurity:
		value = in.Security
	case models.FarmerSettingsPreferences:
		value = in.Preferences
	default:
		return ErrUnknownCategory
	}

	def := models.DefaultFarmerSettings(farm)
	onInsert := bson.M{}
	for _, c := range models.FarmerSettingsCategories {
		if c == category {
			continue
		}
		switch c {
		case models.FarmerSettingsProfile:
			onInsert[c] = def.Profile
		case models.FarmerSettingsNotifications:
			onInsert[c] = def.Notifications
		case models.FarmerSettingsSecurity:
			onInsert[c] = def.Security
		case models.FarmerSettingsPreferences:
			onInsert[c] = def.Preferences
		}
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set":         bson.M{category: value, "updated_at": now},
		"$setOnInsert": onInsert,
	}
	_, err := s.farmer.UpdateOne(ctx, bson.M{"farm": farm}, update, options.Update().SetUpsert(true))
	return err
}

// SeedFarmer replaces the whole settings document for a farm.
func (s *Store) SeedFarmer(ctx context.Context, st models.FarmerSettings) error {
	now := time.Now().UTC()
	st.UpdatedAt = &now
	_, err := s.farmer.ReplaceOne(ctx, bson.M{"farm": st.Farm}, st, options.Replace().SetUpsert(true))
	return err
}
