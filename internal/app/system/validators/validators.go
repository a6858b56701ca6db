// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/coophub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Admin side
	ensure("farmers", farmersSchema())
	ensure("accounts", accountsSchema())
	ensure("equipment", equipmentSchema())
	ensure("tickets", ticketsSchema())

	// Farmer side
	ensure("orders", ordersSchema())
	ensure("products", productsSchema())
	ensure("doors", doorsSchema())
	ensure("schedules", schedulesSchema())

	// Free-form documents; the collections just need to exist.
	ensure("production_updates", nil)
	ensure("farm_stories", nil)
	ensure("system_settings", nil)
	ensure("farmer_settings", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func farmersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "email", "farm", "status"},
			"properties": bson.M{
				"name":   nonBlank,
				"email":  nonBlank,
				"farm":   nonBlank,
				"status": bson.M{"enum": bson.A{models.FarmerActive, models.FarmerInactive, models.FarmerPending}},
			},
		},
	}
}

func accountsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "email", "role", "status"},
			"properties": bson.M{
				"name":        nonBlank,
				"email":       nonBlank,
				"role":        bson.M{"enum": bson.A{models.RoleAdmin, models.RoleFarmer, models.RoleViewer}},
				"status":      bson.M{"enum": bson.A{models.AccountActive, models.AccountInactive}},
				"permissions": bson.M{"bsonType": bson.A{"array", "null"}, "items": bson.M{"bsonType": "string"}},
			},
		},
	}
}

func equipmentSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "status"},
			"properties": bson.M{
				"name":   nonBlank,
				"status": bson.M{"enum": bson.A{models.EquipmentOnline, models.EquipmentMaintenance, models.EquipmentOffline}},
			},
		},
	}
}

func ticketsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"customer", "subject", "status"},
			"properties": bson.M{
				"subject":  nonBlank,
				"status":   bson.M{"enum": bson.A{models.TicketOpen, models.TicketInProgress, models.TicketResolved}},
				"messages": bson.M{"bsonType": bson.A{"array", "null"}},
			},
		},
	}
}

func ordersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"farm", "customer_name", "status", "total"},
			"properties": bson.M{
				"farm":          nonBlank,
				"customer_name": nonBlank,
				"total":         bson.M{"bsonType": "number", "minimum": 0},
				"status":        bson.M{"enum": bson.A{models.OrderPending, models.OrderAccepted, models.OrderDelivered, models.OrderDeclined}},
			},
		},
	}
}

func productsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"farm", "name", "price", "stock", "available"},
			"properties": bson.M{
				"farm":      nonBlank,
				"name":      nonBlank,
				"price":     bson.M{"bsonType": "number", "minimum": 0},
				"stock":     bson.M{"bsonType": "number", "minimum": 0},
				"available": bson.M{"bsonType": "bool"},
			},
		},
	}
}

func doorsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"farm", "status"},
			"properties": bson.M{
				"farm":    nonBlank,
				"status":  bson.M{"enum": bson.A{models.DoorOpen, models.DoorClosed}},
				"battery": bson.M{"bsonType": "number", "minimum": 0, "maximum": 100},
			},
		},
	}
}

func schedulesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"farm", "kind", "time"},
			"properties": bson.M{
				"farm":    nonBlank,
				"kind":    bson.M{"enum": bson.A{models.ScheduleFeed, models.ScheduleWater}},
				"time":    bson.M{"bsonType": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
				"enabled": bson.M{"bsonType": "bool"},
			},
		},
	}
}
