// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each collection's index set is reconciled
idempotently; problems are aggregated so startup can fail with the full list.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, spec := range collectionIndexes() {
		if err := ensureIndexSet(ctx, db.Collection(spec.collection), spec.models); err != nil {
			problems = append(problems, spec.collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type collectionSpec struct {
	collection string
	models     []mongo.IndexModel
}

func idx(name string, unique bool, keys bson.D) mongo.IndexModel {
	o := options.Index().SetName(name)
	if unique {
		o.SetUnique(true)
	}
	return mongo.IndexModel{Keys: keys, Options: o}
}

func collectionIndexes() []collectionSpec {
	return []collectionSpec{
		{"farmers", []mongo.IndexModel{
			idx("uniq_farmers_email", true, bson.D{{Key: "email", Value: 1}}),
			idx("idx_farmers_status_name", false, bson.D{{Key: "status", Value: 1}, {Key: "name", Value: 1}}),
		}},
		{"equipment", []mongo.IndexModel{
			idx("idx_equipment_type", false, bson.D{{Key: "type", Value: 1}}),
			idx("idx_equipment_status", false, bson.D{{Key: "status", Value: 1}}),
		}},
		{"accounts", []mongo.IndexModel{
			idx("uniq_accounts_email", true, bson.D{{Key: "email", Value: 1}}),
			idx("idx_accounts_role_status", false, bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}}),
		}},
		{"orders", []mongo.IndexModel{
			idx("idx_orders_farm_status_date", false, bson.D{{Key: "farm", Value: 1}, {Key: "status", Value: 1}, {Key: "date", Value: -1}}),
		}},
		{"products", []mongo.IndexModel{
			idx("idx_products_farm_name", false, bson.D{{Key: "farm", Value: 1}, {Key: "name", Value: 1}}),
		}},
		{"tickets", []mongo.IndexModel{
			idx("idx_tickets_status_created", false, bson.D{{Key: "status", Value: 1}, {Key: "created", Value: -1}}),
		}},
		{"schedules", []mongo.IndexModel{
			idx("idx_schedules_farm_kind_time", false, bson.D{{Key: "farm", Value: 1}, {Key: "kind", Value: 1}, {Key: "time", Value: 1}}),
		}},
		{"doors", []mongo.IndexModel{
			idx("uniq_doors_farm", true, bson.D{{Key: "farm", Value: 1}}),
		}},
		{"farmer_settings", []mongo.IndexModel{
			idx("uniq_farmer_settings_farm", true, bson.D{{Key: "farm", Value: 1}}),
		}},
		{"production_updates", []mongo.IndexModel{
			idx("idx_production_updates_farm_created", false, bson.D{{Key: "farm", Value: 1}, {Key: "created_at", Value: -1}}),
		}},
		{"farm_stories", []mongo.IndexModel{
			idx("idx_farm_stories_farm_created", false, bson.D{{Key: "farm", Value: 1}, {Key: "created_at", Value: -1}}),
		}},
	}
}

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isUnique(b *bool) bool { return b != nil && *b }

func listExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var ix existingIndex
		if err := cur.Decode(&ix); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(ix.Key)] = ix
	}
	return out, cur.Err()
}

// ensureIndexSet creates each desired index. An index with the same keys but a
// different name or uniqueness is dropped and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listExisting(ctx, coll)
	if err != nil {
		// listIndexes fails with NamespaceNotFound before the collection exists.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		name := *m.Options.Name
		unique := isUnique(m.Options.Unique)
		sig := keySig(m.Keys.(bson.D))

		if ex, ok := existing[sig]; ok {
			if ex.Name == name && isUnique(ex.Unique) == unique {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()), zap.String("name", name))
				continue
			}
			zap.L().Info("replacing index",
				zap.String("collection", coll.Name()),
				zap.String("from", ex.Name),
				zap.String("to", name),
				zap.String("keys", sig))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: drop %s: %v", name, ex.Name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if unique && mongo.IsDuplicateKeyError(err) {
				errs = append(errs, fmt.Sprintf("%s: duplicates present on %s", name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			continue
		}
		zap.L().Info("index created",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
