// Package seedtest gives handler tests a database holding the standard mock records.
package seedtest

import (
	"testing"

	"github.com/dalemusser/coophub/internal/app/features/errors"
	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/indexes"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Env bundles what a feature handler needs in tests.
type Env struct {
	DB     *mongo.Database
	Seed   *seed.Data
	Charts *charts.Renderer
	ErrLog *errors.ErrorLogger
	Log    *zap.Logger
}

// Setup creates an isolated test database with indexes and applies the seed records.
// The test is skipped when MongoDB is unavailable.
func Setup(t *testing.T) Env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	data, err := seed.Load()
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := zap.NewNop()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	if err := seed.Apply(ctx, db, data, true, logger); err != nil {
		t.Fatalf("apply seed: %v", err)
	}
	return Env{
		DB:     db,
		Seed:   data,
		Charts: charts.NewRenderer(0),
		ErrLog: errors.NewErrorLogger(logger),
		Log:    logger,
	}
}
