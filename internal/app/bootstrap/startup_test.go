package bootstrap

import (
	"testing"

	doorstore "github.com/dalemusser/coophub/internal/app/store/doors"
	farmerstore "github.com/dalemusser/coophub/internal/app/store/farmers"
	"github.com/dalemusser/coophub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestStartup_SeedsAndStartsWorker(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{CoopHubMongoDatabase: db, Runtime: &Runtime{}}
	if err := EnsureSchema(ctx, nil, validConfig(), deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := Startup(ctx, nil, validConfig(), deps, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	defer deps.Runtime.DoorWorker.Stop()

	if deps.Runtime.Seed == nil || deps.Runtime.Charts == nil || deps.Runtime.DoorWorker == nil {
		t.Fatalf("runtime not populated: %+v", deps.Runtime)
	}

	n, err := db.Collection(farmerstore.CollectionName).CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count farmers: %v", err)
	}
	if n != 3 {
		t.Errorf("farmers = %d, want 3", n)
	}

	doors, err := doorstore.New(db).List(ctx)
	if err != nil {
		t.Fatalf("list doors: %v", err)
	}
	if len(doors) != 2 {
		t.Errorf("doors = %d, want 2", len(doors))
	}
}

func TestStartup_NoRuntime(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := Startup(ctx, nil, validConfig(), DBDeps{}, testLogger()); err == nil {
		t.Fatal("expected error without runtime")
	}
}

func TestShutdown_NoDeps(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := Shutdown(ctx, nil, validConfig(), DBDeps{}, testLogger()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
