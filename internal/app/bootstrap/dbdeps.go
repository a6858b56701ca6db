// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/doorsim"
	"github.com/dalemusser/coophub/internal/app/system/ratelimit"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// Hooks receive DBDeps by value, so the members Startup creates live
// behind the Runtime pointer that ConnectDB allocates.
type DBDeps struct {
	CoopHubMongoClient   *mongo.Client
	CoopHubMongoDatabase *mongo.Database

	Runtime *Runtime
}

// Runtime is app state built during Startup and read by BuildHandler and Shutdown.
type Runtime struct {
	Seed       *seed.Data
	Charts     *charts.Renderer
	DoorWorker *doorsim.Worker
	Limiter    *ratelimit.LoginLimiter
}
