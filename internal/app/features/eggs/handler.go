// internal/app/features/eggs/handler.go
package eggs

import (
	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the egg production screen.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Seed   *seed.Data
	Charts *charts.Renderer
}

func NewHandler(db *mongo.Database, data *seed.Data, renderer *charts.Renderer, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		Seed:   data,
		Charts: renderer,
	}
}
