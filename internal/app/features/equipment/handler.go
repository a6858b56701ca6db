// internal/app/features/equipment/handler.go
package equipment

import (
	uierrors "github.com/dalemusser/coophub/internal/app/features/errors"
	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const basePath = "/admin/equipment-monitoring"

// Handler serves the admin equipment monitoring screen.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Seed   *seed.Data
	Charts *charts.Renderer
}

func NewHandler(db *mongo.Database, data *seed.Data, renderer *charts.Renderer, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Seed:   data,
		Charts: renderer,
	}
}
