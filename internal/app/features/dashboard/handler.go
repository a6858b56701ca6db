// internal/app/features/dashboard/handler.go
package dashboard

import (
	"time"

	uierrors "github.com/dalemusser/coophub/internal/app/features/errors"
	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// dashboardTimeout bounds the store reads behind one overview page.
const dashboardTimeout = 5 * time.Second

// Handler serves the two role landing pages: the admin system overview and
// the farmer farm overview.
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
