// internal/app/features/farmprofile/handler.go
package farmprofile

import (
	uierrors "github.com/dalemusser/coophub/internal/app/features/errors"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const basePath = "/farmer/farm-profile"

// Handler serves the public-facing farm profile: contact card, production
// updates, stories and certifications.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Seed   *seed.Data
}

func NewHandler(db *mongo.Database, data *seed.Data, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Seed:   data,
	}
}
