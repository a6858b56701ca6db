// internal/app/features/equipment/status.go
package equipment

import (
	"context"
	"errors"
	"net/http"

	equipmentstore "github.com/dalemusser/coophub/internal/app/store/equipment"
	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleSetStatus changes the status of one device. Other devices are untouched.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad equipment id", err, "Invalid equipment id.", basePath)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return
	}
	status := normalize.Status(r.FormValue("status"))
	_, filter := resolveFilter(r.FormValue("filter"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = equipmentstore.New(h.DB).SetStatus(ctx, id, status)
	switch {
	case errors.Is(err, equipmentstore.ErrInvalidStatus):
		h.ErrLog.LogBadRequest(w, r, "invalid equipment status", err, "Unknown equipment status.", basePath)
		return
	case errors.Is(err, equipmentstore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "equipment not found", err, "Equipment not found.", basePath)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "set equipment status failed", err, "A database error occurred.", basePath)
		return
	}

	h.Log.Info("equipment status changed", zap.String("equipment_id", id.Hex()), zap.String("status", status))
	http.Redirect(w, r, listURL(filter, "updated"), http.StatusSeeOther)
}
