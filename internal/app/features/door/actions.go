// internal/app/features/door/actions.go
package door

import (
	"context"
	"errors"
	"net/http"
	"strings"

	doorstore "github.com/dalemusser/coophub/internal/app/store/doors"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/domain/models"
	"go.uber.org/zap"
)

// actionStatus maps the button actions to door states.
var actionStatus = map[string]string{
	"open":  models.DoorOpen,
	"close": models.DoorClosed,
}

func (h *Handler) farm(w http.ResponseWriter, r *http.Request) (string, bool) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "door update without farm scope", "Your account is not linked to a farm.")
		return "", false
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return "", false
	}
	return farm, true
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, doorstore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "door not found", err, "No coop door is installed on your farm.", basePath)
	case errors.Is(err, doorstore.ErrInvalidStatus), errors.Is(err, doorstore.ErrInvalidTime):
		h.ErrLog.LogBadRequest(w, r, op+" rejected", err, err.Error(), basePath)
	default:
		h.ErrLog.LogServerError(w, r, op+" failed", err, "A database error occurred.", basePath)
	}
}

// HandleSetStatus opens or closes the door.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	farm, ok := h.farm(w, r)
	if !ok {
		return
	}
	status, ok := actionStatus[normalize.Status(r.FormValue("action"))]
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "unknown door action", nil, "Unknown door action.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := doorstore.New(h.DB).SetStatus(ctx, farm, status); err != nil {
		h.storeError(w, r, "set door status", err)
		return
	}

	h.Log.Info("door status set", zap.String("farm", farm), zap.String("status", status))
	http.Redirect(w, r, basePath+"?success=updated", http.StatusSeeOther)
}

// HandleAutoMode saves the auto mode switch and its sunrise and sunset times.
func (h *Handler) HandleAutoMode(w http.ResponseWriter, r *http.Request) {
	farm, ok := h.farm(w, r)
	if !ok {
		return
	}
	enabled := r.FormValue("auto_mode") == "on" || r.FormValue("auto_mode") == "true"
	sunrise := strings.TrimSpace(r.FormValue("sunrise"))
	sunset := strings.TrimSpace(r.FormValue("sunset"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := doorstore.New(h.DB).SetAutoMode(ctx, farm, enabled, sunrise, sunset); err != nil {
		h.storeError(w, r, "set door auto mode", err)
		return
	}

	h.Log.Info("door auto mode saved",
		zap.String("farm", farm),
		zap.Bool("enabled", enabled),
		zap.String("sunrise", sunrise),
		zap.String("sunset", sunset))
	http.Redirect(w, r, basePath+"?success=saved", http.StatusSeeOther)
}
