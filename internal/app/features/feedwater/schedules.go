// internal/app/features/feedwater/schedules.go
package feedwater

import (
	"context"
	"errors"
	"net/http"
	"strings"

	schedulestore "github.com/dalemusser/coophub/internal/app/store/schedules"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// scheduleErrors maps store validation errors to form messages.
var scheduleErrors = map[error]string{
	schedulestore.ErrInvalidKind:   "Choose feed or water.",
	schedulestore.ErrInvalidTime:   "Time must be in HH:MM form.",
	schedulestore.ErrMissingAmount: "Amount is required.",
}

func formMessage(err error) (string, bool) {
	for target, msg := range scheduleErrors {
		if errors.Is(err, target) {
			return msg, true
		}
	}
	return "", false
}

func (h *Handler) farm(w http.ResponseWriter, r *http.Request) (string, bool) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "schedule change without farm scope", "Your account is not linked to a farm.")
		return "", false
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return "", false
	}
	return farm, true
}

// HandleAddSchedule adds an enabled feed or water schedule.
func (h *Handler) HandleAddSchedule(w http.ResponseWriter, r *http.Request) {
	farm, ok := h.farm(w, r)
	if !ok {
		return
	}
	in := scheduleInput{
		Kind:   normalize.Status(r.FormValue("kind")),
		Time:   strings.TrimSpace(r.FormValue("time")),
		Amount: strings.TrimSpace(r.FormValue("amount")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	fs, err := schedulestore.New(h.DB).Add(ctx, farm, in.Kind, in.Time, in.Amount)
	if err != nil {
		msg, invalid := formMessage(err)
		if !invalid {
			h.ErrLog.LogServerError(w, r, "add schedule failed", err, "A database error occurred.", basePath)
			return
		}
		data, lerr := h.pageData(r, farm)
		if lerr != nil {
			h.ErrLog.LogServerError(w, r, "list schedules failed", lerr, "A database error occurred.", basePath)
			return
		}
		data.Form = in
		data.Error = msg
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "farmer_feed_water", data)
		return
	}

	h.Log.Info("schedule added",
		zap.String("farm", farm),
		zap.String("kind", fs.Kind),
		zap.String("time", fs.Time))
	http.Redirect(w, r, basePath+"?success=added", http.StatusSeeOther)
}

// HandleToggleSchedule enables or disables one schedule.
func (h *Handler) HandleToggleSchedule(w http.ResponseWriter, r *http.Request) {
	farm, ok := h.farm(w, r)
	if !ok {
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad schedule id", err, "Invalid schedule id.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := schedulestore.New(h.DB).Toggle(ctx, farm, id); err != nil {
		if errors.Is(err, schedulestore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "schedule not found", err, "Schedule not found.", basePath)
			return
		}
		h.ErrLog.LogServerError(w, r, "toggle schedule failed", err, "A database error occurred.", basePath)
		return
	}

	h.Log.Info("schedule toggled", zap.String("farm", farm), zap.String("schedule_id", id.Hex()))
	http.Redirect(w, r, basePath+"?success=toggled", http.StatusSeeOther)
}
