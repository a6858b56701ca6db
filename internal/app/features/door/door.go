// internal/app/features/door/door.go
package door

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	doorstore "github.com/dalemusser/coophub/internal/app/store/doors"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type doorData struct {
	viewdata.BaseVM

	Door         models.DoorState
	BatteryClass string
}

// batteryClass picks the bar colour for a battery percentage.
func batteryClass(pct float64) string {
	switch {
	case pct < models.LowBatteryThreshold:
		return "danger"
	case pct < 50:
		return "warning"
	default:
		return "ok"
	}
}

// statusResponse is the polling payload for the door page.
type statusResponse struct {
	Status     string    `json:"status"`
	AutoMode   bool      `json:"auto_mode"`
	Sunrise    string    `json:"sunrise"`
	Sunset     string    `json:"sunset"`
	Battery    float64   `json:"battery"`
	BatteryLow bool      `json:"battery_low"`
	Alerts     []string  `json:"alerts"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toResponse(d models.DoorState) statusResponse {
	alerts := d.Alerts
	if alerts == nil {
		alerts = []string{}
	}
	return statusResponse{
		Status:     d.Status,
		AutoMode:   d.AutoMode,
		Sunrise:    d.Sunrise,
		Sunset:     d.Sunset,
		Battery:    d.Battery,
		BatteryLow: d.BatteryLow(),
		Alerts:     alerts,
		UpdatedAt:  d.UpdatedAt,
	}
}

// load fetches the farm's door. ok is false once an error page has been written.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*models.DoorState, bool) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "door access without farm scope", "Your account is not linked to a farm.")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := doorstore.New(h.DB).GetByFarm(ctx, farm)
	if errors.Is(err, doorstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "door not found", err, "No coop door is installed on your farm.", "/farmer/farm-overview")
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load door failed", err, "A database error occurred.", "/farmer/farm-overview")
		return nil, false
	}
	return d, true
}

// ServeDoor renders the door controls.
func (h *Handler) ServeDoor(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	data := doorData{
		BaseVM:       viewdata.NewBaseVM(r, h.DB, "Door Automation", "/farmer/farm-overview"),
		Door:         *d,
		BatteryClass: batteryClass(d.Battery),
	}
	data.WithSuccess(r)
	templates.Render(w, r, "farmer_door_automation", data)
}

// ServeStatusJSON returns the current door state for polling.
func (h *Handler) ServeStatusJSON(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(toResponse(*d)); err != nil {
		h.Log.Warn("encode door status failed", zap.Error(err))
	}
}
