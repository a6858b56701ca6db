// internal/app/features/farmers/edit.go
package farmers

import (
	"context"
	"errors"
	"net/http"

	farmerstore "github.com/dalemusser/coophub/internal/app/store/farmers"
	"github.com/dalemusser/coophub/internal/app/system/inputval"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var statuses = []string{models.FarmerActive, models.FarmerInactive, models.FarmerPending}

func farmerID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

// ServeEdit renders the edit form for one farmer.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := farmerID(r)
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "bad farmer id", nil, "Invalid farmer id.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	f, err := farmerstore.New(h.DB).Get(ctx, id)
	if errors.Is(err, farmerstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "farmer not found", err, "Farmer not found.", basePath)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load farmer failed", err, "A database error occurred.", basePath)
		return
	}

	templates.Render(w, r, "farmer_edit", editData{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "Edit Farmer", basePath+"?tab="+tabManagement),
		ID:       f.ID.Hex(),
		Form:     farmerInput{Name: f.Name, Email: f.Email, Farm: f.Farm, Location: f.Location, Phone: f.Phone, Status: f.Status},
		Statuses: statuses,
	})
}

// HandleEdit saves the edit form.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := farmerID(r)
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "bad farmer id", nil, "Invalid farmer id.", basePath)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return
	}
	in := formInput(r)
	if in.Status == "" {
		in.Status = models.FarmerActive
	}

	reRender := func(msg string) {
		vm := viewdata.NewBaseVM(r, h.DB, "Edit Farmer", basePath+"?tab="+tabManagement)
		vm.Error = msg
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "farmer_edit", editData{BaseVM: vm, ID: id.Hex(), Form: in, Statuses: statuses})
	}

	if res := inputval.Check(in, fieldOrder...); res.HasErrors() {
		reRender(res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := farmerstore.New(h.DB).Update(ctx, id, in.toModel())
	switch {
	case errors.Is(err, farmerstore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "farmer not found", err, "Farmer not found.", basePath)
		return
	case errors.Is(err, farmerstore.ErrDuplicateEmail):
		reRender("A farmer with this email already exists.")
		return
	case errors.Is(err, farmerstore.ErrInvalidStatus), errors.Is(err, farmerstore.ErrMissingFields):
		reRender(err.Error())
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "update farmer failed", err, "A database error occurred.", basePath)
		return
	}

	h.Log.Info("farmer updated", zap.String("farmer_id", id.Hex()))
	http.Redirect(w, r, basePath+"?tab="+tabManagement+"&success=updated", http.StatusSeeOther)
}

// HandleDelete removes a farmer.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := farmerID(r)
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "bad farmer id", nil, "Invalid farmer id.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := farmerstore.New(h.DB).Delete(ctx, id)
	if errors.Is(err, farmerstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "farmer not found", err, "Farmer not found.", basePath)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete farmer failed", err, "A database error occurred.", basePath)
		return
	}

	h.Log.Info("farmer deleted", zap.String("farmer_id", id.Hex()))
	http.Redirect(w, r, basePath+"?tab="+tabManagement+"&success=deleted", http.StatusSeeOther)
}

// HandleAssignEquipment sets the device model installed for a farmer.
func (h *Handler) HandleAssignEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := farmerID(r)
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "bad farmer id", nil, "Invalid farmer id.", basePath)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return
	}
	model := r.FormValue("equipment")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := farmerstore.New(h.DB).AssignEquipment(ctx, id, model)
	switch {
	case errors.Is(err, farmerstore.ErrInvalidEquipment):
		h.ErrLog.LogBadRequest(w, r, "invalid equipment model", err, "Unknown equipment model.", basePath+"?tab="+tabEquipment)
		return
	case errors.Is(err, farmerstore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "farmer not found", err, "Farmer not found.", basePath)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "assign equipment failed", err, "A database error occurred.", basePath)
		return
	}

	h.Log.Info("equipment assigned", zap.String("farmer_id", id.Hex()), zap.String("model", model))
	http.Redirect(w, r, basePath+"?tab="+tabEquipment+"&success=assigned", http.StatusSeeOther)
}
