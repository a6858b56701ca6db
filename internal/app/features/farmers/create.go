// internal/app/features/farmers/create.go
package farmers

import (
	"context"
	"errors"
	"net/http"

	farmerstore "github.com/dalemusser/coophub/internal/app/store/farmers"
	"github.com/dalemusser/coophub/internal/app/system/inputval"
	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

func formInput(r *http.Request) farmerInput {
	return farmerInput{
		Name:     normalize.Name(r.FormValue("name")),
		Email:    normalize.Email(r.FormValue("email")),
		Farm:     normalize.Name(r.FormValue("farm")),
		Location: normalize.Name(r.FormValue("location")),
		Phone:    normalize.Name(r.FormValue("phone")),
		Status:   normalize.Name(r.FormValue("status")),
	}
}

// HandleCreate registers a farmer from the registration tab.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return
	}
	in := formInput(r)
	in.Status = ""

	reRender := func(msg string) {
		data, err := h.listData(r, tabRegistration)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "load farmers failed", err, "A database error occurred.", basePath)
			return
		}
		data.Form = in
		data.Error = msg
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "farmer_management", data)
	}

	if res := inputval.Check(in, fieldOrder...); res.HasErrors() {
		reRender(res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f, err := farmerstore.New(h.DB).Create(ctx, in.toModel())
	switch {
	case errors.Is(err, farmerstore.ErrDuplicateEmail):
		reRender("A farmer with this email already exists.")
		return
	case errors.Is(err, farmerstore.ErrMissingFields):
		reRender("Name, email and farm are required.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "create farmer failed", err, "A database error occurred.", basePath)
		return
	}

	h.Log.Info("farmer registered", zap.String("farmer_id", f.ID.Hex()), zap.String("farm", f.Farm))
	http.Redirect(w, r, basePath+"?tab="+tabManagement+"&success=created", http.StatusSeeOther)
}
