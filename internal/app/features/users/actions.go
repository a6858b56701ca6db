// internal/app/features/users/actions.go
package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/coophub/internal/app/store/users"
	"github.com/dalemusser/coophub/internal/app/system/inputval"
	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func formInput(r *http.Request) accountInput {
	return accountInput{
		Name:   normalize.Name(r.FormValue("name")),
		Email:  normalize.Email(r.FormValue("email")),
		Role:   normalize.Role(r.FormValue("role")),
		Status: normalize.Status(r.FormValue("status")),
	}
}

// accountID parses the {id} URL parameter and the form body.
func (h *Handler) accountID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad account id", err, "Invalid account id.", basePath)
		return id, false
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return id, false
	}
	return id, true
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, userstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "account not found", err, "Account not found.", basePath)
		return
	}
	h.ErrLog.LogServerError(w, r, op+" failed", err, "A database error occurred.", basePath)
}

// HandleCreate adds an account. Permissions follow the chosen role.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return
	}
	in := formInput(r)
	in.Status = ""

	reRender := func(msg string) {
		data, err := h.listData(r, tabUsers)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "list accounts failed", err, "A database error occurred.", basePath)
			return
		}
		data.Form = in
		data.ShowForm = true
		data.Error = msg
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "admin_user_management", data)
	}

	if res := inputval.Check(in, fieldOrder...); res.HasErrors() {
		reRender(res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := userstore.New(h.DB).Create(ctx, models.Account{Name: in.Name, Email: in.Email, Role: in.Role})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		reRender("An account with this email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create account failed", err, "A database error occurred.", basePath)
		return
	}

	h.Log.Info("account created", zap.String("account_id", a.ID.Hex()), zap.String("role", a.Role))
	http.Redirect(w, r, basePath+"?success=created", http.StatusSeeOther)
}

// ServeEdit renders the edit form for one account.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := userstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		h.storeError(w, r, "load account", err)
		return
	}

	templates.Render(w, r, "admin_user_edit", editData{
		BaseVM:      viewdata.NewBaseVM(r, h.DB, "Edit User", basePath),
		ID:          a.ID.Hex(),
		Form:        accountInput{Name: a.Name, Email: a.Email, Role: a.Role, Status: a.Status},
		Roles:       models.AccountRoles,
		Permissions: a.Permissions,
	})
}

// HandleEdit saves name, email, role and status.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}
	in := formInput(r)

	reRender := func(msg string) {
		vm := viewdata.NewBaseVM(r, h.DB, "Edit User", basePath)
		vm.Error = msg
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "admin_user_edit", editData{
			BaseVM:      vm,
			ID:          id.Hex(),
			Form:        in,
			Roles:       models.AccountRoles,
			Permissions: models.RolePermissions(in.Role),
		})
	}

	if res := inputval.Check(in, fieldOrder...); res.HasErrors() {
		reRender(res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := userstore.New(h.DB).Update(ctx, id, userstore.AccountUpdate{
		Name: in.Name, Email: in.Email, Role: in.Role, Status: in.Status,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		reRender("An account with this email already exists.")
		return
	}
	if err != nil {
		h.storeError(w, r, "update account", err)
		return
	}

	h.Log.Info("account updated", zap.String("account_id", id.Hex()))
	http.Redirect(w, r, basePath+"?success=updated", http.StatusSeeOther)
}

// HandleDelete removes an account.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := userstore.New(h.DB).Delete(ctx, id); err != nil {
		h.storeError(w, r, "delete account", err)
		return
	}

	h.Log.Info("account deleted", zap.String("account_id", id.Hex()))
	http.Redirect(w, r, basePath+"?success=deleted", http.StatusSeeOther)
}

// HandleChangeRole sets a new role. Permissions reset to the role defaults.
func (h *Handler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}
	role := normalize.Role(r.FormValue("role"))
	if !models.IsValidAccountRole(role) {
		h.ErrLog.LogBadRequest(w, r, "invalid role", nil, "Unknown role.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := userstore.New(h.DB).ChangeRole(ctx, id, role); err != nil {
		h.storeError(w, r, "change role", err)
		return
	}

	h.Log.Info("account role changed", zap.String("account_id", id.Hex()), zap.String("role", role))
	http.Redirect(w, r, basePath+"?success=updated", http.StatusSeeOther)
}

// HandleToggleStatus flips an account between active and inactive.
func (h *Handler) HandleToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	status, err := userstore.New(h.DB).ToggleStatus(ctx, id)
	if err != nil {
		h.storeError(w, r, "toggle account status", err)
		return
	}

	h.Log.Info("account status toggled", zap.String("account_id", id.Hex()), zap.String("status", status))
	http.Redirect(w, r, basePath+"?success=toggled", http.StatusSeeOther)
}
