// internal/app/features/products/update.go
package products

import (
	"context"
	"errors"
	"net/http"

	productstore "github.com/dalemusser/coophub/internal/app/store/products"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/inputval"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func (h *Handler) target(w http.ResponseWriter, r *http.Request) (string, primitive.ObjectID, bool) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "product change without farm scope", "Your account is not linked to a farm.")
		return "", primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad product id", err, "Invalid product id.", basePath)
		return "", primitive.NilObjectID, false
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return "", primitive.NilObjectID, false
	}
	return farm, id, true
}

// reject re-renders the page with msg and a 422 status.
func (h *Handler) reject(w http.ResponseWriter, r *http.Request, farm, msg string) {
	data, err := h.listData(r, farm)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list products failed", err, "A database error occurred.", basePath)
		return
	}
	data.Error = msg
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "farmer_my_products", data)
}

// finish maps a store result to the redirect or an error page.
func (h *Handler) finish(w http.ResponseWriter, r *http.Request, farm string, id primitive.ObjectID, op, success string, err error) {
	switch {
	case errors.Is(err, productstore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "product not found", err, "Product not found.", basePath)
	case errors.Is(err, productstore.ErrNegative):
		h.reject(w, r, farm, "Value cannot be negative.")
	case err != nil:
		h.ErrLog.LogServerError(w, r, op+" failed", err, "A database error occurred.", basePath)
	default:
		h.Log.Info(op, zap.String("farm", farm), zap.String("product_id", id.Hex()))
		http.Redirect(w, r, basePath+"?success="+success, http.StatusSeeOther)
	}
}

// HandlePrice sets a product's price. Unparseable input stores 0.
func (h *Handler) HandlePrice(w http.ResponseWriter, r *http.Request) {
	farm, id, ok := h.target(w, r)
	if !ok {
		return
	}
	price, ok := inputval.ParseAmount(r.FormValue("price"))
	if !ok {
		h.reject(w, r, farm, "Price cannot be negative.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := productstore.New(h.DB).UpdatePrice(ctx, farm, id, price)
	h.finish(w, r, farm, id, "product price updated", "updated", err)
}

// HandleStock sets a product's stock. Unparseable input stores 0.
func (h *Handler) HandleStock(w http.ResponseWriter, r *http.Request) {
	farm, id, ok := h.target(w, r)
	if !ok {
		return
	}
	stock, ok := inputval.ParseCount(r.FormValue("stock"))
	if !ok {
		h.reject(w, r, farm, "Stock cannot be negative.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := productstore.New(h.DB).UpdateStock(ctx, farm, id, stock)
	h.finish(w, r, farm, id, "product stock updated", "updated", err)
}

// HandleToggle flips whether a product is offered for sale.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	farm, id, ok := h.target(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := productstore.New(h.DB).ToggleAvailability(ctx, farm, id)
	h.finish(w, r, farm, id, "product availability toggled", "toggled", err)
}
