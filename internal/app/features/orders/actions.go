// internal/app/features/orders/actions.go
package orders

import (
	"context"
	"errors"
	"net/http"

	orderstore "github.com/dalemusser/coophub/internal/app/store/orders"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// target resolves the farm scope and the {id} of the order being acted on.
func (h *Handler) target(w http.ResponseWriter, r *http.Request) (string, primitive.ObjectID, bool) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "order change without farm scope", "Your account is not linked to a farm.")
		return "", primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad order id", err, "Invalid order id.", basePath)
		return "", primitive.NilObjectID, false
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return "", primitive.NilObjectID, false
	}
	return farm, id, true
}

func (h *Handler) transitionError(w http.ResponseWriter, r *http.Request, op string, err error, back string) {
	switch {
	case errors.Is(err, orderstore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "order not found", err, "Order not found.", back)
	case errors.Is(err, orderstore.ErrInvalidTransition):
		h.ErrLog.LogBadRequest(w, r, op+" rejected", err, "This order can no longer be changed that way.", back)
	default:
		h.ErrLog.LogServerError(w, r, op+" failed", err, "A database error occurred.", back)
	}
}

func logOrder(log *zap.Logger, msg, farm string, o models.Order) {
	log.Info(msg,
		zap.String("farm", farm),
		zap.String("order_id", o.ID.Hex()),
		zap.String("customer", o.CustomerName),
		zap.String("status", o.Status))
}

// HandleAccept schedules delivery and accepts a pending order.
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	farm, id, ok := h.target(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	o, err := orderstore.New(h.DB).Accept(ctx, farm, id, r.FormValue("delivery_date"), r.FormValue("delivery_time"))
	if errors.Is(err, models.ErrDeliveryUnscheduled) {
		data, lerr := h.listData(r, farm, tabIncoming)
		if lerr != nil {
			h.ErrLog.LogServerError(w, r, "list orders failed", lerr, "A database error occurred.", basePath)
			return
		}
		data.AcceptID = id.Hex()
		data.Error = "Choose a delivery date and time."
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "farmer_customer_orders", data)
		return
	}
	if err != nil {
		h.transitionError(w, r, "accept order", err, basePath)
		return
	}

	logOrder(h.Log, "order accepted", farm, o)
	http.Redirect(w, r, basePath+"?tab="+tabIncoming+"&success=accepted", http.StatusSeeOther)
}

// HandleDecline declines a pending order.
func (h *Handler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	farm, id, ok := h.target(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	o, err := orderstore.New(h.DB).Decline(ctx, farm, id)
	if err != nil {
		h.transitionError(w, r, "decline order", err, basePath)
		return
	}

	logOrder(h.Log, "order declined", farm, o)
	http.Redirect(w, r, basePath+"?tab="+tabIncoming+"&success=declined", http.StatusSeeOther)
}

// HandleDeliver marks an accepted order delivered.
func (h *Handler) HandleDeliver(w http.ResponseWriter, r *http.Request) {
	farm, id, ok := h.target(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	o, err := orderstore.New(h.DB).MarkDelivered(ctx, farm, id)
	if err != nil {
		h.transitionError(w, r, "deliver order", err, basePath+"?tab="+tabHistory)
		return
	}

	logOrder(h.Log, "order delivered", farm, o)
	http.Redirect(w, r, basePath+"?tab="+tabHistory+"&success=delivered", http.StatusSeeOther)
}
