// internal/app/features/support/actions.go
package support

import (
	"context"
	"errors"
	"net/http"

	ticketstore "github.com/dalemusser/coophub/internal/app/store/tickets"
	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func (h *Handler) ticketID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad ticket id", err, "Invalid ticket id.", basePath)
		return id, false
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return id, false
	}
	return id, true
}

// returnTab keeps the tab the form was posted from.
func returnTab(r *http.Request) string {
	tab := normalize.QueryParam(r.FormValue("tab"))
	for _, t := range tabKeys {
		if t == tab {
			return tab
		}
	}
	return tabTickets
}

// HandleReply appends a support reply. Open tickets move to in-progress.
func (h *Handler) HandleReply(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ticketID(w, r)
	if !ok {
		return
	}
	tab := returnTab(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, err := ticketstore.New(h.DB).Reply(ctx, id, r.FormValue("message"))
	switch {
	case errors.Is(err, ticketstore.ErrEmptyReply):
		h.ErrLog.LogBadRequest(w, r, "empty reply", err, "Reply cannot be empty.", deskURL(tab, id, ""))
		return
	case errors.Is(err, ticketstore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "ticket not found", err, "Ticket not found.", basePath)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "reply failed", err, "A database error occurred.", basePath)
		return
	}

	h.Log.Info("ticket replied", zap.String("ticket_id", id.Hex()), zap.String("status", t.Status))
	http.Redirect(w, r, deskURL(tab, id, "replied"), http.StatusSeeOther)
}

// HandleStatus sets a ticket's status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ticketID(w, r)
	if !ok {
		return
	}
	tab := returnTab(r)
	status := normalize.Status(r.FormValue("status"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := ticketstore.New(h.DB).SetStatus(ctx, id, status)
	switch {
	case errors.Is(err, ticketstore.ErrInvalidStatus):
		h.ErrLog.LogBadRequest(w, r, "invalid ticket status", err, "Unknown ticket status.", deskURL(tab, id, ""))
		return
	case errors.Is(err, ticketstore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "ticket not found", err, "Ticket not found.", basePath)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "set ticket status failed", err, "A database error occurred.", basePath)
		return
	}

	h.Log.Info("ticket status changed", zap.String("ticket_id", id.Hex()), zap.String("status", status))
	http.Redirect(w, r, deskURL(tab, id, "updated"), http.StatusSeeOther)
}
