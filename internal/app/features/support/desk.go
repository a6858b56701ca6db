// internal/app/features/support/desk.go
package support

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	ticketstore "github.com/dalemusser/coophub/internal/app/store/tickets"
	"github.com/dalemusser/coophub/internal/app/system/navigation"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	tabTickets  = "tickets"
	tabOpen     = "open"
	tabResolved = "resolved"
	tabFAQs     = "faqs"
)

var tabKeys = []string{tabTickets, tabOpen, tabResolved, tabFAQs}

// statusFilter maps a tab to the ticket status it lists. "" lists all.
func statusFilter(tab string) string {
	switch tab {
	case tabOpen:
		return models.TicketOpen
	case tabResolved:
		return models.TicketResolved
	}
	return ""
}

type deskData struct {
	viewdata.BaseVM

	Tabs     []viewdata.Tab
	Tab      string
	Tickets  []models.Ticket
	Selected *models.Ticket
	Statuses []string
	FAQs     []models.FAQ
}

// ServeDesk lists tickets for the active tab. ?ticket=<id> opens the detail pane.
func (h *Handler) ServeDesk(w http.ResponseWriter, r *http.Request) {
	tab := navigation.TabOrDefault(r, tabKeys...)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := ticketstore.New(h.DB)
	counts, err := store.CountByStatus(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count tickets failed", err, "A database error occurred.", "/")
		return
	}

	data := deskData{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "Customer Support", "/admin/system-overview"),
		Tab:      tab,
		Statuses: []string{models.TicketOpen, models.TicketInProgress, models.TicketResolved},
		FAQs:     h.Seed.Admin.FAQs,
	}
	data.Tabs = viewdata.Tabs(tab,
		tabTickets, "All Tickets",
		tabOpen, fmt.Sprintf("Open (%d)", counts[models.TicketOpen]),
		tabResolved, fmt.Sprintf("Resolved (%d)", counts[models.TicketResolved]),
		tabFAQs, "FAQs",
	)

	if tab != tabFAQs {
		data.Tickets, err = store.List(ctx, statusFilter(tab))
		if err != nil {
			h.ErrLog.LogServerError(w, r, "list tickets failed", err, "A database error occurred.", "/")
			return
		}
		if id, err := primitive.ObjectIDFromHex(query.Get(r, "ticket")); err == nil {
			t, err := store.Get(ctx, id)
			switch {
			case errors.Is(err, ticketstore.ErrNotFound):
				data.Error = "That ticket no longer exists."
			case err != nil:
				h.ErrLog.LogServerError(w, r, "load ticket failed", err, "A database error occurred.", "/")
				return
			default:
				data.Selected = t
			}
		}
	}

	data.WithSuccess(r)
	templates.Render(w, r, "admin_customer_support", data)
}

func deskURL(tab string, id primitive.ObjectID, success string) string {
	v := url.Values{}
	if tab != "" {
		v.Set("tab", tab)
	}
	if !id.IsZero() {
		v.Set("ticket", id.Hex())
	}
	if success != "" {
		v.Set("success", success)
	}
	return basePath + "?" + v.Encode()
}
