// internal/app/features/users/list.go
package users

import (
	"context"
	"fmt"
	"net/http"

	userstore "github.com/dalemusser/coophub/internal/app/store/users"
	"github.com/dalemusser/coophub/internal/app/system/navigation"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList renders the account table for the active tab.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	tab := navigation.TabOrDefault(r, tabKeys...)
	data, err := h.listData(r, tab)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list accounts failed", err, "A database error occurred.", "/")
		return
	}
	data.ShowForm = r.URL.Query().Get("add") == "1"
	data.WithSuccess(r)
	templates.Render(w, r, "admin_user_management", data)
}

func (h *Handler) listData(r *http.Request, tab string) (listData, error) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := userstore.New(h.DB)
	all, err := store.List(ctx)
	if err != nil {
		return listData{}, err
	}
	byRole, err := store.CountByRole(ctx)
	if err != nil {
		return listData{}, err
	}

	stats := Stats{Total: len(all), Admins: byRole[models.RoleAdmin], Farmers: byRole[models.RoleFarmer]}
	for _, a := range all {
		if a.Status == models.AccountActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
	}

	data := listData{
		BaseVM:      viewdata.NewBaseVM(r, h.DB, "User Management", "/admin/system-overview"),
		Tab:         tab,
		Accounts:    filterByTab(all, tab),
		Stats:       stats,
		Roles:       models.AccountRoles,
		Permissions: models.AvailablePermissions,
		Form:        accountInput{Role: models.RoleFarmer},
	}
	data.Tabs = viewdata.Tabs(tab,
		tabUsers, "All Users",
		tabActive, fmt.Sprintf("Active (%d)", stats.Active),
		tabInactive, fmt.Sprintf("Inactive (%d)", stats.Inactive),
	)
	return data, nil
}

// filterByTab keeps the accounts listed on tab.
func filterByTab(all []models.Account, tab string) []models.Account {
	if tab != tabActive && tab != tabInactive {
		return all
	}
	out := make([]models.Account, 0, len(all))
	for _, a := range all {
		if a.Status == tab {
			out = append(out, a)
		}
	}
	return out
}
