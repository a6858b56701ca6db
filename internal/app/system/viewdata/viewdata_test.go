package viewdata

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/dalemusser/coophub/internal/domain/models"
)

func TestNewBaseVM_Anonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/login", nil)
	vm := NewBaseVM(req, nil, "Sign In", "/")

	if vm.IsLoggedIn {
		t.Error("expected anonymous request")
	}
	if vm.SiteName != models.DefaultSiteName {
		t.Errorf("SiteName = %q, want default", vm.SiteName)
	}
	if vm.Title != "Sign In" {
		t.Errorf("Title = %q", vm.Title)
	}
	if len(vm.Nav) != 0 {
		t.Errorf("anonymous nav = %v, want empty", vm.Nav)
	}
}

func TestNewBaseVM_FarmerNav(t *testing.T) {
	req := httptest.NewRequest("GET", "/farmer/egg-production?period=month", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{Role: "farmer", Name: "John Smith", FarmName: "Green Valley Farm"})

	vm := NewBaseVM(req, nil, "Egg Production", "/farmer/farm-overview")

	if !vm.IsLoggedIn || vm.Role != "farmer" || vm.FarmName != "Green Valley Farm" {
		t.Fatalf("unexpected user context: %+v", vm)
	}
	var active []string
	for _, it := range vm.Nav {
		if len(it.Path) < len("/farmer/") || it.Path[:len("/farmer/")] != "/farmer/" {
			t.Errorf("farmer nav leaks %q", it.Path)
		}
		if it.Active {
			active = append(active, it.Path)
		}
	}
	if len(active) != 1 || active[0] != "/farmer/egg-production" {
		t.Errorf("active items = %v, want only egg production", active)
	}
}

func TestNewBaseVM_NavAfterRedirect(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin/user-management?tab=active&success=updated", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{Role: "admin", Name: "Admin User"})

	vm := NewBaseVM(req, nil, "User Management", "/admin/system-overview")

	var active []string
	for _, it := range vm.Nav {
		if it.Active {
			active = append(active, it.Path)
		}
	}
	if len(active) != 1 || active[0] != "/admin/user-management" {
		t.Errorf("active items = %v, want only user management", active)
	}
}

func TestWithSuccess(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"?success=saved", "Changes saved."},
		{"?success=bogus", ""},
		{"", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/admin/system-settings"+tt.query, nil)
		var vm BaseVM
		vm.WithSuccess(req)
		if vm.Success != tt.want {
			t.Errorf("query %q: Success = %q, want %q", tt.query, vm.Success, tt.want)
		}
	}
}

func TestGetSiteName_NilDB(t *testing.T) {
	if got := GetSiteName(context.Background(), nil); got != models.DefaultSiteName {
		t.Errorf("GetSiteName = %q", got)
	}
}

func TestTabs(t *testing.T) {
	tabs := Tabs("open", "tickets", "All Tickets", "open", "Open", "resolved", "Resolved")
	if len(tabs) != 3 {
		t.Fatalf("len = %d, want 3", len(tabs))
	}
	for _, tab := range tabs {
		if tab.Active != (tab.Key == "open") {
			t.Errorf("tab %q active = %v", tab.Key, tab.Active)
		}
	}
	if tabs[2].Label != "Resolved" {
		t.Errorf("label = %q", tabs[2].Label)
	}
}
