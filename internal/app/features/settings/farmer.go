// internal/app/features/settings/farmer.go
package settings

import (
	"context"
	"net/http"

	settingsstore "github.com/dalemusser/coophub/internal/app/store/settings"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/inputval"
	"github.com/dalemusser/coophub/internal/app/system/navigation"
	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/timezones"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.uber.org/zap"
)

const farmerPath = "/farmer/settings"

type farmerVM struct {
	viewdata.BaseVM

	Tabs      []viewdata.Tab
	Tab       string
	Timezones []timezones.ZoneGroup
	Settings  models.FarmerSettings
}

func farmerTabs(active string) []viewdata.Tab {
	return viewdata.Tabs(active,
		models.FarmerSettingsProfile, "Profile",
		models.FarmerSettingsNotifications, "Notifications",
		models.FarmerSettingsSecurity, "Security",
		models.FarmerSettingsPreferences, "Preferences",
	)
}

// ServeFarmerSettings renders the signed-in farm's settings.
func (h *Handler) ServeFarmerSettings(w http.ResponseWriter, r *http.Request) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "farmer settings without farm scope", "Your account is not linked to a farm.")
		return
	}
	tab := navigation.TabOrDefault(r, models.FarmerSettingsCategories...)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := settingsstore.New(h.DB).GetFarmer(ctx, farm)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load farmer settings failed", err, "Failed to load settings.", "/")
		return
	}

	vm := farmerVM{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "Settings", "/farmer/farm-overview"),
		Tabs:      farmerTabs(tab),
		Tab:       tab,
		Timezones: timezones.Groups(),
		Settings:  st,
	}
	vm.WithSuccess(r)
	templates.Render(w, r, "farmer_settings", vm)
}

// HandleFarmerSettings saves one category of the farm's settings.
func (h *Handler) HandleFarmerSettings(w http.ResponseWriter, r *http.Request) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "farmer settings without farm scope", "Your account is not linked to a farm.")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", farmerPath)
		return
	}
	category := formString(r, "category")
	if !models.IsValidFarmerSettingsCategory(category) {
		h.ErrLog.LogBadRequest(w, r, "unknown settings category", settingsstore.ErrUnknownCategory, "Unknown settings section.", farmerPath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := settingsstore.New(h.DB)
	st, err := store.GetFarmer(ctx, farm)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load farmer settings failed", err, "Failed to load settings.", farmerPath)
		return
	}

	if err := readFarmerCategory(r, category, &st); err != nil {
		vm := farmerVM{
			BaseVM:    viewdata.NewBaseVM(r, h.DB, "Settings", "/farmer/farm-overview"),
			Tabs:      farmerTabs(category),
			Tab:       category,
			Timezones: timezones.Groups(),
			Settings:  st,
		}
		vm.Error = inputval.FromError(err).First()
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "farmer_settings", vm)
		return
	}

	if err := store.SaveFarmer(ctx, farm, category, st); err != nil {
		h.ErrLog.LogServerError(w, r, "save farmer settings failed", err, "Failed to save settings.", farmerPath)
		return
	}

	h.Log.Info("farmer settings saved", zap.String("farm", farm), zap.String("category", category))
	http.Redirect(w, r, farmerPath+"?tab="+category+"&success=saved", http.StatusSeeOther)
}

// readFarmerCategory copies one category's form fields into st and validates them.
func readFarmerCategory(r *http.Request, category string, st *models.FarmerSettings) error {
	switch category {
	case models.FarmerSettingsProfile:
		p := models.FarmerProfile{
			Name:     normalize.Name(r.FormValue("name")),
			Email:    normalize.Email(r.FormValue("email")),
			Phone:    normalize.Name(r.FormValue("phone")),
			FarmName: normalize.Name(r.FormValue("farm_name")),
			Address:  normalize.Name(r.FormValue("address")),
		}
		st.Profile = p
		return validation.ValidateStruct(&p,
			validation.Field(&p.Name, validation.Required.Error("name is required")),
			validation.Field(&p.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("email is not valid")),
			validation.Field(&p.FarmName, validation.Required.Error("farm name is required")),
		)
	case models.FarmerSettingsNotifications:
		st.Notifications = models.FarmerNotifications{
			EmailOrders: formBool(r, "email_orders"),
			EmailAlerts: formBool(r, "email_alerts"),
			SMSAlerts:   formBool(r, "sms_alerts"),
			PushAlerts:  formBool(r, "push_alerts"),
		}
		return nil
	case models.FarmerSettingsSecurity:
		s := models.FarmerSecurity{
			TwoFactorEnabled:    formBool(r, "two_factor_enabled"),
			SessionTimeout:      formInt(r, "session_timeout"),
			PasswordLastChanged: st.Security.PasswordLastChanged,
		}
		st.Security = s
		return validation.ValidateStruct(&s,
			validation.Field(&s.SessionTimeout, validation.Required.Error("session timeout is required"), validation.Min(5).Error("session timeout must be at least 5 minutes"), validation.Max(1440)),
		)
	case models.FarmerSettingsPreferences:
		p := models.FarmerPreferences{
			Theme:    formString(r, "theme"),
			Language: formString(r, "language"),
			Timezone: formString(r, "timezone"),
			Units:    formString(r, "units"),
		}
		st.Preferences = p
		return validation.ValidateStruct(&p,
			validation.Field(&p.Theme, validation.Required, validation.In("light", "dark").Error("theme is not valid")),
			validation.Field(&p.Language, validation.Required.Error("language is required")),
			validation.Field(&p.Timezone, validation.Required.Error("timezone is required"), validation.By(validZone)),
			validation.Field(&p.Units, validation.Required, validation.In("imperial", "metric").Error("units are not valid")),
		)
	}
	return settingsstore.ErrUnknownCategory
}
