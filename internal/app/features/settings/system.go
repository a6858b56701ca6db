// internal/app/features/settings/system.go
package settings

import (
	"context"
	"net/http"

	settingsstore "github.com/dalemusser/coophub/internal/app/store/settings"
	"github.com/dalemusser/coophub/internal/app/system/inputval"
	"github.com/dalemusser/coophub/internal/app/system/navigation"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/timezones"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.uber.org/zap"
)

const systemPath = "/admin/system-settings"

type systemVM struct {
	viewdata.BaseVM

	Tabs      []viewdata.Tab
	Tab       string
	Timezones []timezones.ZoneGroup
	Settings  models.SystemSettings
}

func systemTabs(active string) []viewdata.Tab {
	return viewdata.Tabs(active,
		models.SettingsGeneral, "General",
		models.SettingsSecurity, "Security",
		models.SettingsNotifications, "Notifications",
		models.SettingsDatabase, "Database",
		models.SettingsAPI, "API",
	)
}

// ServeSystemSettings renders the active settings tab.
func (h *Handler) ServeSystemSettings(w http.ResponseWriter, r *http.Request) {
	tab := navigation.TabOrDefault(r, models.SystemSettingsCategories...)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := settingsstore.New(h.DB).GetSystem(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load system settings failed", err, "Failed to load settings.", "/")
		return
	}

	vm := systemVM{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "System Settings", "/admin/system-overview"),
		Tabs:      systemTabs(tab),
		Tab:       tab,
		Timezones: timezones.Groups(),
		Settings:  st,
	}
	vm.WithSuccess(r)
	templates.Render(w, r, "admin_system_settings", vm)
}

// HandleSystemSettings saves the category named by the "category" field.
func (h *Handler) HandleSystemSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", systemPath)
		return
	}
	category := formString(r, "category")
	if !models.IsValidSystemSettingsCategory(category) {
		h.ErrLog.LogBadRequest(w, r, "unknown settings category", settingsstore.ErrUnknownCategory, "Unknown settings section.", systemPath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := settingsstore.New(h.DB)
	st, err := store.GetSystem(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load system settings failed", err, "Failed to load settings.", systemPath)
		return
	}

	if err := readSystemCategory(r, category, &st); err != nil {
		vm := systemVM{
			BaseVM:    viewdata.NewBaseVM(r, h.DB, "System Settings", "/admin/system-overview"),
			Tabs:      systemTabs(category),
			Tab:       category,
			Timezones: timezones.Groups(),
			Settings:  st,
		}
		vm.Error = inputval.FromError(err).First()
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "admin_system_settings", vm)
		return
	}

	if err := store.SaveSystem(ctx, category, st); err != nil {
		h.ErrLog.LogServerError(w, r, "save system settings failed", err, "Failed to save settings.", systemPath)
		return
	}

	h.Log.Info("system settings saved", zap.String("category", category))
	http.Redirect(w, r, systemPath+"?tab="+category+"&success=saved", http.StatusSeeOther)
}

// readSystemCategory copies one category's form fields into st and validates them.
func readSystemCategory(r *http.Request, category string, st *models.SystemSettings) error {
	switch category {
	case models.SettingsGeneral:
		g := models.GeneralSettings{
			SystemName:      formString(r, "system_name"),
			Timezone:        formString(r, "timezone"),
			Language:        formString(r, "language"),
			MaintenanceMode: formBool(r, "maintenance_mode"),
		}
		st.General = g
		return validation.ValidateStruct(&g,
			validation.Field(&g.SystemName, validation.Required.Error("system name is required"), validation.Length(1, 100)),
			validation.Field(&g.Timezone, validation.Required.Error("timezone is required"), validation.By(validZone)),
			validation.Field(&g.Language, validation.Required.Error("language is required")),
		)
	case models.SettingsSecurity:
		s := models.SecuritySettings{
			SessionTimeout:   formInt(r, "session_timeout"),
			PasswordPolicy:   formString(r, "password_policy"),
			TwoFactorEnabled: formBool(r, "two_factor_enabled"),
			IPWhitelist:      formString(r, "ip_whitelist"),
		}
		st.Security = s
		return validation.ValidateStruct(&s,
			validation.Field(&s.SessionTimeout, validation.Required.Error("session timeout is required"), validation.Min(5).Error("session timeout must be at least 5 minutes"), validation.Max(1440)),
			validation.Field(&s.PasswordPolicy, validation.Required.Error("password policy is required"), validation.In("basic", "strong", "strict").Error("password policy is not valid")),
		)
	case models.SettingsNotifications:
		n := models.NotificationSettings{
			EmailNotifications: formBool(r, "email_notifications"),
			SMSNotifications:   formBool(r, "sms_notifications"),
			PushNotifications:  formBool(r, "push_notifications"),
			AlertThreshold:     formInt(r, "alert_threshold"),
		}
		st.Notifications = n
		return validation.ValidateStruct(&n,
			validation.Field(&n.AlertThreshold, validation.Min(0).Error("alert threshold must be between 0 and 100"), validation.Max(100).Error("alert threshold must be between 0 and 100")),
		)
	case models.SettingsDatabase:
		d := models.DatabaseSettings{
			BackupFrequency: formString(r, "backup_frequency"),
			RetentionPeriod: formInt(r, "retention_period"),
			AutoOptimize:    formBool(r, "auto_optimize"),
			LastBackup:      st.Database.LastBackup,
		}
		st.Database = d
		return validation.ValidateStruct(&d,
			validation.Field(&d.BackupFrequency, validation.Required.Error("backup frequency is required"), validation.In("hourly", "daily", "weekly").Error("backup frequency is not valid")),
			validation.Field(&d.RetentionPeriod, validation.Required.Error("retention period is required"), validation.Min(1).Error("retention must be at least 1 day"), validation.Max(3650)),
		)
	case models.SettingsAPI:
		a := models.APISettings{
			RateLimit:     formInt(r, "rate_limit"),
			KeyExpiration: formInt(r, "key_expiration"),
			WebhookURL:    formString(r, "webhook_url"),
			DebugMode:     formBool(r, "debug_mode"),
		}
		st.API = a
		return validation.ValidateStruct(&a,
			validation.Field(&a.RateLimit, validation.Min(0).Error("rate limit cannot be negative")),
			validation.Field(&a.KeyExpiration, validation.Required.Error("key expiration is required"), validation.Min(1).Error("key expiration must be at least 1 day")),
			validation.Field(&a.WebhookURL, is.URL.Error("webhook URL is not valid")),
		)
	}
	return settingsstore.ErrUnknownCategory
}
