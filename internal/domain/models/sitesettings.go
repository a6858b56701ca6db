// internal/domain/models/sitesettings.go
package models

import "time"

// DefaultSiteName is the system name used until an admin changes it.
const DefaultSiteName = "Smart Coop Platform"

// System settings categories, one per tab on the system settings screen.
const (
	SettingsGeneral       = "general"
	SettingsSecurity      = "security"
	SettingsNotifications = "notifications"
	SettingsDatabase      = "database"
	SettingsAPI           = "api"
)

// SystemSettingsCategories lists the categories in tab order.
var SystemSettingsCategories = []string{
	SettingsGeneral, SettingsSecurity, SettingsNotifications, SettingsDatabase, SettingsAPI,
}

// GeneralSettings configures platform identity and locale.
type GeneralSettings struct {
	SystemName      string `bson:"system_name" yaml:"system_name" json:"system_name"`
	Timezone        string `bson:"timezone" yaml:"timezone" json:"timezone"`
	Language        string `bson:"language" yaml:"language" json:"language"`
	MaintenanceMode bool   `bson:"maintenance_mode" yaml:"maintenance_mode" json:"maintenance_mode"`
}

// SecuritySettings configures sessions and password policy.
type SecuritySettings struct {
	SessionTimeout   int    `bson:"session_timeout" yaml:"session_timeout" json:"session_timeout"` // minutes
	PasswordPolicy   string `bson:"password_policy" yaml:"password_policy" json:"password_policy"` // basic | strong | strict
	TwoFactorEnabled bool   `bson:"two_factor_enabled" yaml:"two_factor_enabled" json:"two_factor_enabled"`
	IPWhitelist      string `bson:"ip_whitelist" yaml:"ip_whitelist" json:"ip_whitelist"`
}

// NotificationSettings configures platform notification channels.
type NotificationSettings struct {
	EmailNotifications bool `bson:"email_notifications" yaml:"email_notifications" json:"email_notifications"`
	SMSNotifications   bool `bson:"sms_notifications" yaml:"sms_notifications" json:"sms_notifications"`
	PushNotifications  bool `bson:"push_notifications" yaml:"push_notifications" json:"push_notifications"`
	AlertThreshold     int  `bson:"alert_threshold" yaml:"alert_threshold" json:"alert_threshold"` // percent
}

// DatabaseSettings configures backups.
type DatabaseSettings struct {
	BackupFrequency string `bson:"backup_frequency" yaml:"backup_frequency" json:"backup_frequency"` // hourly | daily | weekly
	RetentionPeriod int    `bson:"retention_period" yaml:"retention_period" json:"retention_period"` // days
	AutoOptimize    bool   `bson:"auto_optimize" yaml:"auto_optimize" json:"auto_optimize"`
	LastBackup      string `bson:"last_backup" yaml:"last_backup" json:"last_backup"`
}

// APISettings configures the public API surface.
type APISettings struct {
	RateLimit     int    `bson:"rate_limit" yaml:"rate_limit" json:"rate_limit"`         // requests per hour
	KeyExpiration int    `bson:"key_expiration" yaml:"key_expiration" json:"key_expiration"` // days
	WebhookURL    string `bson:"webhook_url" yaml:"webhook_url" json:"webhook_url"`
	DebugMode     bool   `bson:"debug_mode" yaml:"debug_mode" json:"debug_mode"`
}

// SystemSettings is the single platform-wide settings document.
type SystemSettings struct {
	General       GeneralSettings      `bson:"general" yaml:"general" json:"general"`
	Security      SecuritySettings     `bson:"security" yaml:"security" json:"security"`
	Notifications NotificationSettings `bson:"notifications" yaml:"notifications" json:"notifications"`
	Database      DatabaseSettings     `bson:"database" yaml:"database" json:"database"`
	API           APISettings          `bson:"api" yaml:"api" json:"api"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" yaml:"-" json:"updated_at,omitempty"`
}

// IsValidSystemSettingsCategory reports whether c names a system settings tab.
func IsValidSystemSettingsCategory(c string) bool {
	for _, v := range SystemSettingsCategories {
		if v == c {
			return true
		}
	}
	return false
}

// DefaultSystemSettings returns the settings used before anything is saved.
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{
		General: GeneralSettings{
			SystemName: DefaultSiteName,
			Timezone:   "America/New_York",
			Language:   "en",
		},
		Security: SecuritySettings{
			SessionTimeout: 30,
			PasswordPolicy: "strong",
		},
		Notifications: NotificationSettings{
			EmailNotifications: true,
			PushNotifications:  true,
			AlertThreshold:     80,
		},
		Database: DatabaseSettings{
			BackupFrequency: "daily",
			RetentionPeriod: 30,
			AutoOptimize:    true,
			LastBackup:      "2024-09-20 02:00",
		},
		API: APISettings{
			RateLimit:     1000,
			KeyExpiration: 90,
		},
	}
}
