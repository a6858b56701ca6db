// internal/domain/models/farmersettings.go
package models

import "time"

// Farmer settings categories, one per tab on the farmer settings screen.
const (
	FarmerSettingsProfile       = "profile"
	FarmerSettingsNotifications = "notifications"
	FarmerSettingsSecurity      = "security"
	FarmerSettingsPreferences   = "preferences"
)

// FarmerSettingsCategories lists the categories in tab order.
var FarmerSettingsCategories = []string{
	FarmerSettingsProfile, FarmerSettingsNotifications, FarmerSettingsSecurity, FarmerSettingsPreferences,
}

// FarmerProfile is the contact card for a farm.
type FarmerProfile struct {
	Name     string `bson:"name" yaml:"name" json:"name"`
	Email    string `bson:"email" yaml:"email" json:"email"`
	Phone    string `bson:"phone" yaml:"phone" json:"phone"`
	FarmName string `bson:"farm_name" yaml:"farm_name" json:"farm_name"`
	Address  string `bson:"address" yaml:"address" json:"address"`
}

// FarmerNotifications selects which events reach the farmer.
type FarmerNotifications struct {
	EmailOrders bool `bson:"email_orders" yaml:"email_orders" json:"email_orders"`
	EmailAlerts bool `bson:"email_alerts" yaml:"email_alerts" json:"email_alerts"`
	SMSAlerts   bool `bson:"sms_alerts" yaml:"sms_alerts" json:"sms_alerts"`
	PushAlerts  bool `bson:"push_alerts" yaml:"push_alerts" json:"push_alerts"`
}

// FarmerSecurity holds the farmer's account security preferences.
type FarmerSecurity struct {
	TwoFactorEnabled    bool   `bson:"two_factor_enabled" yaml:"two_factor_enabled" json:"two_factor_enabled"`
	SessionTimeout      int    `bson:"session_timeout" yaml:"session_timeout" json:"session_timeout"`
	PasswordLastChanged string `bson:"password_last_changed" yaml:"password_last_changed" json:"password_last_changed"`
}

// FarmerPreferences holds display preferences.
type FarmerPreferences struct {
	Theme    string `bson:"theme" yaml:"theme" json:"theme"` // light | dark
	Language string `bson:"language" yaml:"language" json:"language"`
	Timezone string `bson:"timezone" yaml:"timezone" json:"timezone"`
	Units    string `bson:"units" yaml:"units" json:"units"` // imperial | metric
}

// FarmerSettings is the settings document for one farm.
type FarmerSettings struct {
	Farm          string              `bson:"farm" yaml:"farm" json:"farm"`
	Profile       FarmerProfile       `bson:"profile" yaml:"profile" json:"profile"`
	Notifications FarmerNotifications `bson:"notifications" yaml:"notifications" json:"notifications"`
	Security      FarmerSecurity      `bson:"security" yaml:"security" json:"security"`
	Preferences   FarmerPreferences   `bson:"preferences" yaml:"preferences" json:"preferences"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" yaml:"-" json:"updated_at,omitempty"`
}

// IsValidFarmerSettingsCategory reports whether c names a farmer settings tab.
func IsValidFarmerSettingsCategory(c string) bool {
	for _, v := range FarmerSettingsCategories {
		if v == c {
			return true
		}
	}
	return false
}

// DefaultFarmerSettings returns settings for a farm that has never saved any.
func DefaultFarmerSettings(farm string) FarmerSettings {
	return FarmerSettings{
		Farm:    farm,
		Profile: FarmerProfile{FarmName: farm},
		Notifications: FarmerNotifications{
			EmailOrders: true,
			EmailAlerts: true,
			PushAlerts:  true,
		},
		Security: FarmerSecurity{SessionTimeout: 30},
		Preferences: FarmerPreferences{
			Theme:    "light",
			Language: "en",
			Timezone: "America/New_York",
			Units:    "imperial",
		},
	}
}
