// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CoopHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: COOPHUB_MONGO_URI, COOPHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "coophub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "coophub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime (e.g., 24h, 30m)"},

	// CSRF
	{Name: "csrf_key", Default: "dev-only-csrf-key-0123456789ABCD", Desc: "CSRF authentication key (exactly 32 bytes)"},

	// Sign-in credentials
	{Name: "admin_username", Default: "admin", Desc: "Admin sign-in username"},
	{Name: "admin_password", Default: "admin123", Desc: "Admin sign-in password"},
	{Name: "farmer_username", Default: "farmer", Desc: "Farmer sign-in username"},
	{Name: "farmer_password", Default: "farmer123", Desc: "Farmer sign-in password"},

	// Mock data
	{Name: "seed_on_start", Default: true, Desc: "Reset and reseed mock records on every start"},

	// Door simulation
	{Name: "door_sim_interval", Default: "5s", Desc: "Door simulation tick interval"},
	{Name: "door_sim_flip_chance", Default: "0.05", Desc: "Probability of a door flip per tick (0..1)"},
	{Name: "door_sim_max_drain", Default: "0.5", Desc: "Maximum battery percentage drained per tick"},

	// Charts
	{Name: "chart_cache_ttl", Default: "5m", Desc: "Rendered chart cache lifetime"},

	// Database timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Deadline for MongoDB health pings"},
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document reads and writes"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for list queries and screen loads"},
	{Name: "timeout_long", Default: "30s", Desc: "Deadline for seeding and index builds"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, COOPHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COOPHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	flip, err := parseFloat(appValues.String("door_sim_flip_chance"))
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("door_sim_flip_chance: %w", err)
	}
	drain, err := parseFloat(appValues.String("door_sim_max_drain"))
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("door_sim_max_drain: %w", err)
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		SessionMaxAge:    appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		AdminUsername:  appValues.String("admin_username"),
		AdminPassword:  appValues.String("admin_password"),
		FarmerUsername: appValues.String("farmer_username"),
		FarmerPassword: appValues.String("farmer_password"),

		SeedOnStart: appValues.Bool("seed_on_start"),

		DoorSimInterval:   appValues.Duration("door_sim_interval", 5*time.Second),
		DoorSimFlipChance: flip,
		DoorSimMaxDrain:   drain,

		ChartCacheTTL: appValues.Duration("chart_cache_ttl", 5*time.Minute),

		TimeoutPing:   appValues.Duration("timeout_ping", timeouts.DefaultPing),
		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutLong:   appValues.Duration("timeout_long", timeouts.DefaultLong),
	}

	return coreCfg, appCfg, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// CoopHub validates the MongoDB URI format, the cookie and CSRF keys,
// the credential pairs, the door simulation parameters and the database
// timeouts. An accepted config installs its timeouts before ConnectDB runs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if err := validateAppConfig(appCfg); err != nil {
		logger.Error("invalid app config", zap.Error(err))
		return err
	}
	timeouts.Configure(timeoutConfig(appCfg))
	logger.Debug("database timeouts configured",
		zap.Duration("ping", appCfg.TimeoutPing),
		zap.Duration("short", appCfg.TimeoutShort),
		zap.Duration("medium", appCfg.TimeoutMedium),
		zap.Duration("long", appCfg.TimeoutLong))
	return nil
}

func timeoutConfig(c AppConfig) timeouts.Config {
	return timeouts.Config{
		Ping:   c.TimeoutPing,
		Short:  c.TimeoutShort,
		Medium: c.TimeoutMedium,
		Long:   c.TimeoutLong,
	}
}

// validateAppConfig checks the fields that need no external helpers.
func validateAppConfig(c AppConfig) error {
	var errs []error

	if c.MongoDatabase == "" {
		errs = append(errs, errors.New("mongo_database is required"))
	}
	if len(c.SessionKey) < 32 {
		errs = append(errs, errors.New("session_key must be at least 32 characters"))
	}
	if len(c.CSRFKey) != 32 {
		errs = append(errs, errors.New("csrf_key must be exactly 32 bytes"))
	}
	if c.SessionMaxAge <= 0 {
		errs = append(errs, errors.New("session_max_age must be positive"))
	}

	for name, v := range map[string]string{
		"admin_username":  c.AdminUsername,
		"admin_password":  c.AdminPassword,
		"farmer_username": c.FarmerUsername,
		"farmer_password": c.FarmerPassword,
	} {
		if v == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}
	if c.AdminUsername != "" && c.AdminUsername == c.FarmerUsername {
		errs = append(errs, errors.New("admin_username and farmer_username must differ"))
	}

	if c.DoorSimInterval <= 0 {
		errs = append(errs, errors.New("door_sim_interval must be positive"))
	}
	if c.DoorSimFlipChance < 0 || c.DoorSimFlipChance > 1 {
		errs = append(errs, errors.New("door_sim_flip_chance must be between 0 and 1"))
	}
	if c.DoorSimMaxDrain < 0 {
		errs = append(errs, errors.New("door_sim_max_drain must not be negative"))
	}
	if c.ChartCacheTTL < 0 {
		errs = append(errs, errors.New("chart_cache_ttl must not be negative"))
	}
	for name, d := range map[string]time.Duration{
		"timeout_ping":   c.TimeoutPing,
		"timeout_short":  c.TimeoutShort,
		"timeout_medium": c.TimeoutMedium,
		"timeout_long":   c.TimeoutLong,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}

	return errors.Join(errs...)
}
