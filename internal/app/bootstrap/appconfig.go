// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP ports,
// TLS, logging level and request limits. AppConfig carries everything
// specific to CoopHub: the Mongo connection, the session cookie, the two
// sign-in credential pairs, seeding, and the door simulation.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: coophub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// CSRF protection
	CSRFKey string // 32-byte gorilla/csrf authentication key

	// Sign-in credential pairs, one per role
	AdminUsername  string
	AdminPassword  string
	FarmerUsername string
	FarmerPassword string

	// Mock data
	SeedOnStart bool // reset and reseed every collection at startup

	// Door simulation
	DoorSimInterval   time.Duration
	DoorSimFlipChance float64
	DoorSimMaxDrain   float64

	// Charts
	ChartCacheTTL time.Duration

	// Database deadlines, installed into the timeouts package at startup
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
