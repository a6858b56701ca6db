// internal/app/bootstrap/routes.go
package bootstrap

import (
	"errors"
	"net/http"

	dashboardfeature "github.com/dalemusser/coophub/internal/app/features/dashboard"
	doorfeature "github.com/dalemusser/coophub/internal/app/features/door"
	eggsfeature "github.com/dalemusser/coophub/internal/app/features/eggs"
	equipmentfeature "github.com/dalemusser/coophub/internal/app/features/equipment"
	errorsfeature "github.com/dalemusser/coophub/internal/app/features/errors"
	farmersfeature "github.com/dalemusser/coophub/internal/app/features/farmers"
	farmprofilefeature "github.com/dalemusser/coophub/internal/app/features/farmprofile"
	feedwaterfeature "github.com/dalemusser/coophub/internal/app/features/feedwater"
	healthfeature "github.com/dalemusser/coophub/internal/app/features/health"
	homefeature "github.com/dalemusser/coophub/internal/app/features/home"
	loginfeature "github.com/dalemusser/coophub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/coophub/internal/app/features/logout"
	ordersfeature "github.com/dalemusser/coophub/internal/app/features/orders"
	productsfeature "github.com/dalemusser/coophub/internal/app/features/products"
	reportsfeature "github.com/dalemusser/coophub/internal/app/features/reports"
	salesfeature "github.com/dalemusser/coophub/internal/app/features/sales"
	settingsfeature "github.com/dalemusser/coophub/internal/app/features/settings"
	supportfeature "github.com/dalemusser/coophub/internal/app/features/support"
	usersfeature "github.com/dalemusser/coophub/internal/app/features/users"
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/dalemusser/coophub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for CoopHub.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed, so deps.Runtime already holds the seed
// data and the chart renderer.
//
// CoopHub boots the template engine, applies CSRF and session middleware,
// and mounts the public pages, the eight admin screens under /admin and the
// eight farmer screens under /farmer.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	if deps.Runtime == nil || deps.Runtime.Seed == nil || deps.Runtime.Charts == nil {
		return nil, errors.New("build handler: startup did not complete")
	}
	db := deps.CoopHubMongoDatabase
	data := deps.Runtime.Seed
	renderer := deps.Runtime.Charts

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	creds, err := auth.NewCredentials(
		auth.CredentialPair{Username: appCfg.AdminUsername, Password: appCfg.AdminPassword, Identity: auth.AdminIdentity},
		auth.CredentialPair{Username: appCfg.FarmerUsername, Password: appCfg.FarmerPassword, Identity: auth.FarmerIdentity},
	)
	if err != nil {
		logger.Error("credential setup failed", zap.Error(err))
		return nil, err
	}
	limiter := ratelimit.NewLoginLimiter()
	deps.Runtime.Limiter = limiter

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Plain HTTP in dev must be flagged before the CSRF origin checks run.
	if !secure {
		r.Use(markPlaintext)
	}
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := "unknown"
			if err := csrf.FailureReason(r); err != nil {
				reason = err.Error()
			}
			errLog.LogForbidden(w, r, "csrf check failed: "+reason, "Your form expired. Reload the page and try again.")
		})),
	))

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CoopHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Root redirects to the role's landing page or to /login.
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, creds, limiter, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Landing pages
	dashboardHandler := dashboardfeature.NewHandler(db, data, renderer, errLog, logger)
	r.Mount("/admin/system-overview", dashboardfeature.AdminRoutes(dashboardHandler, sessionMgr))
	r.Mount("/farmer/farm-overview", dashboardfeature.FarmerRoutes(dashboardHandler, sessionMgr))

	// Admin screens
	farmersHandler := farmersfeature.NewHandler(db, data, renderer, errLog, logger)
	r.Mount("/admin/farmer-management", farmersfeature.Routes(farmersHandler, sessionMgr))

	equipmentHandler := equipmentfeature.NewHandler(db, data, renderer, errLog, logger)
	r.Mount("/admin/equipment-monitoring", equipmentfeature.Routes(equipmentHandler, sessionMgr))

	salesHandler := salesfeature.NewHandler(db, data, renderer, logger)
	r.Mount("/admin/sales-analytics", salesfeature.Routes(salesHandler, sessionMgr))

	supportHandler := supportfeature.NewHandler(db, data, errLog, logger)
	r.Mount("/admin/customer-support", supportfeature.Routes(supportHandler, sessionMgr))

	reportsHandler := reportsfeature.NewHandler(db, data, renderer, errLog, logger)
	r.Mount("/admin/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

	usersHandler := usersfeature.NewHandler(db, errLog, logger)
	r.Mount("/admin/user-management", usersfeature.Routes(usersHandler, sessionMgr))

	settingsHandler := settingsfeature.NewHandler(db, errLog, logger)
	r.Mount("/admin/system-settings", settingsfeature.AdminRoutes(settingsHandler, sessionMgr))
	r.Mount("/farmer/settings", settingsfeature.FarmerRoutes(settingsHandler, sessionMgr))

	// Farmer screens
	doorHandler := doorfeature.NewHandler(db, errLog, logger)
	r.Mount("/farmer/door-automation", doorfeature.Routes(doorHandler, sessionMgr))

	feedWaterHandler := feedwaterfeature.NewHandler(db, data, renderer, errLog, logger)
	r.Mount("/farmer/feed-water", feedwaterfeature.Routes(feedWaterHandler, sessionMgr))

	eggsHandler := eggsfeature.NewHandler(db, data, renderer, logger)
	r.Mount("/farmer/egg-production", eggsfeature.Routes(eggsHandler, sessionMgr))

	ordersHandler := ordersfeature.NewHandler(db, errLog, logger)
	r.Mount("/farmer/customer-orders", ordersfeature.Routes(ordersHandler, sessionMgr))

	productsHandler := productsfeature.NewHandler(db, errLog, logger)
	r.Mount("/farmer/my-products", productsfeature.Routes(productsHandler, sessionMgr))

	farmProfileHandler := farmprofilefeature.NewHandler(db, data, errLog, logger)
	r.Mount("/farmer/farm-profile", farmprofilefeature.Routes(farmProfileHandler, sessionMgr))

	return r, nil
}

// markPlaintext tells the CSRF middleware the request arrived over plain HTTP.
func markPlaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
