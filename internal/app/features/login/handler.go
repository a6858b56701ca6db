// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/coophub/internal/app/features/errors"
	"github.com/dalemusser/coophub/internal/app/system/auth"
	"github.com/dalemusser/coophub/internal/app/system/navigation"
	"github.com/dalemusser/coophub/internal/app/system/ratelimit"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// invalidCredentials is the only message shown for a rejected pair.
const invalidCredentials = "Invalid credentials"

type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Creds      *auth.Credentials
	Limiter    *ratelimit.LoginLimiter
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Username  string
	ReturnURL string
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	creds *auth.Credentials,
	limiter *ratelimit.LoginLimiter,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Creds:      creds,
		Limiter:    limiter,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeLogin shows the sign-in form. Signed-in users go straight to their landing page.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, navigation.Landing(u.Role), http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "Login", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleLoginPost verifies the submitted pair, writes the session blob, and
// redirects to the return URL when it lies inside the role's route set.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	// Usernames are matched exactly, surrounding whitespace included.
	username := r.FormValue("username")
	password := r.FormValue("password")

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, username); !ok {
			h.Log.Warn("login rate limited",
				zap.String("username", username),
				zap.String("ip", ratelimit.ClientIP(r)))
			w.WriteHeader(http.StatusTooManyRequests)
			h.renderFormWithError(w, r, reason, username)
			return
		}
	}

	id, ok := h.Creds.Verify(username, password)
	if !ok {
		h.Log.Info("login failed", zap.String("username", username))
		h.renderFormWithError(w, r, invalidCredentials, username)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, id); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("username", username))
		h.renderFormWithError(w, r, "Unable to create session. Please try again.", username)
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetUser(username)
	}

	h.Log.Info("login succeeded", zap.String("role", id.Role), zap.String("name", id.Name))
	http.Redirect(w, r, navigation.ReturnURL(r, id.Role), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| helper: render the form with an error                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, username string) {
	// From POST, "return" will be in the form; from GET, we might rely on the query.
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "Login", "/"),
		Error:     msg,
		Username:  username,
		ReturnURL: ret,
	})
}
