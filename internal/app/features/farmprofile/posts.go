// internal/app/features/farmprofile/posts.go
package farmprofile

import (
	"context"
	"errors"
	"net/http"
	"strings"

	farmprofilestore "github.com/dalemusser/coophub/internal/app/store/farmprofile"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/inputval"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

func (h *Handler) farm(w http.ResponseWriter, r *http.Request) (string, bool) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "farm profile post without farm scope", "Your account is not linked to a farm.")
		return "", false
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", basePath)
		return "", false
	}
	return farm, true
}

// reject re-renders the profile with msg, keeping what the farmer typed.
func (h *Handler) reject(w http.ResponseWriter, r *http.Request, farm, msg string) {
	data, err := h.pageData(r, farm)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load farm profile failed", err, "A database error occurred.", basePath)
		return
	}
	data.UpdateCount = r.FormValue("count")
	data.UpdateNotes = r.FormValue("notes")
	data.StoryDraft = r.FormValue("content")
	data.Error = msg
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "farmer_farm_profile", data)
}

// HandleAddUpdate posts today's egg count.
func (h *Handler) HandleAddUpdate(w http.ResponseWriter, r *http.Request) {
	farm, ok := h.farm(w, r)
	if !ok {
		return
	}
	count, _ := inputval.ParseCount(r.FormValue("count"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := farmprofilestore.New(h.DB).AddUpdate(ctx, farm, count, strings.TrimSpace(r.FormValue("notes")))
	if errors.Is(err, farmprofilestore.ErrInvalidCount) {
		h.reject(w, r, farm, "Enter the number of eggs collected.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "add production update failed", err, "A database error occurred.", basePath)
		return
	}

	h.Log.Info("production update posted", zap.String("farm", farm), zap.Int("count", u.Count))
	http.Redirect(w, r, basePath+"?success=added", http.StatusSeeOther)
}

// HandleAddStory posts a farm story.
func (h *Handler) HandleAddStory(w http.ResponseWriter, r *http.Request) {
	farm, ok := h.farm(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := farmprofilestore.New(h.DB).AddStory(ctx, farm, r.FormValue("content"))
	if errors.Is(err, farmprofilestore.ErrEmptyStory) {
		h.reject(w, r, farm, "Write something before posting.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "add farm story failed", err, "A database error occurred.", basePath)
		return
	}

	h.Log.Info("farm story posted", zap.String("farm", farm), zap.String("story_id", st.ID.Hex()))
	http.Redirect(w, r, basePath+"?success=added", http.StatusSeeOther)
}
