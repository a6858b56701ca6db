// internal/app/features/farmprofile/profile.go
package farmprofile

import (
	"context"
	"html/template"
	"net/http"

	farmprofilestore "github.com/dalemusser/coophub/internal/app/store/farmprofile"
	settingsstore "github.com/dalemusser/coophub/internal/app/store/settings"
	"github.com/dalemusser/coophub/internal/app/system/authz"
	"github.com/dalemusser/coophub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// storyView is a story ready for display.
type storyView struct {
	Date string
	Body template.HTML
}

type pageData struct {
	viewdata.BaseVM

	Profile        models.FarmerProfile
	Updates        []models.ProductionUpdate
	Stories        []storyView
	Certifications []string

	UpdateCount string
	UpdateNotes string
	StoryDraft  string
}

func storyViews(stories []models.FarmStory) []storyView {
	out := make([]storyView, 0, len(stories))
	for _, s := range stories {
		body := htmlsanitize.SanitizeToHTML(s.Content)
		if htmlsanitize.IsPlainText(s.Content) {
			body = htmlsanitize.PlainTextToHTML(s.Content)
		}
		out = append(out, storyView{Date: s.Date, Body: body})
	}
	return out
}

// ServeProfile renders the farm profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	farm, ok := authz.FarmScope(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "farm profile without farm scope", "Your account is not linked to a farm.")
		return
	}
	data, err := h.pageData(r, farm)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load farm profile failed", err, "A database error occurred.", "/farmer/farm-overview")
		return
	}
	data.WithSuccess(r)
	templates.Render(w, r, "farmer_farm_profile", data)
}

func (h *Handler) pageData(r *http.Request, farm string) (pageData, error) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	settings, err := settingsstore.New(h.DB).GetFarmer(ctx, farm)
	if err != nil {
		return pageData{}, err
	}
	store := farmprofilestore.New(h.DB)
	updates, err := store.ListUpdates(ctx, farm)
	if err != nil {
		return pageData{}, err
	}
	stories, err := store.ListStories(ctx, farm)
	if err != nil {
		return pageData{}, err
	}

	return pageData{
		BaseVM:         viewdata.NewBaseVM(r, h.DB, "Farm Profile", "/farmer/farm-overview"),
		Profile:        settings.Profile,
		Updates:        updates,
		Stories:        storyViews(stories),
		Certifications: h.Seed.Farmer.Certifications,
	}, nil
}
