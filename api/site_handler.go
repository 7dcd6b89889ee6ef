package api

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/database"
	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/site"
)

type siteHandler struct {
	responder Responder
	logger    zerolog.Logger
	site      *site.Site
	db        database.Database
	auth      config.AuthSettings
}

func newSiteHandler(s *site.Site, db database.Database, auth config.AuthSettings) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		responder: NewResponder(logger),
		logger:    logger,
		site:      s,
		db:        db,
		auth:      auth,
	}
}

func (h siteHandler) getPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteHTML(w, http.StatusOK, func(w io.Writer) error {
			return h.site.RenderPage(r.Context(), w)
		})
	}
}

// getSection renders one dynamic section as an htmx fragment.
func (h siteHandler) getSection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "section")
		h.responder.WriteHTML(w, http.StatusOK, func(w io.Writer) error {
			return h.site.RenderSection(r.Context(), w, name)
		})
	}
}

func (h siteHandler) getLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxGetUser(r.Context()); ok {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		h.responder.WriteHTML(w, http.StatusOK, func(w io.Writer) error {
			return h.site.RenderLogin(w, site.LoginData{AllowSignup: h.auth.AllowSignup})
		})
	}
}

// getDashboard renders the admin page. Visitors without a session are sent
// back to the public page.
func (h siteHandler) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		data := h.dashboardData(r.Context())
		data.User = *user
		h.responder.WriteHTML(w, http.StatusOK, func(w io.Writer) error {
			return h.site.RenderDashboard(w, data)
		})
	}
}

// dashboardData loads every table. A failing table leaves its list empty and
// adds its message to the banner.
func (h siteHandler) dashboardData(ctx context.Context) site.DashboardData {
	var data site.DashboardData
	var problems []string
	note := func(table string, err error) {
		h.logger.Error().Err(err).Str("table", table).Msg("Failed to load dashboard table")
		problems = append(problems, table+": "+errs.StoreMessage(err))
	}

	var err error
	if data.Projects, err = h.db.ProjectRepo().List(ctx); err != nil {
		note("projects", err)
	}
	if data.Skills, err = h.db.SkillRepo().List(ctx); err != nil {
		note("skills", err)
	}
	if data.Experiences, err = h.db.ExperienceRepo().List(ctx); err != nil {
		note("experiences", err)
	}
	if data.Contacts, err = h.db.ContactMessageRepo().List(ctx); err != nil {
		note("contact messages", err)
	}
	data.Error = strings.Join(problems, "; ")
	return data
}
