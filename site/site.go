// Package site renders the public portfolio page, its section fragments, and
// the dashboard pages.
package site

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/models"
	"github.com/toqaosama/portfolio-backend/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// Section names, as used in /sections/{name}.
const (
	SectionProjects   = "projects"
	SectionSkills     = "skills"
	SectionExperience = "experience"
)

var funcs = template.FuncMap{
	"title": func(s string) string {
		r := []rune(s)
		if len(r) == 0 {
			return s
		}
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	},
}

type PageData struct {
	Profile        Profile
	Certifications []Certification
	Projects       Section[models.Project]
	Skills         Section[models.SkillCategory]
	Experience     Section[models.Experience]
}

type LoginData struct {
	AllowSignup bool
	Error       string
}

type DashboardData struct {
	User        services.User
	Projects    []models.Project
	Skills      []models.SkillCategory
	Experiences []models.Experience
	Contacts    []models.ContactMessage
	Error       string
}

type Site struct {
	source    Source
	pageSize  int
	profile   Profile
	templates *template.Template
	logger    zerolog.Logger
}

func New(source Source, pageSize int) (*Site, error) {
	tmpl, err := template.New("site").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Site{
		source:    source,
		pageSize:  pageSize,
		profile:   DefaultProfile(),
		templates: tmpl,
		logger:    log.With().Str("component", "site").Logger(),
	}, nil
}

func (s *Site) Dynamic() bool {
	return s.source.Dynamic()
}

func (s *Site) ProjectsSection(ctx context.Context) Section[models.Project] {
	items, err := s.source.Projects(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load projects section")
		return Failed[models.Project](SectionProjects, err)
	}
	return Ready(SectionProjects, items, func(p models.Project) string { return p.Category }, s.pageSize)
}

func (s *Site) SkillsSection(ctx context.Context) Section[models.SkillCategory] {
	items, err := s.source.Skills(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load skills section")
		return Failed[models.SkillCategory](SectionSkills, err)
	}
	return Ready(SectionSkills, items, skillGroup, s.pageSize)
}

func skillGroup(c models.SkillCategory) string {
	if g := strings.TrimSpace(c.Category); g != "" {
		return g
	}
	return "Other"
}

func (s *Site) ExperienceSection(ctx context.Context) Section[models.Experience] {
	items, err := s.source.Experiences(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load experience section")
		return Failed[models.Experience](SectionExperience, err)
	}
	return Ready(SectionExperience, items, nil, s.pageSize)
}

// Page builds the full page. With a dynamic source the store-backed sections
// start as loading placeholders and are fetched as fragments.
func (s *Site) Page(ctx context.Context) PageData {
	data := PageData{
		Profile:        s.profile,
		Certifications: Certifications(),
	}
	if s.source.Dynamic() {
		data.Projects = Loading[models.Project](SectionProjects)
		data.Skills = Loading[models.SkillCategory](SectionSkills)
		data.Experience = Loading[models.Experience](SectionExperience)
		return data
	}
	data.Projects = s.ProjectsSection(ctx)
	data.Skills = s.SkillsSection(ctx)
	data.Experience = s.ExperienceSection(ctx)
	return data
}

func (s *Site) RenderPage(ctx context.Context, w io.Writer) error {
	return s.templates.ExecuteTemplate(w, "page", s.Page(ctx))
}

// RenderSection writes the fragment for one dynamic section. A failed load is
// rendered inline; only an unknown name is an error.
func (s *Site) RenderSection(ctx context.Context, w io.Writer, name string) error {
	switch name {
	case SectionProjects:
		return s.templates.ExecuteTemplate(w, name, s.ProjectsSection(ctx))
	case SectionSkills:
		return s.templates.ExecuteTemplate(w, name, s.SkillsSection(ctx))
	case SectionExperience:
		return s.templates.ExecuteTemplate(w, name, s.ExperienceSection(ctx))
	}
	return errs.NewNotFound("section " + name)
}

func (s *Site) RenderContactOutcome(w io.Writer, outcome services.ContactOutcome) error {
	return s.templates.ExecuteTemplate(w, "contact-result", outcome)
}

func (s *Site) RenderLogin(w io.Writer, data LoginData) error {
	return s.templates.ExecuteTemplate(w, "login", data)
}

func (s *Site) RenderDashboard(w io.Writer, data DashboardData) error {
	return s.templates.ExecuteTemplate(w, "dashboard", data)
}

//go:embed static
var staticFS embed.FS

// Assets serves the stylesheet and the placeholder image at the site root.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
