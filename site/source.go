package site

import (
	"context"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/database"
	"github.com/toqaosama/portfolio-backend/models"
)

// Source supplies the dynamic sections of the public page.
type Source interface {
	Projects(ctx context.Context) ([]models.Project, error)
	Skills(ctx context.Context) ([]models.SkillCategory, error)
	Experiences(ctx context.Context) ([]models.Experience, error)
	// Dynamic reports whether reads go to the store. Dynamic sections are
	// rendered as placeholders and fetched as fragments.
	Dynamic() bool
}

// StaticSource serves the built-in fixtures.
type StaticSource struct{}

func (StaticSource) Projects(context.Context) ([]models.Project, error) {
	return Projects(), nil
}

func (StaticSource) Skills(context.Context) ([]models.SkillCategory, error) {
	return Skills(), nil
}

func (StaticSource) Experiences(context.Context) ([]models.Experience, error) {
	return Experiences(), nil
}

func (StaticSource) Dynamic() bool { return false }

// DynamicSource reads through the database repositories.
type DynamicSource struct {
	db database.Database
}

func NewDynamicSource(db database.Database) DynamicSource {
	return DynamicSource{db: db}
}

func (s DynamicSource) Projects(ctx context.Context) ([]models.Project, error) {
	return s.db.ProjectRepo().List(ctx)
}

func (s DynamicSource) Skills(ctx context.Context) ([]models.SkillCategory, error) {
	return s.db.SkillRepo().List(ctx)
}

func (s DynamicSource) Experiences(ctx context.Context) ([]models.Experience, error) {
	return s.db.ExperienceRepo().List(ctx)
}

func (DynamicSource) Dynamic() bool { return true }

// NewSource picks the source for mode. Auto reads from the store when it is
// configured and falls back to the fixtures otherwise.
func NewSource(mode string, db database.Database) Source {
	switch mode {
	case config.ContentStatic:
		return StaticSource{}
	case config.ContentDynamic:
		return NewDynamicSource(db)
	}
	if db.Configured() {
		return NewDynamicSource(db)
	}
	return StaticSource{}
}
