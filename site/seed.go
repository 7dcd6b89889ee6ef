package site

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/database"
)

// Seed copies the built-in fixtures into every content table that is still
// empty. Tables with rows are left alone.
func Seed(ctx context.Context, db database.Database) error {
	projects, err := db.ProjectRepo().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	if len(projects) == 0 {
		// Inserted oldest first so the newest-first listing matches the
		// fixture order.
		fixtures := Projects()
		for i := len(fixtures) - 1; i >= 0; i-- {
			if _, err := db.ProjectRepo().Insert(ctx, fixtures[i]); err != nil {
				return fmt.Errorf("failed to seed project %q: %w", fixtures[i].Title, err)
			}
		}
		log.Info().Int("count", len(fixtures)).Msg("Seeded projects")
	}

	skills, err := db.SkillRepo().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list skills: %w", err)
	}
	if len(skills) == 0 {
		for _, s := range Skills() {
			if _, err := db.SkillRepo().Insert(ctx, s); err != nil {
				return fmt.Errorf("failed to seed skill %q: %w", s.Title, err)
			}
		}
		log.Info().Int("count", len(Skills())).Msg("Seeded skills")
	}

	experiences, err := db.ExperienceRepo().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list experiences: %w", err)
	}
	if len(experiences) == 0 {
		for _, e := range Experiences() {
			if _, err := db.ExperienceRepo().Insert(ctx, e); err != nil {
				return fmt.Errorf("failed to seed experience %q: %w", e.Title, err)
			}
		}
		log.Info().Int("count", len(Experiences())).Msg("Seeded experiences")
	}
	return nil
}
