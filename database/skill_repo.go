package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/toqaosama/portfolio-backend/models"
	"github.com/toqaosama/portfolio-backend/normalize"
)

type SkillRepo struct {
	repo[models.SkillRow, models.SkillCategory]
}

func NewSkillRepo(table Table[models.SkillRow]) *SkillRepo {
	return &SkillRepo{repo[models.SkillRow, models.SkillCategory]{
		table:  table,
		entity: "skill",
		order:  Order{Column: "title"},
		less: func(a, b models.SkillRow) bool {
			return normalize.ToText(a.Title) < normalize.ToText(b.Title)
		},
		normalize: models.SkillRow.Normalize,
	}}
}

// List returns all skill categories sorted by title.
func (r *SkillRepo) List(ctx context.Context) ([]models.SkillCategory, error) {
	return r.list(ctx)
}

func (r *SkillRepo) Get(ctx context.Context, id uuid.UUID) (models.SkillCategory, error) {
	return r.get(ctx, id)
}

func (r *SkillRepo) Insert(ctx context.Context, skill models.SkillCategory) (models.SkillCategory, error) {
	row := skill.Row()
	row.ID = uuid.New()
	return r.create(ctx, row)
}

func (r *SkillRepo) Update(ctx context.Context, id uuid.UUID, skill models.SkillCategory) (models.SkillCategory, error) {
	row := skill.Row()
	row.ID = id
	return r.update(ctx, id, row)
}

func (r *SkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}
