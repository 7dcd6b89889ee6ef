package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/toqaosama/portfolio-backend/models"
	"github.com/toqaosama/portfolio-backend/normalize"
)

type ExperienceRepo struct {
	repo[models.ExperienceRow, models.Experience]
}

func NewExperienceRepo(table Table[models.ExperienceRow]) *ExperienceRepo {
	return &ExperienceRepo{repo[models.ExperienceRow, models.Experience]{
		table:  table,
		entity: "experience",
		// period is free text ("2023 - Present"), so this is a text sort
		order: Order{Column: "period", Desc: true},
		less: func(a, b models.ExperienceRow) bool {
			return normalize.ToText(a.Period) > normalize.ToText(b.Period)
		},
		normalize: models.ExperienceRow.Normalize,
	}}
}

func (r *ExperienceRepo) List(ctx context.Context) ([]models.Experience, error) {
	return r.list(ctx)
}

func (r *ExperienceRepo) Get(ctx context.Context, id uuid.UUID) (models.Experience, error) {
	return r.get(ctx, id)
}

func (r *ExperienceRepo) Insert(ctx context.Context, experience models.Experience) (models.Experience, error) {
	row := experience.Row()
	row.ID = uuid.New()
	return r.create(ctx, row)
}

func (r *ExperienceRepo) Update(ctx context.Context, id uuid.UUID, experience models.Experience) (models.Experience, error) {
	row := experience.Row()
	row.ID = id
	return r.update(ctx, id, row)
}

func (r *ExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}
