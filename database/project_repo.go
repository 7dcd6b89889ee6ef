package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/toqaosama/portfolio-backend/models"
)

type ProjectRepo struct {
	repo[models.ProjectRow, models.Project]
	now func() time.Time
}

func NewProjectRepo(table Table[models.ProjectRow]) *ProjectRepo {
	return &ProjectRepo{
		repo: repo[models.ProjectRow, models.Project]{
			table:  table,
			entity: "project",
			order:  Order{Column: "created_at", Desc: true, NullsLast: true},
			less: func(a, b models.ProjectRow) bool {
				return newestFirst(a.CreatedAt, b.CreatedAt)
			},
			normalize: models.ProjectRow.Normalize,
		},
		now: time.Now,
	}
}

// List returns all projects, newest first.
func (r *ProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	return r.list(ctx)
}

func (r *ProjectRepo) Get(ctx context.Context, id uuid.UUID) (models.Project, error) {
	return r.get(ctx, id)
}

func (r *ProjectRepo) Insert(ctx context.Context, project models.Project) (models.Project, error) {
	row := project.Row()
	row.ID = uuid.New()
	createdAt := r.now().UTC()
	row.CreatedAt = &createdAt
	return r.create(ctx, row)
}

func (r *ProjectRepo) Update(ctx context.Context, id uuid.UUID, project models.Project) (models.Project, error) {
	row := project.Row()
	row.ID = id
	return r.update(ctx, id, row)
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, id)
}

// AppendImages adds urls to the end of the project's images, in order.
func (r *ProjectRepo) AppendImages(ctx context.Context, id uuid.UUID, urls []string) (models.Project, error) {
	project, err := r.get(ctx, id)
	if err != nil {
		return models.Project{}, err
	}
	if len(urls) == 0 {
		return project, nil
	}
	project.Images = append(project.Images, urls...)
	return r.Update(ctx, id, project)
}
