package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/toqaosama/portfolio-backend/errs"
)

// repo holds the list/get/delete behaviour shared by the content tables. R is
// the stored row and M the canonical record handed to callers.
type repo[R any, M any] struct {
	table     Table[R]
	entity    string
	order     Order
	less      func(a, b R) bool
	normalize func(R) M
}

func (r *repo[R, M]) list(ctx context.Context) ([]M, error) {
	rows, err := listWithFallback(ctx, r.table, r.entity, r.order, r.less)
	if err != nil {
		return nil, err
	}
	out := make([]M, len(rows))
	for i, row := range rows {
		out[i] = r.normalize(row)
	}
	return out, nil
}

func (r *repo[R, M]) get(ctx context.Context, id uuid.UUID) (M, error) {
	var zero M
	row, err := r.table.FindByID(ctx, id)
	if err != nil {
		return zero, errs.NewDatabaseError("find", r.entity, err)
	}
	return r.normalize(*row), nil
}

func (r *repo[R, M]) create(ctx context.Context, row R) (M, error) {
	var zero M
	if err := r.table.Create(ctx, &row); err != nil {
		return zero, errs.NewDatabaseError("insert", r.entity, err)
	}
	return r.normalize(row), nil
}

// update writes row over the record with id and returns the stored result.
func (r *repo[R, M]) update(ctx context.Context, id uuid.UUID, row R) (M, error) {
	var zero M
	n, err := r.table.Updates(ctx, id, &row)
	if err != nil {
		return zero, errs.NewDatabaseError("update", r.entity, err)
	}
	if n == 0 {
		return zero, errs.NewNotFound(r.entity)
	}
	return r.get(ctx, id)
}

func (r *repo[R, M]) delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.table.Delete(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("delete", r.entity, err)
	}
	if n == 0 {
		return errs.NewNotFound(r.entity)
	}
	return nil
}
