package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a single column sort applied by the store.
type Order struct {
	Column    string
	Desc      bool
	NullsLast bool
}

func (o Order) String() string {
	s := o.Column + " asc"
	if o.Desc {
		s = o.Column + " desc"
	}
	if o.NullsLast {
		s += " nulls last"
	}
	return s
}

// Table is the store boundary for one table of rows of type T.
type Table[T any] interface {
	// Find returns every row, sorted by order when order is non-nil.
	Find(ctx context.Context, order *Order) ([]T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	// First returns the first row whose column equals value.
	First(ctx context.Context, column string, value any) (*T, error)
	Create(ctx context.Context, row *T) error
	// Updates replaces every column except id and created_at on the row
	// matching id and returns the number of rows changed.
	Updates(ctx context.Context, id uuid.UUID, row *T) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type GormTable[T any] struct {
	db *gorm.DB
}

func NewGormTable[T any](db *gorm.DB) *GormTable[T] {
	return &GormTable[T]{db: db}
}

func (t *GormTable[T]) Find(ctx context.Context, order *Order) ([]T, error) {
	q := t.db.WithContext(ctx)
	if order != nil {
		q = q.Order(order.String())
	}
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *GormTable[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return t.First(ctx, "id", id)
}

func (t *GormTable[T]) First(ctx context.Context, column string, value any) (*T, error) {
	var row T
	err := t.db.WithContext(ctx).Where(quoteColumn(column)+" = ?", value).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *GormTable[T]) Create(ctx context.Context, row *T) error {
	return t.db.WithContext(ctx).Create(row).Error
}

func (t *GormTable[T]) Updates(ctx context.Context, id uuid.UUID, row *T) (int64, error) {
	res := t.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	return res.RowsAffected, res.Error
}

func (t *GormTable[T]) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	return res.RowsAffected, res.Error
}

// quoteColumn only lets through plain identifiers.
func quoteColumn(column string) string {
	for _, r := range column {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return `"invalid"`
		}
	}
	return `"` + column + `"`
}

// unconfiguredTable fails every call with the configuration error without
// touching the network.
type unconfiguredTable[T any] struct {
	err error
}

func (t unconfiguredTable[T]) Find(context.Context, *Order) ([]T, error) {
	return nil, t.err
}

func (t unconfiguredTable[T]) FindByID(context.Context, uuid.UUID) (*T, error) {
	return nil, t.err
}

func (t unconfiguredTable[T]) First(context.Context, string, any) (*T, error) {
	return nil, t.err
}

func (t unconfiguredTable[T]) Create(context.Context, *T) error {
	return t.err
}

func (t unconfiguredTable[T]) Updates(context.Context, uuid.UUID, *T) (int64, error) {
	return 0, t.err
}

func (t unconfiguredTable[T]) Delete(context.Context, uuid.UUID) (int64, error) {
	return 0, t.err
}
