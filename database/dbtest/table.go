// Package dbtest provides an in-memory database.Table for tests.
package dbtest

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/toqaosama/portfolio-backend/database"
)

// ErrOrderedQuery mimics the store rejecting an ORDER BY on a missing column.
var ErrOrderedQuery = errors.New(`column "created_at" does not exist`)

// Table keeps rows in insertion order. Columns are resolved from the gorm
// column tags of T.
type Table[T any] struct {
	mu   sync.Mutex
	rows []T

	// FailOrdered makes every Find with an order fail.
	FailOrdered error
	// FailAll makes every call fail.
	FailAll error
	// FailCreate makes Create fail.
	FailCreate error

	Calls []string
}

func NewTable[T any](rows ...T) *Table[T] {
	return &Table[T]{rows: append([]T(nil), rows...)}
}

var _ database.Table[struct{}] = (*Table[struct{}])(nil)

// Rows returns a copy of the stored rows.
func (t *Table[T]) Rows() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]T(nil), t.rows...)
}

func (t *Table[T]) record(call string) {
	t.Calls = append(t.Calls, call)
}

func (t *Table[T]) Find(_ context.Context, order *database.Order) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if order == nil {
		t.record("find")
	} else {
		t.record("find " + order.String())
	}
	if t.FailAll != nil {
		return nil, t.FailAll
	}
	if order != nil && t.FailOrdered != nil {
		return nil, t.FailOrdered
	}

	out := append([]T(nil), t.rows...)
	if order != nil {
		sort.SliceStable(out, func(i, j int) bool {
			a, aNull := sortKey(column(&out[i], order.Column))
			b, bNull := sortKey(column(&out[j], order.Column))
			if aNull != bNull {
				// postgres puts nulls first for desc unless asked otherwise
				if order.NullsLast {
					return bNull
				}
				return aNull == order.Desc
			}
			if order.Desc {
				return less(b, a)
			}
			return less(a, b)
		})
	}
	return out, nil
}

func (t *Table[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return t.First(ctx, "id", id)
}

func (t *Table[T]) First(_ context.Context, col string, value any) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("first " + col)
	if t.FailAll != nil {
		return nil, t.FailAll
	}
	for i := range t.rows {
		if v := column(&t.rows[i], col); v.IsValid() && reflect.DeepEqual(v.Interface(), value) {
			row := t.rows[i]
			return &row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (t *Table[T]) Create(_ context.Context, row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("create")
	if t.FailAll != nil {
		return t.FailAll
	}
	if t.FailCreate != nil {
		return t.FailCreate
	}
	t.rows = append(t.rows, *row)
	return nil
}

func (t *Table[T]) Updates(_ context.Context, id uuid.UUID, row *T) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("updates")
	if t.FailAll != nil {
		return 0, t.FailAll
	}
	for i := range t.rows {
		if reflect.DeepEqual(column(&t.rows[i], "id").Interface(), id) {
			dst := reflect.ValueOf(&t.rows[i]).Elem()
			src := reflect.ValueOf(row).Elem()
			for f := 0; f < dst.NumField(); f++ {
				switch columnName(dst.Type().Field(f)) {
				case "id", "created_at":
					continue
				}
				dst.Field(f).Set(src.Field(f))
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (t *Table[T]) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("delete")
	if t.FailAll != nil {
		return 0, t.FailAll
	}
	for i := range t.rows {
		if reflect.DeepEqual(column(&t.rows[i], "id").Interface(), id) {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func columnName(f reflect.StructField) string {
	for _, part := range strings.Split(f.Tag.Get("gorm"), ";") {
		if name, ok := strings.CutPrefix(strings.TrimSpace(part), "column:"); ok {
			return name
		}
	}
	return ""
}

func column[T any](row *T, name string) reflect.Value {
	v := reflect.ValueOf(row).Elem()
	for i := 0; i < v.NumField(); i++ {
		if columnName(v.Type().Field(i)) == name {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}

// sortKey returns a comparable value for v and whether v is null.
func sortKey(v reflect.Value) (any, bool) {
	if !v.IsValid() {
		return nil, true
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, true
		}
		v = v.Elem()
	}
	switch x := v.Interface().(type) {
	case time.Time:
		return x.UnixNano(), false
	case string:
		return x, false
	case bool:
		if x {
			return "1", false
		}
		return "0", false
	}
	return v.String(), false
}

func less(a, b any) bool {
	switch x := a.(type) {
	case int64:
		return x < b.(int64)
	case string:
		return x < b.(string)
	}
	return false
}
