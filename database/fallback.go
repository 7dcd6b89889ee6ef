package database

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/metrics"
)

// listWithFallback asks the store for rows sorted by order. When that fails
// (typically because the sort column is missing) it retries once without
// ordering and sorts the rows itself with less, which must describe the same
// order. Only the fallback's error is returned.
func listWithFallback[T any](ctx context.Context, table Table[T], entity string, order Order, less func(a, b T) bool) ([]T, error) {
	rows, err := table.Find(ctx, &order)
	if err == nil {
		return rows, nil
	}
	if errs.IsConfigError(err) {
		return nil, err
	}

	log.Warn().
		Err(err).
		Str("entity", entity).
		Str("order", order.String()).
		Msg("ordered list failed, retrying without ordering")

	rows, err = table.Find(ctx, nil)
	if err != nil {
		metrics.ListFallbacks.WithLabelValues(entity, "error").Inc()
		return nil, errs.NewDatabaseError("list", entity, err)
	}
	metrics.ListFallbacks.WithLabelValues(entity, "ok").Inc()

	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i], rows[j])
	})
	return rows, nil
}

// newestFirst orders timestamps descending; a missing timestamp counts as
// the epoch and therefore sorts last.
func newestFirst(a, b *time.Time) bool {
	return epoch(a).After(epoch(b))
}

func epoch(t *time.Time) time.Time {
	if t == nil {
		return time.Unix(0, 0)
	}
	return *t
}
