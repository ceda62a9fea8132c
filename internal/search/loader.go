package search

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Querier is the read side of the persistence layer. Both *sqlx.DB and
// *sqlx.Tx satisfy it.
type Querier interface {
	sqlx.QueryerContext
}

// LoadMany fetches the children of every key in a single query and groups
// them by key.
//
// build receives the de-duplicated keys and returns the batched SELECT; key
// extracts the owning key from a scanned row. Every requested key is present
// in the result, mapped to an empty slice when it has no children. No query
// is issued for an empty key set.
func LoadMany[K comparable, R any](
	ctx context.Context,
	q Querier,
	keys []K,
	build func(keys []K) sq.Sqlizer,
	key func(row R) K,
) (map[K][]R, error) {
	grouped := make(map[K][]R, len(keys))
	if len(keys) == 0 {
		return grouped, nil
	}

	unique := make([]K, 0, len(keys))
	for _, k := range keys {
		if _, ok := grouped[k]; ok {
			continue
		}
		grouped[k] = []R{}
		unique = append(unique, k)
	}

	query, args, err := build(unique).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build batch query: %w", err)
	}

	var rows []R
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, &StorageError{Op: "batch load", Err: err}
	}

	for _, row := range rows {
		k := key(row)
		grouped[k] = append(grouped[k], row)
	}

	return grouped, nil
}
