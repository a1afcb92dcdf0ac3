package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// Query runs a parameterised SurrealQL statement and decodes the rows of its
// first result set into T.
//
//	users, err := Query[domain.User](ctx, db, "SELECT * FROM user ORDER BY email", nil)
func Query[T any](ctx context.Context, db *surrealdb.DB, query string, params map[string]any) ([]T, error) {
	res, err := surrealdb.Query[[]T](ctx, db, query, params)
	if err != nil {
		return nil, queryError(err, query)
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}
	return (*res)[0].Result, nil
}

// QueryOne is Query for statements expected to yield at most one row. It
// returns nil, nil when there is none.
func QueryOne[T any](ctx context.Context, db *surrealdb.DB, query string, params map[string]any) (*T, error) {
	rows, err := Query[T](ctx, db, limitOne(query), params)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// Execute runs a statement whose result is not needed, such as a schema
// definition.
func Execute(ctx context.Context, db *surrealdb.DB, query string, params map[string]any) error {
	if _, err := surrealdb.Query[any](ctx, db, query, params); err != nil {
		return queryError(err, query)
	}
	return nil
}

func queryError(err error, query string) error {
	return NewDBError(fmt.Errorf("%w: %w", ErrQueryFailed, err), "surreal query").WithQuery(query)
}

// limitOne appends LIMIT 1 to SELECT statements that have no LIMIT.
// CREATE and UPDATE do not accept one.
func limitOne(query string) string {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") && !hasLimitClause(query) {
		return query + " LIMIT 1"
	}
	return query
}

func hasLimitClause(query string) bool {
	return strings.Contains(" "+strings.ToUpper(query)+" ", " LIMIT ")
}
