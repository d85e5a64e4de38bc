package store

import (
	"context"
	"database/sql"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// exec runs a built statement and returns its result.
func exec(ctx context.Context, q dialect.ExecQuerier, b entsql.Querier) (sql.Result, error) {
	query, args := b.Query()
	return execRaw(ctx, q, query, args...)
}

func execRaw(ctx context.Context, q dialect.ExecQuerier, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	if err := q.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// queryInt runs a single-column, single-row query.
func queryInt(ctx context.Context, q dialect.ExecQuerier, b entsql.Querier) (int, error) {
	query, args := b.Query()
	var rows entsql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return 0, err
	}
	defer rows.Close()
	return entsql.ScanInt(rows)
}

// count returns the number of rows in table matching p.
func count(ctx context.Context, q dialect.ExecQuerier, table string, p *entsql.Predicate) (int, error) {
	return queryInt(ctx, q, builder.Select(entsql.Count("*")).From(builder.Table(table)).Where(p))
}

