package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool and pgx.Tx the repositories use.
// Repositories normally run on the pool; WithTx rebinds one to an open
// transaction so a service can make a multi-row write atomic.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// istDate renders the IST calendar day of a timestamp expression. Both sides
// of a day comparison must shift zones the same way, otherwise timestamps
// between 00:00 and 05:30 IST land on the wrong day.
func istDate(expr string) string {
	return fmt.Sprintf("(%s AT TIME ZONE 'Asia/Kolkata')::date", expr)
}

// istMonth renders the IST calendar month of a timestamp expression
func istMonth(expr string) string {
	return fmt.Sprintf("date_trunc('month', %s AT TIME ZONE 'Asia/Kolkata')", expr)
}
