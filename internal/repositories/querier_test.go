package repositories

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIstDateShiftsZoneBeforeCasting(t *testing.T) {
	got := istDate("due_date")
	want := "(due_date AT TIME ZONE 'Asia/Kolkata')::date"
	if got != want {
		t.Fatalf("istDate = %q, want %q", got, want)
	}
}

// A bare ::date cast uses the session timezone, so comparing it against an
// IST-shifted NOW() misfiles everything between 00:00 and 05:30 IST. Both
// sides of a day comparison must go through the same shift.
func TestIstDayComparisonUsesSameZoneOnBothSides(t *testing.T) {
	predicate := istDate("created_at") + " = " + istDate("NOW()")

	if strings.Count(predicate, "AT TIME ZONE 'Asia/Kolkata'") != 2 {
		t.Fatalf("both sides must shift to IST: %s", predicate)
	}
	if strings.Contains(predicate, "created_at::date") {
		t.Fatalf("session-zone cast left in predicate: %s", predicate)
	}
}

func TestIstMonthShiftsZone(t *testing.T) {
	got := istMonth("created_at")
	want := "date_trunc('month', created_at AT TIME ZONE 'Asia/Kolkata')"
	if got != want {
		t.Fatalf("istMonth = %q, want %q", got, want)
	}
}

type stubQuerier struct{}

func (stubQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (stubQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func TestWithTxBindsCopyNotOriginal(t *testing.T) {
	q := stubQuerier{}

	base := &TransactionRepository{}
	bound := base.WithTx(q)
	if bound.DB != Querier(q) {
		t.Fatal("bound transaction repo not using the given querier")
	}
	if base.DB != nil {
		t.Fatal("WithTx must not rebind the original repo")
	}

	custBase := &CustomerRepository{}
	if custBase.WithTx(q).DB != Querier(q) {
		t.Fatal("bound customer repo not using the given querier")
	}

	prodBase := &ProductRepository{}
	if prodBase.WithTx(q).DB != Querier(q) {
		t.Fatal("bound product repo not using the given querier")
	}
}
