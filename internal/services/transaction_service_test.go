package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
)

var txTestNow = time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

// nilScanRow satisfies pgx.Row and leaves every destination at its zero
// value, which is enough for the lookup queries these tests drive.
type nilScanRow struct{}

func (nilScanRow) Scan(dest ...any) error { return nil }

// poolStub stands in for the pool-side reads before the transaction opens
type poolStub struct{}

func (poolStub) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (poolStub) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nilScanRow{}
}

func (poolStub) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

// txStub acts as both the pool's Begin and the transaction it hands out.
// execTag scripts the outcome of the customer UPDATE inside the transaction.
type txStub struct {
	execTag    string
	committed  bool
	rolledBack bool
}

func (t *txStub) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *txStub) Commit(ctx context.Context) error          { t.committed = true; return nil }
func (t *txStub) Rollback(ctx context.Context) error        { t.rolledBack = true; return nil }

func (t *txStub) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *txStub) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *txStub) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }

func (t *txStub) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *txStub) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(t.execTag), nil
}

func (t *txStub) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *txStub) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nilScanRow{}
}

func (t *txStub) Conn() *pgx.Conn { return nil }

func transactionServiceWith(tx *txStub) *TransactionService {
	return &TransactionService{
		DB:           tx,
		Repo:         &repositories.TransactionRepository{DB: poolStub{}},
		CustomerRepo: &repositories.CustomerRepository{DB: poolStub{}},
		ProductRepo:  &repositories.ProductRepository{DB: poolStub{}},
		Now:          func() time.Time { return txTestNow },
	}
}

func TestRecordTransactionRollsBackOnVersionConflict(t *testing.T) {
	tx := &txStub{execTag: "UPDATE 0"}
	s := transactionServiceWith(tx)

	_, err := s.RecordTransaction(context.Background(), 1, &models.CreateTransactionRequest{
		CustomerID: 1,
		Type:       models.TransactionTypePayment,
		Amount:     100,
	})
	if !errors.Is(err, models.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
	if tx.committed {
		t.Fatal("transaction must not commit after a conflicting customer update")
	}
	if !tx.rolledBack {
		t.Fatal("transaction must roll back so the ledger row is not kept")
	}
}

func TestRecordTransactionCommitsWholeSequence(t *testing.T) {
	tx := &txStub{execTag: "UPDATE 1"}
	s := transactionServiceWith(tx)

	posted, err := s.RecordTransaction(context.Background(), 1, &models.CreateTransactionRequest{
		CustomerID: 1,
		Type:       models.TransactionTypePayment,
		Amount:     100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tx.committed {
		t.Fatal("transaction must commit once every write succeeded")
	}
	if posted.ReceiptNumber == "" {
		t.Fatal("posted transaction missing receipt number")
	}
}
