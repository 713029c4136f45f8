package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/San7122/shopsmart-pro-sub001/internal/cache"
	"github.com/San7122/shopsmart-pro-sub001/internal/metrics"
	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
)

// duplicateWindow guards against double-submitted entries
const duplicateWindow = 10 * time.Second

var ErrDuplicateTransaction = errors.New("an identical transaction was posted seconds ago")

// txBeginner is the slice of *pgxpool.Pool the service needs to make the
// posting sequence atomic
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type TransactionService struct {
	DB           txBeginner
	Repo         *repositories.TransactionRepository
	CustomerRepo *repositories.CustomerRepository
	ProductRepo  *repositories.ProductRepository
	Now          func() time.Time
}

func NewTransactionService(db *pgxpool.Pool, repo *repositories.TransactionRepository, customerRepo *repositories.CustomerRepository, productRepo *repositories.ProductRepository, now func() time.Time) *TransactionService {
	return &TransactionService{DB: db, Repo: repo, CustomerRepo: customerRepo, ProductRepo: productRepo, Now: now}
}

// RecordTransaction posts a ledger entry: adjusts the customer balance,
// updates their stats, decrements stock for sale items and writes the
// transaction with its receipt number.
func (s *TransactionService) RecordTransaction(ctx context.Context, userID int, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if !models.ValidTransactionType(req.Type) {
		return nil, errors.New("invalid transaction type")
	}
	if req.Amount <= 0 {
		return nil, models.ErrNonPositiveAmount
	}
	if req.Type == models.TransactionTypePayment && req.PaymentMethod != "" && !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, errors.New("invalid payment method")
	}

	customer, err := s.CustomerRepo.Get(ctx, userID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	dup, err := s.Repo.HasRecentDuplicate(ctx, userID, customer.ID, req.Type, req.Amount, duplicateWindow)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateTransaction
	}

	// Sale items must be in stock before anything is written
	var products []*models.Product
	if req.Type == models.TransactionTypeSale {
		for _, item := range req.Items {
			p, err := s.ProductRepo.Get(ctx, userID, item.ProductID)
			if err != nil {
				return nil, err
			}
			if p.CurrentStock < item.Quantity {
				return nil, models.ErrInsufficientStock
			}
			products = append(products, p)
		}
	}

	switch req.Type {
	case models.TransactionTypeCredit:
		customer.CurrentBalance += req.Amount
		if err := customer.UpdateStats(models.StatKindCredit, req.Amount); err != nil {
			return nil, err
		}
	case models.TransactionTypeSale:
		// Cash sale: counts toward purchase stats, balance untouched
		if err := customer.UpdateStats(models.StatKindCredit, req.Amount); err != nil {
			return nil, err
		}
	case models.TransactionTypePayment:
		customer.CurrentBalance -= req.Amount
		if err := customer.UpdateStats(models.StatKindPayment, req.Amount); err != nil {
			return nil, err
		}
	}

	tx := &models.Transaction{
		UserID:        userID,
		CustomerID:    customer.ID,
		Type:          req.Type,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Items:         req.Items,
		BalanceAfter:  customer.CurrentBalance,
		Notes:         req.Notes,
	}

	// Every write in the posting sequence commits atomically
	dbTx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx)

	if err := s.Repo.WithTx(dbTx).Create(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.CustomerRepo.WithTx(dbTx).Update(ctx, customer); err != nil {
		return nil, err
	}

	if req.Type == models.TransactionTypeSale {
		now := s.Now()
		productRepo := s.ProductRepo.WithTx(dbTx)
		for i, item := range req.Items {
			p := products[i]
			if err := p.AdjustStock(models.StockAdjustRemove, item.Quantity); err != nil {
				return nil, err
			}
			p.Recalculate(now)
			if err := productRepo.Update(ctx, p); err != nil {
				return nil, err
			}
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, err
	}

	tx.CustomerName = customer.Name
	tx.CustomerPhone = customer.Phone

	metrics.TransactionsPosted.WithLabelValues(string(req.Type)).Inc()
	cache.InvalidateDashboard(ctx, userID)

	return tx, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, userID, id int) (*models.Transaction, error) {
	return s.Repo.Get(ctx, userID, id)
}

func (s *TransactionService) GetByReceipt(ctx context.Context, userID int, receiptNumber string) (*models.Transaction, error) {
	if receiptNumber == "" {
		return nil, errors.New("receipt number is required")
	}
	return s.Repo.GetByReceipt(ctx, userID, receiptNumber)
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID, limit int) ([]*models.Transaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.Repo.List(ctx, userID, limit)
}

func (s *TransactionService) ListByCustomer(ctx context.Context, userID, customerID int) ([]*models.Transaction, error) {
	return s.Repo.ListByCustomer(ctx, userID, customerID)
}
