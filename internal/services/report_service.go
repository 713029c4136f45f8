package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
	"github.com/San7122/shopsmart-pro-sub001/internal/timeutil"
)

// ReportService generates receipt and statement PDFs
type ReportService struct {
	UserRepo        *repositories.UserRepository
	CustomerRepo    *repositories.CustomerRepository
	TransactionRepo *repositories.TransactionRepository
	ScheduleRepo    *repositories.PaymentScheduleRepository
	Now             func() time.Time
}

func NewReportService(
	userRepo *repositories.UserRepository,
	customerRepo *repositories.CustomerRepository,
	transactionRepo *repositories.TransactionRepository,
	scheduleRepo *repositories.PaymentScheduleRepository,
	now func() time.Time,
) *ReportService {
	return &ReportService{
		UserRepo:        userRepo,
		CustomerRepo:    customerRepo,
		TransactionRepo: transactionRepo,
		ScheduleRepo:    scheduleRepo,
		Now:             now,
	}
}

// GenerateReceiptPDF renders a printable receipt for one transaction
func (s *ReportService) GenerateReceiptPDF(ctx context.Context, userID, transactionID int) ([]byte, error) {
	tx, err := s.TransactionRepo.Get(ctx, userID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("transaction not found: %w", err)
	}
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, user.ShopName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Receipt %s", tx.ReceiptNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, tx.CreatedAt.In(timeutil.IST).Format(timeutil.DisplayLayout), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Customer box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", tx.CustomerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", tx.CustomerPhone), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Items table for sales
	if len(tx.Items) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(70, 7, "Item", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Qty", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Rate", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "GST %", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Total", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, item := range tx.Items {
			name := item.Name
			if len(name) > 32 {
				name = name[:29] + "..."
			}
			pdf.CellFormat(70, 6, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("Rs. %.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%.0f", item.GSTRate), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, fmt.Sprintf("Rs. %.2f", item.Total), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Amount and resulting balance
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(95, 10, fmt.Sprintf("%s: Rs. %.2f", labelForType(tx.Type), tx.Amount), "1", 0, "C", true, 0, "")
	if tx.BalanceAfter > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.CellFormat(95, 10, fmt.Sprintf("Balance: Rs. %.2f", tx.BalanceAfter), "1", 1, "C", true, 0, "")

	if tx.Notes != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(190, 6, fmt.Sprintf("Notes: %s", tx.Notes), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func labelForType(t models.TransactionType) string {
	switch t {
	case models.TransactionTypeCredit:
		return "Credit Given"
	case models.TransactionTypePayment:
		return "Payment Received"
	default:
		return "Sale"
	}
}

// GenerateStatementPDF renders a full ledger statement for one customer
func (s *ReportService) GenerateStatementPDF(ctx context.Context, userID, customerID int) ([]byte, error) {
	customer, err := s.CustomerRepo.Get(ctx, userID, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.TransactionRepo.ListByCustomer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	schedules, err := s.ScheduleRepo.ListByCustomer(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Customer Statement", user.ShopName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", s.Now().In(timeutil.IST).Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer Information", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", customer.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", customer.Phone), "RB", 1, "L", false, 0, "")
	if customer.GSTNumber != "" {
		pdf.CellFormat(95, 7, fmt.Sprintf("GSTIN: %s", customer.GSTNumber), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Type: %s", customer.CustomerType), "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Transactions
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Transactions", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(35, 7, "Receipt #", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Balance After", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, tx := range transactions {
		pdf.CellFormat(35, 6, tx.ReceiptNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, tx.CreatedAt.In(timeutil.IST).Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, string(tx.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("Rs. %.2f", tx.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("Rs. %.2f", tx.BalanceAfter), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Open schedules
	open := make([]*models.PaymentSchedule, 0)
	for _, sc := range schedules {
		if sc.Status == models.ScheduleStatusPaid || sc.Status == models.ScheduleStatusCancelled {
			continue
		}
		open = append(open, sc)
	}
	if len(open) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Open Payment Schedules", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(50, 7, "Due Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Total", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Paid", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Remaining", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Status", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, sc := range open {
			pdf.CellFormat(50, 6, sc.DueDate.In(timeutil.IST).Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("Rs. %.2f", sc.TotalAmount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("Rs. %.2f", sc.PaidAmount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, fmt.Sprintf("Rs. %.2f", sc.RemainingAmount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, string(sc.Status), "1", 1, "C", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Closing balance
	if customer.CurrentBalance > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	balanceText := fmt.Sprintf("Outstanding Balance: Rs. %.2f", customer.CurrentBalance)
	if customer.CurrentBalance <= 0 {
		balanceText = "NO OUTSTANDING BALANCE"
	}
	pdf.CellFormat(190, 10, balanceText, "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
