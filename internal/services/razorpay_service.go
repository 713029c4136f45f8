package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/San7122/shopsmart-pro-sub001/internal/config"
	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
)

type RazorpayService struct {
	cfg          config.RazorpayConfig
	client       *razorpay.Client
	txRepo       *repositories.OnlineTransactionRepository
	scheduleRepo *repositories.PaymentScheduleRepository
	customerRepo *repositories.CustomerRepository
	schedules    *PaymentScheduleService
	now          func() time.Time
}

func NewRazorpayService(
	cfg config.RazorpayConfig,
	txRepo *repositories.OnlineTransactionRepository,
	scheduleRepo *repositories.PaymentScheduleRepository,
	customerRepo *repositories.CustomerRepository,
	schedules *PaymentScheduleService,
	now func() time.Time,
) *RazorpayService {
	s := &RazorpayService{
		cfg:          cfg,
		txRepo:       txRepo,
		scheduleRepo: scheduleRepo,
		customerRepo: customerRepo,
		schedules:    schedules,
		now:          now,
	}
	if cfg.KeyID != "" && cfg.KeySecret != "" {
		s.client = razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	}
	return s
}

// IsEnabled reports whether online payments are configured
func (s *RazorpayService) IsEnabled() bool {
	return s.client != nil
}

// CreateOrder creates a Razorpay order for paying down a schedule and stores
// the pending online transaction
func (s *RazorpayService) CreateOrder(ctx context.Context, userID int, req *models.CreateOnlinePaymentRequest) (*models.CreateOrderResponse, error) {
	if s.client == nil {
		return nil, fmt.Errorf("online payments are not configured")
	}
	if req.Amount <= 0 {
		return nil, models.ErrNonPositiveAmount
	}

	schedule, err := s.scheduleRepo.Get(ctx, userID, req.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("schedule not found: %w", err)
	}
	if schedule.Status == models.ScheduleStatusCancelled {
		return nil, models.ErrScheduleCancelled
	}
	customer, err := s.customerRepo.Get(ctx, userID, schedule.CustomerID)
	if err != nil {
		return nil, err
	}

	// Razorpay amounts are in paise
	amountPaise := int(req.Amount * 100)
	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("sched_%d_%d", schedule.ID, s.now().Unix()),
		"notes": map[string]interface{}{
			"schedule_id":    schedule.ID,
			"customer_id":    customer.ID,
			"customer_phone": customer.Phone,
		},
	}

	order, err := s.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}
	orderID, _ := order["id"].(string)

	tx := &models.OnlineTransaction{
		UserID:          userID,
		RazorpayOrderID: orderID,
		CustomerID:      customer.ID,
		CustomerPhone:   customer.Phone,
		CustomerName:    customer.Name,
		ScheduleID:      schedule.ID,
		Amount:          req.Amount,
		Status:          models.OnlineTxStatusPending,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to store online transaction: %w", err)
	}

	return &models.CreateOrderResponse{
		OrderID:       orderID,
		Amount:        amountPaise,
		Currency:      "INR",
		KeyID:         s.cfg.KeyID,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
	}, nil
}

// VerifyPayment checks the checkout signature and lands the payment on the
// schedule. Replays of an already-processed order return the stored record.
func (s *RazorpayService) VerifyPayment(ctx context.Context, userID int, req *models.VerifyPaymentRequest) (*models.OnlineTransaction, error) {
	tx, err := s.txRepo.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, fmt.Errorf("transaction not found: %w", err)
	}
	if tx.UserID != userID {
		return nil, fmt.Errorf("transaction not found")
	}
	if tx.Status == models.OnlineTxStatusSuccess {
		return tx, nil
	}

	if !s.verifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		_ = s.txRepo.MarkFailed(ctx, tx.ID, "invalid signature")
		return nil, fmt.Errorf("invalid payment signature")
	}

	s.enrichFromPayment(tx, req.RazorpayPaymentID)
	tx.RazorpayPaymentID = req.RazorpayPaymentID
	tx.RazorpaySignature = req.RazorpaySignature

	if _, err := s.schedules.RecordPayment(ctx, userID, tx.ScheduleID, &models.RecordPaymentRequest{Amount: tx.Amount}); err != nil {
		return nil, fmt.Errorf("payment verified but could not be recorded: %w", err)
	}

	tx.Status = models.OnlineTxStatusSuccess
	if err := s.txRepo.MarkSuccess(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// HandleWebhook processes Razorpay webhook events. Only payment.captured is
// acted on, everything else is acknowledged and ignored.
func (s *RazorpayService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.verifyWebhookSignature(body, signature) {
		return fmt.Errorf("invalid webhook signature")
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
					Method  string `json:"method"`
					VPA     string `json:"vpa"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("malformed webhook payload: %w", err)
	}
	if event.Event != "payment.captured" {
		return nil
	}

	entity := event.Payload.Payment.Entity
	tx, err := s.txRepo.GetByOrderID(ctx, entity.OrderID)
	if err != nil {
		return fmt.Errorf("unknown order %s: %w", entity.OrderID, err)
	}
	if tx.Status == models.OnlineTxStatusSuccess {
		return nil
	}

	tx.RazorpayPaymentID = entity.ID
	tx.PaymentMethod = entity.Method
	tx.VPA = entity.VPA

	if _, err := s.schedules.RecordPayment(ctx, tx.UserID, tx.ScheduleID, &models.RecordPaymentRequest{Amount: tx.Amount}); err != nil {
		return fmt.Errorf("webhook payment could not be recorded: %w", err)
	}

	tx.Status = models.OnlineTxStatusSuccess
	return s.txRepo.MarkSuccess(ctx, tx)
}

func (s *RazorpayService) ListOnlineTransactions(ctx context.Context, userID int) ([]*models.OnlineTransaction, error) {
	return s.txRepo.ListByUser(ctx, userID)
}

// enrichFromPayment pulls method details from the Razorpay API, best effort
func (s *RazorpayService) enrichFromPayment(tx *models.OnlineTransaction, paymentID string) {
	if s.client == nil {
		return
	}
	payment, err := s.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		log.Printf("[Razorpay] Failed to fetch payment details: %v", err)
		return
	}
	if method, ok := payment["method"].(string); ok {
		tx.PaymentMethod = method
	}
	if vpa, ok := payment["vpa"].(string); ok {
		tx.VPA = vpa
	}
	if acq, ok := payment["acquirer_data"].(map[string]interface{}); ok {
		if utr, ok := acq["upi_transaction_id"].(string); ok {
			tx.UTRNumber = utr
		}
	}
}

// verifySignature checks the HMAC-SHA256 checkout signature
func (s *RazorpayService) verifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.cfg.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// verifyWebhookSignature checks the HMAC-SHA256 webhook signature
func (s *RazorpayService) verifyWebhookSignature(body []byte, signature string) bool {
	if s.cfg.WebhookSecret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.cfg.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
