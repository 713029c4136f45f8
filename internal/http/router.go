package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/San7122/shopsmart-pro-sub001/internal/handlers"
	"github.com/San7122/shopsmart-pro-sub001/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	totpHandler *handlers.TOTPHandler,
	customerHandler *handlers.CustomerHandler,
	productHandler *handlers.ProductHandler,
	transactionHandler *handlers.TransactionHandler,
	scheduleHandler *handlers.PaymentScheduleHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	storefrontHandler *handlers.StorefrontHandler,
	razorpayHandler *handlers.RazorpayHandler,
	reportHandler *handlers.ReportHandler,
	backupHandler *handlers.BackupHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-2fa", authHandler.Verify2FA).Methods("POST")
	r.HandleFunc("/store/{slug}", storefrontHandler.GetStorefront).Methods("GET")
	r.HandleFunc("/store/{slug}/products", storefrontHandler.GetStorefrontProducts).Methods("GET")
	r.HandleFunc("/webhooks/razorpay", razorpayHandler.HandleWebhook).Methods("POST")
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.CheckDetailed).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Profile
	profileAPI := r.PathPrefix("/api/profile").Subrouter()
	profileAPI.Use(authMiddleware.Authenticate)
	profileAPI.HandleFunc("", authHandler.GetProfile).Methods("GET")
	profileAPI.HandleFunc("", authHandler.UpdateProfile).Methods("PUT")
	profileAPI.HandleFunc("/totp/setup", totpHandler.Setup).Methods("POST")
	profileAPI.HandleFunc("/totp/enable", totpHandler.Enable).Methods("POST")
	profileAPI.HandleFunc("/totp/disable", totpHandler.Disable).Methods("POST")

	// Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/search", customerHandler.SearchByPhone).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeactivateCustomer).Methods("DELETE")
	customersAPI.HandleFunc("/{id}/summary", customerHandler.GetSummary).Methods("GET")
	customersAPI.HandleFunc("/{id}/stats", customerHandler.GetSummary).Methods("GET")
	customersAPI.HandleFunc("/{id}/statement.pdf", reportHandler.GetStatementPDF).Methods("GET")

	// Products
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("", productHandler.CreateProduct).Methods("POST")
	productsAPI.HandleFunc("/expiring", productHandler.GetExpiring).Methods("GET")
	productsAPI.HandleFunc("/low-stock", productHandler.GetLowStock).Methods("GET")
	productsAPI.HandleFunc("/refresh-statuses", productHandler.RefreshStatuses).Methods("POST")
	productsAPI.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.UpdateProduct).Methods("PUT")
	productsAPI.HandleFunc("/{id}/stock", productHandler.AdjustStock).Methods("POST")
	productsAPI.HandleFunc("/{id}/batches", productHandler.AddBatch).Methods("POST")

	// Transactions
	transactionsAPI := r.PathPrefix("/api/transactions").Subrouter()
	transactionsAPI.Use(authMiddleware.Authenticate)
	transactionsAPI.HandleFunc("", transactionHandler.ListTransactions).Methods("GET")
	transactionsAPI.HandleFunc("", transactionHandler.RecordTransaction).Methods("POST")
	transactionsAPI.HandleFunc("/receipt/{receipt}", transactionHandler.GetByReceipt).Methods("GET")
	transactionsAPI.HandleFunc("/{id}", transactionHandler.GetTransaction).Methods("GET")
	transactionsAPI.HandleFunc("/{id}/receipt.pdf", reportHandler.GetReceiptPDF).Methods("GET")

	// Payment schedules
	schedulesAPI := r.PathPrefix("/api/schedules").Subrouter()
	schedulesAPI.Use(authMiddleware.Authenticate)
	schedulesAPI.HandleFunc("", scheduleHandler.ListSchedules).Methods("GET")
	schedulesAPI.HandleFunc("", scheduleHandler.CreateSchedule).Methods("POST")
	schedulesAPI.HandleFunc("/upcoming", scheduleHandler.GetUpcoming).Methods("GET")
	schedulesAPI.HandleFunc("/overdue", scheduleHandler.GetOverdue).Methods("GET")
	schedulesAPI.HandleFunc("/due-today", scheduleHandler.GetDueToday).Methods("GET")
	schedulesAPI.HandleFunc("/refresh-statuses", scheduleHandler.RefreshStatuses).Methods("POST")
	schedulesAPI.HandleFunc("/{id}", scheduleHandler.GetSchedule).Methods("GET")
	schedulesAPI.HandleFunc("/{id}/payment", scheduleHandler.RecordPayment).Methods("POST")
	schedulesAPI.HandleFunc("/{id}/late-fee", scheduleHandler.ApplyLateFee).Methods("POST")
	schedulesAPI.HandleFunc("/{id}/promise", scheduleHandler.PromiseToPay).Methods("POST")
	schedulesAPI.HandleFunc("/{id}/cancel", scheduleHandler.CancelSchedule).Methods("POST")
	schedulesAPI.HandleFunc("/{id}/reminder-link", analyticsHandler.GetReminderLink).Methods("GET")

	// Analytics and reminders
	analyticsAPI := r.PathPrefix("/api/analytics").Subrouter()
	analyticsAPI.Use(authMiddleware.Authenticate)
	analyticsAPI.HandleFunc("/dashboard", analyticsHandler.GetDashboard).Methods("GET")
	analyticsAPI.HandleFunc("/reminders", analyticsHandler.GetPendingReminders).Methods("GET")

	// Online payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("/status", razorpayHandler.GetStatus).Methods("GET")
	paymentsAPI.HandleFunc("/order", razorpayHandler.CreateOrder).Methods("POST")
	paymentsAPI.HandleFunc("/verify", razorpayHandler.VerifyPayment).Methods("POST")
	paymentsAPI.HandleFunc("/online", razorpayHandler.ListOnlineTransactions).Methods("GET")

	// Backups
	backupsAPI := r.PathPrefix("/api/backups").Subrouter()
	backupsAPI.Use(authMiddleware.Authenticate)
	backupsAPI.HandleFunc("", backupHandler.ListBackups).Methods("GET")
	backupsAPI.HandleFunc("", backupHandler.TriggerBackup).Methods("POST")

	return r
}
