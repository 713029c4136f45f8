package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/San7122/shopsmart-pro-sub001/internal/auth"
	"github.com/San7122/shopsmart-pro-sub001/internal/backup"
	"github.com/San7122/shopsmart-pro-sub001/internal/cache"
	"github.com/San7122/shopsmart-pro-sub001/internal/config"
	"github.com/San7122/shopsmart-pro-sub001/internal/database"
	"github.com/San7122/shopsmart-pro-sub001/internal/db"
	"github.com/San7122/shopsmart-pro-sub001/internal/handlers"
	"github.com/San7122/shopsmart-pro-sub001/internal/health"
	shophttp "github.com/San7122/shopsmart-pro-sub001/internal/http"
	"github.com/San7122/shopsmart-pro-sub001/internal/middleware"
	"github.com/San7122/shopsmart-pro-sub001/internal/monitoring"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
	"github.com/San7122/shopsmart-pro-sub001/internal/services"
	"github.com/San7122/shopsmart-pro-sub001/internal/timeutil"
	"github.com/San7122/shopsmart-pro-sub001/internal/whatsapp"
	"github.com/San7122/shopsmart-pro-sub001/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := pool.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("database unreachable: %v", err)
	}
	cancel()

	if err := cache.Init(cfg); err != nil {
		log.Printf("[Cache] Redis unavailable, running without cache: %v", err)
	}

	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	transactionRepo := repositories.NewTransactionRepository(pool)
	scheduleRepo := repositories.NewPaymentScheduleRepository(pool)
	onlineTxRepo := repositories.NewOnlineTransactionRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	totpService := services.NewTOTPService(userRepo)
	userService := services.NewUserService(userRepo, jwtManager, totpService)
	customerService := services.NewCustomerService(customerRepo)
	productService := services.NewProductService(productRepo, userRepo, timeutil.Now)
	transactionService := services.NewTransactionService(pool, transactionRepo, customerRepo, productRepo, timeutil.Now)
	scheduleService := services.NewPaymentScheduleService(scheduleRepo, customerRepo, timeutil.Now)
	analyticsService := services.NewAnalyticsService(customerRepo, productRepo, scheduleRepo, transactionRepo, timeutil.Now)
	storefrontService := services.NewStorefrontService(userRepo, productRepo, timeutil.Now)
	reportService := services.NewReportService(userRepo, customerRepo, transactionRepo, scheduleRepo, timeutil.Now)
	razorpayService := services.NewRazorpayService(cfg.Razorpay, onlineTxRepo, scheduleRepo, customerRepo, scheduleService, timeutil.Now)

	waProvider := whatsapp.NewProvider(cfg.WhatsApp.Provider, cfg.WhatsApp.APIKey)
	reminderService := services.NewReminderService(scheduleRepo, customerRepo, userRepo, waProvider, timeutil.Now)

	backupService := backup.NewService(cfg.Backup, userRepo, customerRepo, productRepo, scheduleRepo, transactionRepo)

	healthChecker := health.NewHealthChecker(pool)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	totpHandler := handlers.NewTOTPHandler(totpService, userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	productHandler := handlers.NewProductHandler(productService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	scheduleHandler := handlers.NewPaymentScheduleHandler(scheduleService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, reminderService)
	storefrontHandler := handlers.NewStorefrontHandler(storefrontService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	reportHandler := handlers.NewReportHandler(reportService)
	backupHandler := handlers.NewBackupHandler(backupService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := shophttp.NewRouter(
		authHandler,
		totpHandler,
		customerHandler,
		productHandler,
		transactionHandler,
		scheduleHandler,
		analyticsHandler,
		storefrontHandler,
		razorpayHandler,
		reportHandler,
		backupHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.NewCORS(cfg)(
			middleware.MetricsMiddleware(router),
		),
	)

	// Ops dashboard on its own port, not behind the API middleware chain
	monitor := monitoring.NewMonitoringServer(pool, cfg.Server.Port+1)
	go monitor.Start()

	if backupService.Enabled() {
		go backupService.Run(context.Background())
	}

	go runDailyMaintenance(context.Background(), userRepo, scheduleService, productService, reminderService)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("ShopSmart Pro listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// runDailyMaintenance refreshes schedule and batch statuses hourly and sends
// payment reminders once per IST day.
func runDailyMaintenance(ctx context.Context, users *repositories.UserRepository, schedules *services.PaymentScheduleService, products *services.ProductService, reminders *services.ReminderService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	var lastSweep string

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			shops, err := users.ListActive(ctx)
			if err != nil {
				log.Printf("[Maintenance] Listing shops failed: %v", err)
				continue
			}

			scheduleUpdates, batchUpdates := 0, 0
			for _, shop := range shops {
				if n, err := schedules.RefreshStatuses(ctx, shop.ID); err != nil {
					log.Printf("[Maintenance] Schedule refresh failed for shop %d: %v", shop.ID, err)
				} else {
					scheduleUpdates += n
				}
				if n, err := products.RefreshStatuses(ctx, shop.ID); err != nil {
					log.Printf("[Maintenance] Batch refresh failed for shop %d: %v", shop.ID, err)
				} else {
					batchUpdates += n
				}
			}
			if scheduleUpdates > 0 || batchUpdates > 0 {
				log.Printf("[Maintenance] Updated %d schedule and %d batch statuses", scheduleUpdates, batchUpdates)
			}

			today := timeutil.Now().Format("2006-01-02")
			if today != lastSweep && timeutil.Now().Hour() >= 9 {
				if _, err := reminders.SweepAndSend(ctx); err != nil {
					log.Printf("[Maintenance] Reminder sweep failed: %v", err)
				}
				lastSweep = today
			}
		}
	}
}
