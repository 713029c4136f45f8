package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/San7122/shopsmart-pro-sub001/internal/config"
	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
	"github.com/San7122/shopsmart-pro-sub001/internal/timeutil"
)

// Service exports per-shop JSON snapshots to S3-compatible storage
// (Cloudflare R2 in production)
type Service struct {
	cfg          config.BackupConfig
	userRepo     *repositories.UserRepository
	customerRepo *repositories.CustomerRepository
	productRepo  *repositories.ProductRepository
	scheduleRepo *repositories.PaymentScheduleRepository
	txRepo       *repositories.TransactionRepository
}

func NewService(
	cfg config.BackupConfig,
	userRepo *repositories.UserRepository,
	customerRepo *repositories.CustomerRepository,
	productRepo *repositories.ProductRepository,
	scheduleRepo *repositories.PaymentScheduleRepository,
	txRepo *repositories.TransactionRepository,
) *Service {
	return &Service{
		cfg:          cfg,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		scheduleRepo: scheduleRepo,
		txRepo:       txRepo,
	}
}

func (s *Service) Enabled() bool {
	return s.cfg.Enabled
}

func (s *Service) newClient(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.Endpoint)
	}), nil
}

type shopSnapshot struct {
	Shop         *models.User              `json:"shop"`
	Customers    []*models.Customer        `json:"customers"`
	Products     []*models.Product         `json:"products"`
	Schedules    []*models.PaymentSchedule `json:"schedules"`
	Transactions []*models.Transaction     `json:"transactions"`
	TakenAt      time.Time                 `json:"taken_at"`
}

// ExportShop uploads one shop's full data as a JSON object
func (s *Service) ExportShop(ctx context.Context, userID int) (string, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	snapshot := shopSnapshot{Shop: user, TakenAt: timeutil.Now()}
	if snapshot.Customers, err = s.customerRepo.List(ctx, userID); err != nil {
		return "", err
	}
	if snapshot.Products, err = s.productRepo.List(ctx, userID); err != nil {
		return "", err
	}
	if snapshot.Schedules, err = s.scheduleRepo.List(ctx, userID); err != nil {
		return "", err
	}
	if snapshot.Transactions, err = s.txRepo.List(ctx, userID, 10000); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", err
	}

	client, err := s.newClient(ctx)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("shops/%s/%s.json", user.ShopSlug, timeutil.Now().Format("2006-01-02T15-04-05"))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	log.Printf("[Backup] Uploaded %s (%d bytes)", key, len(data))
	return key, nil
}

// ExportAll snapshots every active shop
func (s *Service) ExportAll(ctx context.Context) error {
	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if _, err := s.ExportShop(ctx, u.ID); err != nil {
			log.Printf("[Backup] Export failed for shop %s: %v", u.ShopSlug, err)
		}
	}
	return nil
}

// Run exports all shops on the configured interval until the context ends
func (s *Service) Run(ctx context.Context) {
	interval := time.Duration(s.cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	log.Printf("[Backup] Scheduler started, interval %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.ExportAll(ctx); err != nil {
				log.Printf("[Backup] Sweep failed: %v", err)
			}
		}
	}
}

// ListBackups lists the stored snapshots for a shop
func (s *Service) ListBackups(ctx context.Context, userID int) ([]string, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	client, err := s.newClient(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(fmt.Sprintf("shops/%s/", user.ShopSlug)),
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(result.Contents))
	for _, obj := range result.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}
	return keys, nil
}
