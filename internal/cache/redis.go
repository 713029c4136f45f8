package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/San7122/shopsmart-pro-sub001/internal/config"
)

const (
	storefrontKeyFmt = "storefront:%s"
	dashboardKeyFmt  = "dashboard:%d"

	storefrontTTL = 2 * time.Minute
	dashboardTTL  = 1 * time.Minute
	authTTL       = 15 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. On failure the client stays nil
// and every helper degrades to a cache miss.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when the cache is unavailable
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of email+password for the auth cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	userID, err := client.Get(ctx, hashCredentials(email, password)).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials so repeat logins skip bcrypt
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, authTTL)
}

// InvalidateAuth removes cached auth for a user (on password change/logout)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(email, password))
}

// GetCachedStorefront returns the cached public catalog JSON for a shop slug
func GetCachedStorefront(ctx context.Context, slug string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(storefrontKeyFmt, slug)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheStorefront stores the public catalog JSON for a shop slug
func CacheStorefront(ctx context.Context, slug string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(storefrontKeyFmt, slug), data, storefrontTTL)
}

// InvalidateStorefront drops the cached catalog after a product mutation
func InvalidateStorefront(ctx context.Context, slug string) {
	if client == nil || slug == "" {
		return
	}
	client.Del(ctx, fmt.Sprintf(storefrontKeyFmt, slug))
}

// GetCachedDashboard returns the cached dashboard JSON for an owner
func GetCachedDashboard(ctx context.Context, userID int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(dashboardKeyFmt, userID)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheDashboard stores the dashboard JSON for an owner
func CacheDashboard(ctx context.Context, userID int, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(dashboardKeyFmt, userID), data, dashboardTTL)
}

// InvalidateDashboard drops the cached dashboard after a ledger mutation
func InvalidateDashboard(ctx context.Context, userID int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(dashboardKeyFmt, userID))
}
