// Package cache provides a Redis-backed cache for the aggregation reports.
// Reports tolerate slightly stale data, so every entry carries a short TTL
// and cache failures degrade to querying the database directly.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a report key is absent or expired.
var ErrCacheMiss = errors.New("report cache: miss")

// Report cache keys.
const (
	KeyPopularCourses         = "reports:popular_courses"
	KeyCourseStatistics       = "reports:course_statistics"
	KeyCourseModuleStatistics = "reports:course_module_statistics"
	KeyUserPerformance        = "reports:user_performance"
	KeyUserActivity           = "reports:user_activity"
	KeyNotificationStatistics = "reports:notification_statistics"
)

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ReportCache stores marshalled report rows in Redis.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache connects to Redis and verifies the connection.
func NewReportCache(ctx context.Context, cfg Config) (*ReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &ReportCache{client: client, ttl: ttl}, nil
}

// Get unmarshals the cached value for key into dest.
func (c *ReportCache) Get(ctx context.Context, key string, dest interface{}) error {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to read report cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("failed to decode cached report %s: %w", key, err)
	}
	return nil
}

// Set stores value under key with the configured TTL.
func (c *ReportCache) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write report cache key %s: %w", key, err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *ReportCache) Close() error {
	return c.client.Close()
}
