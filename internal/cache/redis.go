package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"estateportal/internal/config"
	"estateportal/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	listingPrefix = "listings"
	generationKey = "listings:generation"
)

// ListingCache caches listing pages in Redis. Writes bump a generation
// counter so stale pages are never served after an admin change.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

type cachedPage struct {
	Properties []model.Property `json:"properties"`
	Total      int              `json:"total"`
}

// NewListingCache connects to Redis and verifies the connection
func NewListingCache(ctx context.Context, cfg config.RedisConfig) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &ListingCache{client: client, ttl: cfg.TTL}, nil
}

// Close releases the Redis connection pool
func (c *ListingCache) Close() error {
	return c.client.Close()
}

// Get returns a cached page for the query, reporting whether one was found
func (c *ListingCache) Get(ctx context.Context, q model.ListingQuery) ([]model.Property, int, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	data, err := c.client.Get(ctx, QueryKey(gen, q)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to read cached listings: %w", err)
	}

	var page cachedPage
	if err := json.Unmarshal([]byte(data), &page); err != nil {
		return nil, 0, false, fmt.Errorf("failed to decode cached listings: %w", err)
	}
	return page.Properties, page.Total, true, nil
}

// Set stores a page for the query under the current generation
func (c *ListingCache) Set(ctx context.Context, q model.ListingQuery, properties []model.Property, total int) error {
	gen, err := c.generation(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(cachedPage{Properties: properties, Total: total})
	if err != nil {
		return fmt.Errorf("failed to encode listings: %w", err)
	}
	if err := c.client.Set(ctx, QueryKey(gen, q), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache listings: %w", err)
	}
	return nil
}

// Invalidate makes every cached page unreachable
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate listings cache: %w", err)
	}
	return nil
}

func (c *ListingCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

// QueryKey derives a stable cache key from a listing query and a generation
func QueryKey(generation int64, q model.ListingQuery) string {
	params := map[string]string{
		"status": string(q.Status),
		"q":      strings.ToLower(strings.TrimSpace(q.Term)),
		"sort":   string(q.Sort),
		"offset": strconv.Itoa(q.Offset),
		"limit":  strconv.Itoa(q.Limit),
	}
	if q.Category != nil {
		params["category"] = string(*q.Category)
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(params[k])
	}

	hash := md5.Sum([]byte(builder.String()))
	return fmt.Sprintf("%s:v%d:%s", listingPrefix, generation, hex.EncodeToString(hash[:]))
}
