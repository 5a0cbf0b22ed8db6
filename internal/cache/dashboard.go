// Package cache memoizes computed dashboard payloads in Redis.
//
// The memo is explicit: keyed by (shop URL, window), bounded by a TTL, and
// invalidated whenever new data is ingested for the shop. A cache miss or a
// Redis fault just means the caller recomputes from the store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Payload is the memoized dashboard computation.
type Payload struct {
	Rows    []domain.DailyMetric  `json:"rows"`
	Summary domain.MetricsSummary `json:"summary"`
}

// Dashboard is the shop-keyed dashboard memo.
type Dashboard struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDashboard creates the memo over an existing Redis client.
func NewDashboard(rdb *redis.Client, ttl time.Duration) *Dashboard {
	return &Dashboard{rdb: rdb, ttl: ttl}
}

func key(shopURL string, windowDays int) string {
	return fmt.Sprintf("dashboard:%s:%d", shopURL, windowDays)
}

// Get returns the memoized payload for (shop, window), or ok=false on a miss.
func (d *Dashboard) Get(ctx context.Context, shopURL string, windowDays int) (*Payload, bool, error) {
	data, err := d.rdb.Get(ctx, key(shopURL, windowDays)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		// A corrupt entry is a miss; the recompute will overwrite it.
		return nil, false, nil
	}
	return &p, true, nil
}

// Set memoizes the payload for (shop, window) until the TTL expires or the
// shop's entries are invalidated.
func (d *Dashboard) Set(ctx context.Context, shopURL string, windowDays int, p *Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := d.rdb.Set(ctx, key(shopURL, windowDays), data, d.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateShop drops every memoized window for the shop. Called after each
// ingestion so the dashboard never serves pre-sync numbers.
func (d *Dashboard) InvalidateShop(ctx context.Context, shopURL string) error {
	pattern := fmt.Sprintf("dashboard:%s:*", shopURL)
	iter := d.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := d.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache del: %w", err)
	}
	return nil
}
