// Package redis keeps the ids of processed ingestion messages so redelivered
// notifications are acknowledged without creating a second order.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 24 * time.Hour
	keyPrefix  = "production:ingest:seen:"
)

// Ledger implements ports.DeliveryLedger with one expiring key per message id.
type Ledger struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

func NewLedger(rdb goredis.UniversalClient, ttl time.Duration) *Ledger {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Ledger{rdb: rdb, ttl: ttl}
}

func (l *Ledger) Seen(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	n, err := l.rdb.Exists(ctx, keyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", id, err)
	}
	return n > 0, nil
}

// Remember is a no-op for empty ids and for ids already recorded; the first
// recording fixes the expiry.
func (l *Ledger) Remember(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	if err := l.rdb.SetNX(ctx, keyPrefix+id, time.Now().UTC().Format(time.RFC3339), l.ttl).Err(); err != nil {
		return fmt.Errorf("redis setnx %s: %w", id, err)
	}
	return nil
}

// NopLedger never remembers anything. Duplicate creation is still absorbed by
// the orderRef lookup in the create handler.
type NopLedger struct{}

func (NopLedger) Seen(context.Context, string) (bool, error) { return false, nil }
func (NopLedger) Remember(context.Context, string) error     { return nil }

// Connect opens a client and checks the server answers.
func Connect(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
