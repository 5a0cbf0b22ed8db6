// Package distlock guards cross-process critical sections. The dashboard uses
// it to keep two processes from ingesting the same shop at once: the second
// sync is rejected, not queued.
package distlock

import (
	"context"
	"database/sql"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lock is a non-blocking mutual exclusion primitive. Acquire returns false
// when another holder has the lock; it never waits.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// ForShop builds a lock scoped to one shop's sync. Redis is preferred when
// available; otherwise a Postgres advisory lock on the same connection pool
// the store uses. Both release automatically if the holder crashes (TTL
// expiry and session scoping respectively).
func ForShop(rdb *redis.Client, db *sql.DB, shopURL string, ttl time.Duration) Lock {
	if rdb != nil {
		return newRedisLock(rdb, "sync:"+shopURL, ttl)
	}
	return newAdvisoryLock(db, "sync:"+shopURL)
}

// advisoryLock maps the key onto a pg_try_advisory_lock id.
type advisoryLock struct {
	db     *sql.DB
	lockID int64
}

func newAdvisoryLock(db *sql.DB, key string) *advisoryLock {
	h := fnv.New64a()
	h.Write([]byte(key))
	return &advisoryLock{db: db, lockID: int64(h.Sum64())}
}

func (l *advisoryLock) Acquire(ctx context.Context) (bool, error) {
	var acquired bool
	err := l.db.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", l.lockID).Scan(&acquired)
	return acquired, err
}

func (l *advisoryLock) Release(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", l.lockID)
	return err
}
