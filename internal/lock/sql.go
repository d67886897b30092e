package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// SQLLocker keeps locks as rows of the locks table. The UNIQUE constraint on key decides races.
type SQLLocker struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLLocker(db *sql.DB) *SQLLocker {
	return &SQLLocker{
		db:  db,
		now: time.Now,
	}
}

func (that *SQLLocker) Acquire(ctx context.Context, key string, opts Options) (*Lease, error) {
	return acquire(ctx, key, opts, func(ctx context.Context, owner string) (*Lease, error) {
		return that.tryAcquire(ctx, key, owner, opts.Expire)
	})
}

// tryAcquire inserts the lock row, or takes over a row whose expiry has passed.
// It returns a nil lease when a live lock is in the way.
func (that *SQLLocker) tryAcquire(ctx context.Context, key, owner string, expire time.Duration) (*Lease, error) {
	now := that.now()
	expiry := now.Add(expire)

	_, err := that.db.ExecContext(ctx,
		`INSERT INTO locks (key, expiry, owner) VALUES (?, ?, ?)`,
		key, expiry.UnixMilli(), owner)
	if err == nil {
		return that.lease(key, owner, expiry), nil
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return nil, fmt.Errorf("failed to insert lock %s: %w", key, err)
	}

	result, err := that.db.ExecContext(ctx,
		`UPDATE locks SET expiry = ?, owner = ? WHERE key = ? AND expiry < ?`,
		expiry.UnixMilli(), owner, key, now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to reclaim lock %s: %w", key, err)
	}

	reclaimed, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to reclaim lock %s: %w", key, err)
	}

	if reclaimed == 0 {
		return nil, nil //nolint: nilnil // held by someone else
	}

	return that.lease(key, owner, expiry), nil
}

func (that *SQLLocker) lease(key, owner string, expiry time.Time) *Lease {
	return &Lease{
		Key:    key,
		Owner:  owner,
		Expiry: expiry,
		release: func(ctx context.Context) error {
			result, err := that.db.ExecContext(ctx, `DELETE FROM locks WHERE key = ? AND owner = ?`, key, owner)
			if err != nil {
				return fmt.Errorf("failed to delete lock %s: %w", key, err)
			}

			if deleted, err := result.RowsAffected(); err == nil && deleted == 0 {
				return fmt.Errorf("%w: %s", ErrLockLost, key)
			}

			return nil
		},
	}
}

// Expiry reports the stored expiry of key, if a lock row exists.
func (that *SQLLocker) Expiry(ctx context.Context, key string) (time.Time, bool, error) {
	var expiry int64
	err := that.db.QueryRowContext(ctx, `SELECT expiry FROM locks WHERE key = ?`, key).Scan(&expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}

	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read lock %s: %w", key, err)
	}

	return time.UnixMilli(expiry), true, nil
}
