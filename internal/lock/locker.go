package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/wordgame-backend/internal/apperror"
)

// PollInterval is how often a blocking acquisition retries.
const PollInterval = 100 * time.Millisecond

var ErrLockLost = errors.New("lock was taken over before release")

// Options control one acquisition. A zero Block fails fast when the lock is held.
type Options struct {
	Expire time.Duration
	Block  time.Duration
}

type Locker interface {
	Acquire(ctx context.Context, key string, opts Options) (*Lease, error)
}

// Lease is a held lock. Only the owner token that took the lock can release it.
type Lease struct {
	Key    string
	Owner  string
	Expiry time.Time

	release func(ctx context.Context) error
}

func (that *Lease) Release(ctx context.Context) error {
	return that.release(ctx)
}

type tryFunc func(ctx context.Context, owner string) (*Lease, error)

// acquire retries try every PollInterval until it wins or the blocking budget runs out.
func acquire(ctx context.Context, key string, opts Options, try tryFunc) (*Lease, error) {
	owner := uuid.NewString()
	deadline := time.Now().Add(opts.Block)

	for {
		lease, err := try(ctx, owner)
		if err != nil {
			return nil, err
		}

		if lease != nil {
			return lease, nil
		}

		if !time.Now().Add(PollInterval).Before(deadline) {
			return nil, fmt.Errorf("%w: %s", apperror.ErrLockAcquisition, key)
		}

		timer := time.NewTimer(PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %s: %w", apperror.ErrLockAcquisition, key, ctx.Err())
		case <-timer.C:
		}
	}
}

// WithLock runs fn while holding key and releases the lock however fn returns.
func WithLock(ctx context.Context, logger zerolog.Logger, locker Locker, key string, opts Options, fn func(ctx context.Context) error) error {
	lease, err := locker.Acquire(ctx, key, opts)
	if err != nil {
		return err
	}

	defer func() {
		// release even if ctx is already cancelled
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if releaseErr := lease.Release(releaseCtx); releaseErr != nil {
			logger.Warn().Err(releaseErr).Str("key", key).Msg("failed to release lock")
		}
	}()

	return fn(ctx)
}
