package replication

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

type Option func(*dirOpts)

type dirOpts struct {
	logger     *zap.Logger
	maxTries   uint
	maxElapsed time.Duration
	newBackOff func() backoff.BackOff
}

func defaultOpts() dirOpts {
	return dirOpts{
		logger:     zap.NewNop(),
		maxTries:   5,
		maxElapsed: 2 * time.Minute,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 20 * time.Second
			return b
		},
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *dirOpts) {
		o.logger = l
	}
}

// WithMaxTries bounds the number of attempts per request, including the
// first one. 1 disables retries.
func WithMaxTries(n uint) Option {
	return func(o *dirOpts) {
		o.maxTries = n
	}
}

// WithMaxElapsedTime bounds the total time spent retrying one request.
func WithMaxElapsedTime(d time.Duration) Option {
	return func(o *dirOpts) {
		o.maxElapsed = d
	}
}

// WithBackOff replaces the retry schedule. The function is called once per
// request since backoff policies are stateful.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(o *dirOpts) {
		o.newBackOff = fn
	}
}

func withRetry[T any](ctx context.Context, d *Directory, op string, fn func() (T, error)) (T, error) {
	attempt := 0
	return backoff.Retry(ctx, func() (T, error) {
		attempt++
		v, err := fn()
		if err == nil {
			return v, nil
		}
		if !isTransient(err) {
			return v, backoff.Permanent(err)
		}
		d.opts.logger.Warn("transient replication directory error",
			zap.String("op", op), zap.Int("attempt", attempt), zap.Error(err))
		return v, err
	},
		backoff.WithBackOff(d.opts.newBackOff()),
		backoff.WithMaxTries(d.opts.maxTries),
		backoff.WithMaxElapsedTime(d.opts.maxElapsed),
	)
}

// isTransient reports whether a request may succeed when repeated unchanged.
// TableNotFoundException is raised while a freshly created regional table is
// not yet visible to the global table service.
func isTransient(err error) bool {
	var (
		tableNotFound *types.TableNotFoundException
		limit         *types.LimitExceededException
		internal      *types.InternalServerError
	)
	switch {
	case errors.As(err, &tableNotFound), errors.As(err, &limit), errors.As(err, &internal):
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "RequestLimitExceeded", "ProvisionedThroughputExceededException":
			return true
		}
	}
	return false
}
