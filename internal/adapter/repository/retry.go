package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"currency-converter-service/internal/domain/model"
	"currency-converter-service/internal/domain/ports"
	"currency-converter-service/pkg/logger"
)

// RetryingSource decorates a RateSource with bounded exponential backoff
// for transient failures. Only ErrUnreachable is retried; logical
// rejections and malformed payloads fail immediately.
type RetryingSource struct {
	inner           ports.RateSource
	maxRetries      uint64
	initialInterval time.Duration
	log             *logger.Logger
}

func NewRetryingSource(inner ports.RateSource, maxRetries int, initialInterval time.Duration, log *logger.Logger) *RetryingSource {
	return &RetryingSource{
		inner:           inner,
		maxRetries:      uint64(maxRetries),
		initialInterval: initialInterval,
		log:             log,
	}
}

func (r *RetryingSource) FetchLatest(ctx context.Context, base model.Currency) (*model.RateSnapshot, error) {
	return r.retry(ctx, func() (*model.RateSnapshot, error) {
		return r.inner.FetchLatest(ctx, base)
	})
}

func (r *RetryingSource) FetchHistorical(ctx context.Context, base model.Currency, date time.Time) (*model.RateSnapshot, error) {
	return r.retry(ctx, func() (*model.RateSnapshot, error) {
		return r.inner.FetchHistorical(ctx, base, date)
	})
}

func (r *RetryingSource) retry(ctx context.Context, fetch func() (*model.RateSnapshot, error)) (*model.RateSnapshot, error) {
	var snapshot *model.RateSnapshot

	operation := func() error {
		snap, err := fetch()
		if err != nil {
			if errors.Is(err, model.ErrUnreachable) {
				r.log.Debug("Retryable fetch failure", "error", err)
				return err
			}
			return backoff.Permanent(err)
		}
		snapshot = snap
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	if r.initialInterval > 0 {
		bo.InitialInterval = r.initialInterval
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, r.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return snapshot, nil
}
