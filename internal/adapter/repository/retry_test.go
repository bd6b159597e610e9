package repository

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"currency-converter-service/internal/domain/model"
	"currency-converter-service/pkg/logger"
)

type stubSource struct {
	fetch func() (*model.RateSnapshot, error)
}

func (s *stubSource) FetchLatest(ctx context.Context, base model.Currency) (*model.RateSnapshot, error) {
	return s.fetch()
}

func (s *stubSource) FetchHistorical(ctx context.Context, base model.Currency, date time.Time) (*model.RateSnapshot, error) {
	return s.fetch()
}

func TestRetryingSource_RetriesUnreachable(t *testing.T) {
	var attempts atomic.Int64

	inner := &stubSource{fetch: func() (*model.RateSnapshot, error) {
		if attempts.Add(1) < 3 {
			return nil, model.ErrUnreachable
		}
		return &model.RateSnapshot{Base: model.USD, Rates: map[model.Currency]float64{model.EUR: 0.9}}, nil
	}}

	source := NewRetryingSource(inner, 3, time.Millisecond, logger.NewLogger("error"))

	snapshot, err := source.FetchLatest(context.Background(), model.USD)
	require.NoError(t, err)
	assert.Equal(t, int64(3), attempts.Load())
	assert.Equal(t, 0.9, snapshot.Rates[model.EUR])
}

func TestRetryingSource_DoesNotRetryRejection(t *testing.T) {
	var attempts atomic.Int64

	inner := &stubSource{fetch: func() (*model.RateSnapshot, error) {
		attempts.Add(1)
		return nil, model.ErrUpstreamRejected
	}}

	source := NewRetryingSource(inner, 3, time.Millisecond, logger.NewLogger("error"))

	_, err := source.FetchLatest(context.Background(), model.Currency("XXX"))
	require.ErrorIs(t, err, model.ErrUpstreamRejected)
	assert.Equal(t, int64(1), attempts.Load(), "logical rejections must not be retried")
}

func TestRetryingSource_BoundedAttempts(t *testing.T) {
	var attempts atomic.Int64

	inner := &stubSource{fetch: func() (*model.RateSnapshot, error) {
		attempts.Add(1)
		return nil, model.ErrUnreachable
	}}

	source := NewRetryingSource(inner, 2, time.Millisecond, logger.NewLogger("error"))

	_, err := source.FetchHistorical(context.Background(), model.USD, time.Now().AddDate(0, 0, -1))
	require.ErrorIs(t, err, model.ErrUnreachable)
	assert.Equal(t, int64(3), attempts.Load(), "2 retries means 3 attempts total")
}
