package ports

import (
	"context"
	"time"

	"currency-converter-service/internal/domain/model"
)

// RateSource fetches rate snapshots from the upstream provider. Each
// call performs exactly one outbound request; retry policy, if any,
// belongs to a wrapping implementation.
type RateSource interface {
	FetchLatest(ctx context.Context, base model.Currency) (*model.RateSnapshot, error)
	FetchHistorical(ctx context.Context, base model.Currency, date time.Time) (*model.RateSnapshot, error)
}
