package ports

import (
	"context"

	"currency-converter-service/internal/domain/model"
)

type ConverterService interface {
	GetSnapshot(ctx context.Context, base model.Currency, targets []model.Currency) (*model.SnapshotView, error)
	BuildSeries(ctx context.Context, base model.Currency, targets []model.Currency, windowDays int) (*model.HistoryResult, error)
	Convert(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error)
	Currencies() []model.Currency
}
