package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"currency-converter-service/internal/domain/model"
	"currency-converter-service/internal/domain/ports"
	"currency-converter-service/pkg/logger"
	"currency-converter-service/pkg/utils"
)

var (
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidWindow   = errors.New("invalid history window")
)

const (
	defaultMaxWindowDays  = 30
	defaultHistoryWorkers = 6
)

// Options tunes the history fetch behaviour. Zero values fall back to
// sensible defaults; a non-positive RequestsPerSecond disables pacing.
type Options struct {
	MaxWindowDays     int
	HistoryWorkers    int
	RequestsPerSecond float64
}

type ConverterService struct {
	source         ports.RateSource
	maxWindowDays  int
	historyWorkers int
	limiter        *rate.Limiter
	log            *logger.Logger
}

func NewConverterService(source ports.RateSource, opts Options, log *logger.Logger) *ConverterService {
	maxWindow := opts.MaxWindowDays
	if maxWindow <= 0 {
		maxWindow = defaultMaxWindowDays
	}

	workers := opts.HistoryWorkers
	if workers <= 0 {
		workers = defaultHistoryWorkers
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &ConverterService{
		source:         source,
		maxWindowDays:  maxWindow,
		historyWorkers: workers,
		limiter:        rate.NewLimiter(limit, 1),
		log:            log,
	}
}

// GetSnapshot fetches the latest rates for base and partitions the
// requested targets: every target lands in exactly one of available or
// missing, with missing preserving the requested order. A failed latest
// fetch fails the whole operation.
func (s *ConverterService) GetSnapshot(ctx context.Context, base model.Currency, targets []model.Currency) (*model.SnapshotView, error) {
	if err := validateCurrencies(base, targets); err != nil {
		return nil, err
	}
	targets = dedupeTargets(targets)

	snapshot, err := s.source.FetchLatest(ctx, base)
	if err != nil {
		s.log.Error("Failed to fetch latest rates", "error", err, "base", base)
		return nil, fmt.Errorf("latest rates for %s: %w", base, err)
	}

	view := &model.SnapshotView{
		Base:      base,
		Available: make(map[model.Currency]float64, len(targets)),
		Missing:   make([]model.Currency, 0),
	}

	for _, target := range targets {
		if r, ok := snapshot.Rates[target]; ok {
			view.Available[target] = r
		} else {
			view.Missing = append(view.Missing, target)
		}
	}

	return view, nil
}

// BuildSeries fetches one snapshot per date in [today-windowDays, today]
// and assembles a time series per requested target. The per-date snapshot
// is shared across all targets, so the window costs windowDays+1 fetches
// regardless of target count. A failed day-fetch is absorbed: the day is
// skipped for every target and FailedDays increments. Targets with zero
// successful observations are omitted from the result map.
func (s *ConverterService) BuildSeries(ctx context.Context, base model.Currency, targets []model.Currency, windowDays int) (*model.HistoryResult, error) {
	if err := validateCurrencies(base, targets); err != nil {
		return nil, err
	}
	if windowDays <= 0 || windowDays > s.maxWindowDays {
		return nil, fmt.Errorf("%w: %d days (max %d)", ErrInvalidWindow, windowDays, s.maxWindowDays)
	}
	targets = dedupeTargets(targets)

	start, end := utils.WindowRange(windowDays)
	days := windowDays + 1

	// Each date writes its own slot, so completion order never matters
	// and one bad day cannot touch another day's result.
	snapshots := make([]*model.RateSnapshot, days)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.historyWorkers)

	for i := 0; i < days; i++ {
		i := i
		date := start.AddDate(0, 0, i)

		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				s.log.Debug("Skipping aborted day-fetch", "base", base, "date", utils.FormatDate(date), "error", err)
				return nil
			}

			snapshot, err := s.source.FetchHistorical(gctx, base, date)
			if err != nil {
				s.log.Debug("Skipping failed day-fetch", "base", base, "date", utils.FormatDate(date), "error", err)
				return nil
			}

			snapshots[i] = snapshot
			return nil
		})
	}

	// Workers absorb their own failures, so Wait never returns an error.
	_ = g.Wait()

	result := &model.HistoryResult{
		Base:   base,
		Start:  start,
		End:    end,
		Series: make(map[model.Currency]model.TimeSeries),
	}

	for i, snapshot := range snapshots {
		if snapshot == nil {
			result.FailedDays++
			continue
		}

		date := start.AddDate(0, 0, i)
		for _, target := range targets {
			if r, ok := snapshot.Rates[target]; ok {
				result.Series[target] = append(result.Series[target], model.Observation{Date: date, Rate: r})
			}
		}
	}

	if result.FailedDays > 0 {
		s.log.Warn("History window completed with failed days",
			"base", base,
			"window_days", windowDays,
			"failed_days", result.FailedDays,
		)
	}

	return result, nil
}

// Convert applies the latest snapshot to the requested amount. Targets
// absent from the snapshot are reported as missing, not as an error.
func (s *ConverterService) Convert(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error) {
	if request.Amount < 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidAmount, request.Amount)
	}

	targets := dedupeTargets(request.Targets)

	view, err := s.GetSnapshot(ctx, request.Base, targets)
	if err != nil {
		return nil, err
	}

	result := &model.ConversionResult{
		Base:        request.Base,
		Amount:      request.Amount,
		Conversions: make([]model.Conversion, 0, len(targets)),
		Missing:     view.Missing,
	}

	for _, target := range targets {
		r, ok := view.Available[target]
		if !ok {
			continue
		}
		result.Conversions = append(result.Conversions, model.Conversion{
			Target:    target,
			Rate:      r,
			Converted: request.Amount * r,
		})
	}

	return result, nil
}

// Currencies returns the fixed menu offered to the user.
func (s *ConverterService) Currencies() []model.Currency {
	return model.MenuCurrencies
}

// dedupeTargets drops repeated targets, keeping the first occurrence so
// the caller's requested order survives. Targets form a set; letting a
// duplicate through would double-count it in partitions and series.
func dedupeTargets(targets []model.Currency) []model.Currency {
	seen := make(map[model.Currency]struct{}, len(targets))
	deduped := make([]model.Currency, 0, len(targets))
	for _, target := range targets {
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		deduped = append(deduped, target)
	}
	return deduped
}

func validateCurrencies(base model.Currency, targets []model.Currency) error {
	if !base.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, base)
	}
	for _, target := range targets {
		if !target.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidCurrency, target)
		}
	}
	return nil
}
