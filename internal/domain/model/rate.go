package model

import (
	"time"
)

// RateSnapshot holds the rates reported by the upstream source for a
// single base currency at one point in time. Every rate is positive;
// a currency absent from Rates is unknown for this snapshot, not zero.
type RateSnapshot struct {
	Base  Currency             `json:"base"`
	Rates map[Currency]float64 `json:"rates"`
}

// Observation is one (date, rate) data point for a fixed (base, target)
// pair. Dates carry day granularity only.
type Observation struct {
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"`
}

// TimeSeries is an ordered sequence of observations for one
// (base, target) pair, ascending by date, no duplicate dates. Days with
// no successful observation are simply absent.
type TimeSeries []Observation

// SnapshotView partitions the requested targets against a snapshot:
// every requested target lands in exactly one of Available or Missing,
// with Missing preserving the caller's requested order.
type SnapshotView struct {
	Base      Currency             `json:"base"`
	Available map[Currency]float64 `json:"available"`
	Missing   []Currency           `json:"missing"`
}

// ConversionRequest captures one user interaction. Targets is
// order-preserving and may be empty.
type ConversionRequest struct {
	Base    Currency   `json:"base"`
	Targets []Currency `json:"targets"`
	Amount  float64    `json:"amount"`
}

// Swap exchanges the base currency with the first target, leaving the
// rest of the target order and the amount untouched. With no targets it
// is a no-op. Callers must swap before fetching so the swapped values
// are what gets requested.
func (r *ConversionRequest) Swap() {
	if len(r.Targets) == 0 {
		return
	}
	r.Base, r.Targets[0] = r.Targets[0], r.Base
}

type Conversion struct {
	Target    Currency `json:"target"`
	Rate      float64  `json:"rate"`
	Converted float64  `json:"converted"`
}

type ConversionResult struct {
	Base        Currency     `json:"base"`
	Amount      float64      `json:"amount"`
	Conversions []Conversion `json:"conversions"`
	Missing     []Currency   `json:"missing"`
}

// HistoryResult maps each requested target with at least one successful
// observation to its time series over the inclusive [Start, End] window.
// FailedDays counts dates whose snapshot could not be fetched at all.
type HistoryResult struct {
	Base       Currency                `json:"base"`
	Start      time.Time               `json:"start"`
	End        time.Time               `json:"end"`
	Series     map[Currency]TimeSeries `json:"series"`
	FailedDays int                     `json:"failed_days"`
}
