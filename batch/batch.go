// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package batch runs the tail-risk pipeline over a ticker universe. Each
// ticker's pipeline is a pure function of its own price history, so the
// batch fans out across a bounded worker pool and joins before ranking.
package batch

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/TonyMPeluso/extreme-value/quotes"
	"github.com/TonyMPeluso/extreme-value/summary"
	"github.com/TonyMPeluso/extreme-value/tail"
	"github.com/TonyMPeluso/extreme-value/tickers"
)

// Stats counts per-ticker outcomes of a batch run.
type Stats struct {
	Succeeded          int
	FitFailed          int
	NoData             int
	InsufficientLosses int
	InsufficientK      int
}

// Processed is the total number of tickers that produced a summary row.
func (s Stats) Processed() int { return s.Succeeded + s.FitFailed }

// outcome is one worker's result. Exactly one of record/skip is
// meaningful; record carries rows whose GPD fit failed as well (their risk
// fields are NaN).
type outcome struct {
	record *summary.Record
	skip   error
}

// Run fetches price history and runs the tail pipeline for every ticker,
// then ranks the survivors into a summary table. Failures are isolated per
// ticker: a ticker with no data or insufficient observations is skipped, a
// ticker whose GPD fit fails keeps its row with undefined VaR/ES. The
// returned table preserves the input ticker order. A nil table (with no
// error) means no ticker survived.
func Run(ctx context.Context, universe []tickers.Ticker, provider quotes.Provider, begin, end time.Time, cfg tail.Config) (*summary.Table, Stats, error) {
	outcomes := make([]outcome, len(universe))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(cfg))
	for i := range universe {
		i := i
		g.Go(func() error {
			outcomes[i] = processTicker(ctx, universe[i], provider, begin, end, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	var stats Stats
	records := make([]summary.Record, 0, len(universe))
	for _, out := range outcomes {
		if out.record != nil {
			records = append(records, *out.record)
			if out.skip != nil {
				stats.FitFailed++
			} else {
				stats.Succeeded++
			}
			continue
		}
		switch {
		case errors.Is(out.skip, quotes.ErrNoData):
			stats.NoData++
		case errors.Is(out.skip, tail.ErrInsufficientLosses):
			stats.InsufficientLosses++
		case errors.Is(out.skip, tail.ErrInsufficientK):
			stats.InsufficientK++
		}
	}

	log.Info().
		Int("Tickers", len(universe)).
		Int("Succeeded", stats.Succeeded).
		Int("FitFailed", stats.FitFailed).
		Int("NoData", stats.NoData).
		Int("InsufficientLosses", stats.InsufficientLosses).
		Int("InsufficientK", stats.InsufficientK).
		Msg("batch complete")

	if len(records) == 0 {
		return nil, stats, nil
	}
	return summary.Build(records), stats, nil
}

func workers(cfg tail.Config) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return 1
}

// processTicker runs the full per-ticker pipeline: fetch, loss extraction,
// tail estimation, risk quantiles. It never fails the batch.
func processTicker(ctx context.Context, tkr tickers.Ticker, provider quotes.Provider, begin, end time.Time, cfg tail.Config) outcome {
	subLog := log.With().Str("Ticker", tkr.Symbol).Logger()

	series, err := provider.Quotes(ctx, tkr.Symbol, begin, end)
	if err != nil {
		if errors.Is(err, quotes.ErrNoData) {
			subLog.Info().Msg("no quote data; skipping ticker")
		} else {
			subLog.Warn().Err(err).Msg("quote fetch failed; skipping ticker")
		}
		return outcome{skip: quotes.ErrNoData}
	}

	analysis, err := tail.Analyze(tkr.Symbol, series.PercentReturns(), cfg)
	if err != nil {
		subLog.Info().Err(err).Msg("skipping ticker")
		return outcome{skip: err}
	}

	return outcome{
		record: &summary.Record{
			Name:      tkr.Name,
			Ticker:    tkr.Symbol,
			AvgReturn: analysis.AvgReturn,
			VaR:       analysis.VaR,
			ES:        analysis.ES,
		},
		skip: analysis.FitErr,
	}
}
