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

// Package quotes retrieves daily open/close price series for a ticker
// symbol. Providers are the only I/O-bound collaborators of the risk
// pipeline; everything downstream works on the immutable PriceSeries.
package quotes

import (
	"context"
	"errors"
	"time"
)

// Quote is one trading day's open and close price.
type Quote struct {
	Date  time.Time
	Open  float64
	Close float64
}

// PriceSeries is an ordered daily price history for one symbol. It is
// immutable once loaded.
type PriceSeries struct {
	Symbol string
	Quotes []Quote
}

// ErrNoData indicates the provider has no usable history for a symbol.
// The symbol is simply absent from downstream processing; it is not a
// batch error.
var ErrNoData = errors.New("no quote data for symbol")

// Provider fetches the daily price history for a symbol over [begin, end].
type Provider interface {
	Quotes(ctx context.Context, symbol string, begin, end time.Time) (PriceSeries, error)
}

// PercentReturns computes the signed intraday percent return
// 100*(close-open)/open for every quote in the series.
func (p PriceSeries) PercentReturns() []float64 {
	returns := make([]float64, 0, len(p.Quotes))
	for _, q := range p.Quotes {
		if q.Open == 0 {
			continue
		}
		returns = append(returns, 100*(q.Close-q.Open)/q.Open)
	}
	return returns
}
