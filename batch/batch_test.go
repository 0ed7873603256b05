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

package batch_test

import (
	"context"
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/TonyMPeluso/extreme-value/batch"
	"github.com/TonyMPeluso/extreme-value/quotes"
	"github.com/TonyMPeluso/extreme-value/tail"
	"github.com/TonyMPeluso/extreme-value/tickers"
)

// fakeProvider serves deterministic synthetic price histories keyed by
// symbol; symbols without an entry have no data.
type fakeProvider struct {
	series map[string]quotes.PriceSeries
}

func (f *fakeProvider) Quotes(_ context.Context, symbol string, _, _ time.Time) (quotes.PriceSeries, error) {
	series, ok := f.series[symbol]
	if !ok {
		return quotes.PriceSeries{}, quotes.ErrNoData
	}
	return series, nil
}

// syntheticSeries builds days of open/close quotes whose intraday returns
// alternate gains with heavy-tailed losses.
func syntheticSeries(symbol string, days int, seed int64) quotes.PriceSeries {
	rng := rand.New(rand.NewSource(seed))
	series := quotes.PriceSeries{Symbol: symbol}
	date := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		open := 100.0
		var pct float64
		if i%2 == 0 {
			pct = -math.Pow(1-rng.Float64(), -0.3) // loss, Pareto tail
		} else {
			pct = 0.4 + rng.Float64()
		}
		series.Quotes = append(series.Quotes, quotes.Quote{
			Date:  date,
			Open:  open,
			Close: open * (1 + pct/100),
		})
		date = date.AddDate(0, 0, 1)
	}
	return series
}

var _ = Describe("Run", func() {
	var (
		provider *fakeProvider
		universe []tickers.Ticker
		cfg      tail.Config
		begin    time.Time
		end      time.Time
	)

	BeforeEach(func() {
		cfg = tail.DefaultConfig()
		cfg.Workers = 4
		begin = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

		provider = &fakeProvider{series: map[string]quotes.PriceSeries{
			"AAA":  syntheticSeries("AAA", 700, 1),
			"BBB":  syntheticSeries("BBB", 700, 2),
			"SHRT": syntheticSeries("SHRT", 20, 3),
		}}
		universe = []tickers.Ticker{
			{Name: "Alpha Corp", Symbol: "AAA"},
			{Name: "Beta Inc", Symbol: "BBB"},
			{Name: "Shorty", Symbol: "SHRT"},
			{Name: "Ghost Co", Symbol: "GONE"},
		}
	})

	It("ranks the survivors and skips tickers without enough data", func() {
		table, stats, err := batch.Run(context.Background(), universe, provider, begin, end, cfg)
		Expect(err).To(BeNil())
		Expect(table).NotTo(BeNil())
		Expect(table.Records).To(HaveLen(2))
		Expect(stats.Succeeded).To(Equal(2))
		Expect(stats.NoData).To(Equal(1))
		Expect(stats.InsufficientLosses).To(Equal(1))

		_, ok := table.Lookup("SHRT")
		Expect(ok).To(BeFalse())
		_, ok = table.Lookup("GONE")
		Expect(ok).To(BeFalse())

		rec, ok := table.Lookup("AAA")
		Expect(ok).To(BeTrue())
		Expect(rec.Name).To(Equal("Alpha Corp"))
		Expect(rec.AvgReturnRank).NotTo(BeNil())
		Expect(rec.VaRRank).NotTo(BeNil())
		Expect(rec.ESRank).NotTo(BeNil())
	})

	It("preserves the universe order in the table", func() {
		table, _, err := batch.Run(context.Background(), universe, provider, begin, end, cfg)
		Expect(err).To(BeNil())
		Expect(table.Records[0].Ticker).To(Equal("AAA"))
		Expect(table.Records[1].Ticker).To(Equal("BBB"))
	})

	It("is deterministic regardless of worker count", func() {
		cfg.Workers = 1
		one, _, err := batch.Run(context.Background(), universe, provider, begin, end, cfg)
		Expect(err).To(BeNil())

		cfg.Workers = 8
		many, _, err := batch.Run(context.Background(), universe, provider, begin, end, cfg)
		Expect(err).To(BeNil())

		Expect(many.Records).To(Equal(one.Records))
	})

	Context("when the GPD fit fails for a ticker", func() {
		It("keeps the row with undefined risk values ranked at the bottom", func() {
			cfg.MinExceedances = 100000 // force fit failure for everyone

			table, stats, err := batch.Run(context.Background(), universe, provider, begin, end, cfg)
			Expect(err).To(BeNil())
			Expect(table).NotTo(BeNil())
			Expect(stats.FitFailed).To(Equal(2))
			Expect(stats.Succeeded).To(Equal(0))

			rec, ok := table.Lookup("AAA")
			Expect(ok).To(BeTrue())
			Expect(math.IsNaN(rec.VaR)).To(BeTrue())
			Expect(math.IsNaN(rec.ES)).To(BeTrue())
			Expect(rec.VaRRank).NotTo(BeNil())
			Expect(rec.AvgReturnRank).NotTo(BeNil())
		})
	})

	Context("when no ticker survives", func() {
		It("returns a nil table and reports counts", func() {
			universe = []tickers.Ticker{{Name: "Ghost Co", Symbol: "GONE"}}
			table, stats, err := batch.Run(context.Background(), universe, provider, begin, end, cfg)
			Expect(err).To(BeNil())
			Expect(table).To(BeNil())
			Expect(stats.NoData).To(Equal(1))
		})
	})
})
