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

package quotes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Yahoo retrieves daily quotes from the Yahoo Finance v8 chart API.
type Yahoo struct {
	Client  *http.Client
	BaseURL string
}

// NewYahoo creates a Yahoo quote provider with a 30 second request timeout.
func NewYahoo() *Yahoo {
	return &Yahoo{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: "https://query1.finance.yahoo.com",
	}
}

// yahooChart mirrors the chart API response. Open/close arrays use
// pointers because Yahoo emits JSON nulls for days without a trade.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Quotes fetches the daily open/close history for symbol over [begin, end].
// Days with a missing open or close are dropped. Returns ErrNoData when
// the API has nothing usable for the symbol.
func (y *Yahoo) Quotes(ctx context.Context, symbol string, begin, end time.Time) (PriceSeries, error) {
	subLog := log.With().Str("Ticker", symbol).Logger()

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=history",
		y.BaseURL, url.PathEscape(symbol), begin.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return PriceSeries{}, err
	}
	req.Header.Set("User-Agent", "extreme-value/1.0")

	resp, err := y.Client.Do(req)
	if err != nil {
		subLog.Warn().Err(err).Msg("quote request failed")
		return PriceSeries{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not read quote response body")
		return PriceSeries{}, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return PriceSeries{}, ErrNoData
	}
	if resp.StatusCode >= 400 {
		subLog.Warn().Int("HTTPResponseStatusCode", resp.StatusCode).Msg("quote request returned error status")
		return PriceSeries{}, fmt.Errorf("HTTP request returned invalid status code: %d", resp.StatusCode)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		subLog.Warn().Err(err).Msg("could not decode quote response")
		return PriceSeries{}, err
	}
	if chart.Chart.Error != nil {
		subLog.Warn().Str("Code", chart.Chart.Error.Code).Str("Description", chart.Chart.Error.Description).Msg("quote API returned an error")
		return PriceSeries{}, ErrNoData
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return PriceSeries{}, ErrNoData
	}

	result := chart.Chart.Result[0]
	bars := result.Indicators.Quote[0]

	series := PriceSeries{Symbol: symbol, Quotes: make([]Quote, 0, len(result.Timestamp))}
	for i, ts := range result.Timestamp {
		if i >= len(bars.Open) || i >= len(bars.Close) || bars.Open[i] == nil || bars.Close[i] == nil {
			continue
		}
		series.Quotes = append(series.Quotes, Quote{
			Date:  time.Unix(ts, 0).UTC(),
			Open:  *bars.Open[i],
			Close: *bars.Close[i],
		})
	}
	if len(series.Quotes) == 0 {
		return PriceSeries{}, ErrNoData
	}
	return series, nil
}
