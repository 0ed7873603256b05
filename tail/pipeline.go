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

package tail

import (
	"errors"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// Analysis is the outcome of the tail pipeline for one return series.
// Scale, VaR and ES are NaN when the GPD fit failed; FitErr then records
// the reason. AvgReturn is the mean of the signed daily returns, not of
// the loss tail.
type Analysis struct {
	AvgReturn float64
	LossCount int
	Selection Selection
	Scale     float64
	VaR       float64
	ES        float64
	FitErr    error
}

// Defined reports whether the analysis produced risk quantiles.
func (a *Analysis) Defined() bool {
	return a.FitErr == nil && !math.IsNaN(a.VaR)
}

// Analyze runs the full pipeline for one ticker's signed daily percent
// returns: loss extraction, Hill curve estimation, threshold selection,
// GPD scale fit and risk quantiles. A returned error
// (ErrInsufficientLosses, ErrInsufficientK) means the series cannot be
// analyzed at all and yields no record. A failed GPD fit is softer: the
// analysis is returned with NaN risk values and FitErr set.
func Analyze(symbol string, returns []float64, cfg Config) (*Analysis, error) {
	losses := Losses(returns)
	if len(losses) < cfg.MinLosses {
		return nil, ErrInsufficientLosses
	}

	curve, err := EstimateHillCurve(losses, cfg)
	if err != nil {
		return nil, err
	}

	sel := SelectThreshold(losses, curve, cfg)
	analysis := &Analysis{
		AvgReturn: stat.Mean(returns, nil),
		LossCount: len(losses),
		Selection: sel,
		Scale:     math.NaN(),
		VaR:       math.NaN(),
		ES:        math.NaN(),
	}

	scale, err := FitScale(Exceedances(losses, sel.Threshold), sel.Shape, cfg)
	if err != nil {
		logFitFailure(symbol, sel, err)
		analysis.FitErr = err
		return analysis, nil
	}

	analysis.Scale = scale
	analysis.VaR, analysis.ES = RiskMeasures(sel.Threshold, sel.Shape, scale, cfg.Alpha)
	return analysis, nil
}

func logFitFailure(symbol string, sel Selection, err error) {
	evt := log.Warn().Str("Ticker", symbol).Int("K", sel.K).
		Float64("Threshold", sel.Threshold).Float64("Shape", sel.Shape)
	if errors.Is(err, ErrTooFewExceedances) {
		evt.Msg("too few exceedances; VaR/ES left undefined")
		return
	}
	evt.Err(err).Msg("GPD scale fit failed; VaR/ES left undefined")
}
