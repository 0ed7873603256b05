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

// Package tail estimates extreme-tail risk for a single return series using
// a semi-parametric peaks-over-threshold model: a smoothed Hill estimator
// selects the tail index and exceedance threshold, a fixed-shape Generalized
// Pareto fit recovers the scale, and closed-form quantile formulas yield VaR
// and expected shortfall.
package tail

// Losses extracts the loss tail from a series of signed daily percent
// returns: strictly negative returns, sign-flipped so every loss is
// positive. Zero and positive returns do not contribute.
func Losses(returns []float64) []float64 {
	losses := make([]float64, 0, len(returns)/2)
	for _, r := range returns {
		if r < 0 {
			losses = append(losses, -r)
		}
	}
	return losses
}
