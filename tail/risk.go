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

import "math"

// RiskMeasures converts a fitted threshold-exceedance model into Value at
// Risk and Expected Shortfall at confidence level alpha, using the
// closed-form GPD tail quantiles. With q = 1-alpha:
//
//	shape = 0: VaR = u + scale*ln(1/q)
//	           ES  = u + scale*(ln(1/q) + 1)
//	shape != 0: VaR = u + (scale/shape)*((1/q)^shape - 1)
//	           ES  = u + (VaR - u + scale)/(1 - shape)
//
// For shape >= 1 the conditional tail expectation does not exist and ES is
// reported as NaN rather than a finite (and meaningless) number.
func RiskMeasures(threshold, shape, scale, alpha float64) (valueAtRisk, expectedShortfall float64) {
	q := 1 - alpha
	if shape == 0 {
		valueAtRisk = threshold + scale*math.Log(1/q)
		expectedShortfall = threshold + scale*(math.Log(1/q)+1)
		return valueAtRisk, expectedShortfall
	}

	valueAtRisk = threshold + scale/shape*(math.Pow(1/q, shape)-1)
	if shape >= 1 {
		return valueAtRisk, math.NaN()
	}
	expectedShortfall = threshold + (valueAtRisk-threshold+scale)/(1-shape)
	return valueAtRisk, expectedShortfall
}
