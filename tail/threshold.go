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

// Selection fixes the peaks-over-threshold model for one loss series: the
// chosen order statistic K, the loss threshold (the K-th entry of the
// descending-sorted sample), and the Hill shape estimate at K.
type Selection struct {
	K         int
	Threshold float64
	Shape     float64
}

// argmin returns the index of the smallest value, first occurrence on
// ties. NaN entries never win.
func argmin(xs []float64) int {
	best := -1
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if best < 0 || x < xs[best] {
			best = i
		}
	}
	return best
}

// SelectThreshold picks the order statistic at which the smoothed Hill
// curve is flattest: the absolute numerical gradient of the curve is
// smoothed once more (SelectSigma) and its minimum marks the most stable
// tail-index estimate. The shape is then re-estimated at the chosen k
// directly from the sorted losses rather than read off the smoothed curve.
// Deterministic: identical inputs always select the same k.
func SelectThreshold(losses []float64, curve HillCurve, cfg Config) Selection {
	slope := gradient(curve.Smoothed)
	for i, s := range slope {
		slope[i] = math.Abs(s)
	}
	idx := argmin(gaussianFilter1D(slope, cfg.SelectSigma))

	k := curve.K[idx]
	sorted := sortedDescending(losses)
	return Selection{
		K:         k,
		Threshold: sorted[k],
		Shape:     hillAt(sorted, k),
	}
}
