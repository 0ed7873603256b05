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
	"math"
	"sort"
)

// HillCurve holds the Hill tail-index estimate for each candidate order
// statistic k, both as computed and after Gaussian smoothing. Entries are
// parallel: Raw[i] and Smoothed[i] belong to K[i].
type HillCurve struct {
	K        []int
	Raw      []float64
	Smoothed []float64
}

// sortedDescending returns a copy of xs sorted from largest to smallest,
// i.e. the order statistics x_(1) >= x_(2) >= ...
func sortedDescending(xs []float64) []float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	return sorted
}

// hillAt computes the Hill estimate from the top k order statistics of the
// descending-sorted sample: the mean log-excess of x_(1)..x_(k) over
// x_(k+1). NaN when x_(k+1) does not exist.
func hillAt(sorted []float64, k int) float64 {
	if k >= len(sorted) {
		return math.NaN()
	}
	ref := math.Log(sorted[k])
	var sum float64
	for _, x := range sorted[:k] {
		sum += math.Log(x) - ref
	}
	return sum / float64(k)
}

// kRange returns the candidate order statistics [KMin, min(n-KMaxMargin,
// KMaxCap)) for a loss series of length n. The slice may be empty.
func kRange(n int, cfg Config) []int {
	hi := n - cfg.KMaxMargin
	if cfg.KMaxCap < hi {
		hi = cfg.KMaxCap
	}
	if hi <= cfg.KMin {
		return nil
	}
	ks := make([]int, 0, hi-cfg.KMin)
	for k := cfg.KMin; k < hi; k++ {
		ks = append(ks, k)
	}
	return ks
}

// EstimateHillCurve computes the raw and smoothed Hill curve for a loss
// series over the configured k range. Returns ErrInsufficientK when fewer
// than two candidate order statistics exist.
func EstimateHillCurve(losses []float64, cfg Config) (HillCurve, error) {
	ks := kRange(len(losses), cfg)
	if len(ks) < 2 {
		return HillCurve{}, ErrInsufficientK
	}

	sorted := sortedDescending(losses)
	raw := make([]float64, len(ks))
	for i, k := range ks {
		raw[i] = hillAt(sorted, k)
	}

	return HillCurve{
		K:        ks,
		Raw:      raw,
		Smoothed: gaussianFilter1D(raw, cfg.HillSigma),
	}, nil
}
