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

	"gonum.org/v1/gonum/floats"
)

// gaussianKernel builds a normalized Gaussian kernel of standard deviation
// sigma, truncated at 4 sigma on each side.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	for i := -radius; i <= radius; i++ {
		kernel[i+radius] = math.Exp(-float64(i*i) / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)
	return kernel
}

// reflect folds an out-of-range index back into [0, n) by mirroring at the
// array edges, so boundary values are extended rather than zero padded.
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - 1 - i
		}
	}
	return i
}

// gaussianFilter1D convolves xs with a Gaussian kernel of width sigma.
// NaN inputs contaminate every output within the kernel radius; callers
// keep NaNs out of the interior.
func gaussianFilter1D(xs []float64, sigma float64) []float64 {
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2
	out := make([]float64, len(xs))
	for i := range xs {
		var acc float64
		for j := -radius; j <= radius; j++ {
			acc += kernel[j+radius] * xs[reflect(i+j, len(xs))]
		}
		out[i] = acc
	}
	return out
}

// gradient computes the numerical derivative of xs with unit spacing:
// central differences in the interior, one-sided differences at the ends.
// Requires len(xs) >= 2.
func gradient(xs []float64) []float64 {
	n := len(xs)
	out := make([]float64, n)
	out[0] = xs[1] - xs[0]
	out[n-1] = xs[n-1] - xs[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (xs[i+1] - xs[i-1]) / 2
	}
	return out
}
