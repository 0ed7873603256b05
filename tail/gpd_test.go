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

package tail_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/stat"

	"github.com/TonyMPeluso/extreme-value/tail"
)

// gpdSample draws n observations from a Generalized Pareto distribution
// with the given shape and scale via the inverse CDF, deterministically.
func gpdSample(n int, shape, scale float64, seed int64) []float64 {
	uniform := exponentialSample(n, 1, seed) // -log(1-U)
	xs := make([]float64, n)
	for i, e := range uniform {
		if shape == 0 {
			xs[i] = scale * e
			continue
		}
		// X = (scale/shape) * ((1-U)^(-shape) - 1) with e = -log(1-U)
		xs[i] = scale / shape * (math.Exp(shape*e) - 1)
	}
	return xs
}

var _ = Describe("FitScale", func() {
	var cfg tail.Config

	BeforeEach(func() {
		cfg = tail.DefaultConfig()
	})

	Context("with fewer exceedances than the minimum", func() {
		It("returns no fit", func() {
			excess := []float64{1.2, 0.4, 2.2, 0.9}
			_, err := tail.FitScale(excess, 0.3, cfg)
			Expect(err).To(MatchError(tail.ErrTooFewExceedances))
		})
	})

	Context("with exponential exceedances and shape fixed at zero", func() {
		It("recovers the scale as the sample mean", func() {
			excess := exponentialSample(2000, 2, 21)

			scale, err := tail.FitScale(excess, 0, cfg)
			Expect(err).To(BeNil())

			// the fixed-shape MLE for the exponential scale is the mean
			Expect(scale).To(BeNumerically("~", stat.Mean(excess, nil), 0.01))
			Expect(scale).To(BeNumerically("~", 2.0, 0.2))
		})
	})

	Context("with heavy-tailed exceedances and a positive fixed shape", func() {
		It("recovers a scale near the generating value", func() {
			excess := gpdSample(2000, 0.5, 1, 17)

			scale, err := tail.FitScale(excess, 0.5, cfg)
			Expect(err).To(BeNil())
			Expect(scale).To(BeNumerically(">", 0))
			Expect(scale).To(BeNumerically("~", 1.0, 0.15))
		})
	})

	Context("with a negative fixed shape", func() {
		It("still produces a positive scale", func() {
			excess := gpdSample(500, -0.2, 1, 33)

			scale, err := tail.FitScale(excess, -0.2, cfg)
			Expect(err).To(BeNil())
			Expect(scale).To(BeNumerically(">", 0))
		})
	})

	It("never returns a non-positive scale", func() {
		for seed := int64(1); seed <= 5; seed++ {
			excess := gpdSample(100, 0.3, 0.5, seed)
			scale, err := tail.FitScale(excess, 0.3, cfg)
			if err == nil {
				Expect(scale).To(BeNumerically(">", 0))
			}
		}
	})
})
