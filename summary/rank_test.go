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

package summary_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/TonyMPeluso/extreme-value/summary"
)

var _ = Describe("Rank", func() {
	It("ranks ascending with rank 1 at the smallest value", func() {
		Expect(summary.Rank([]float64{1, 3, 2}, true)).To(Equal([]int{1, 3, 2}))
	})

	It("ranks descending with rank 1 at the largest value", func() {
		Expect(summary.Rank([]float64{5, 2, 8}, false)).To(Equal([]int{2, 3, 1}))
		Expect(summary.Rank([]float64{4, 1, 9}, false)).To(Equal([]int{2, 1, 3}))
	})

	It("gives tied values the same averaged rank", func() {
		// positions 1 and 2 average to 1.5, rounded to 2
		Expect(summary.Rank([]float64{7, 7, 3}, false)).To(Equal([]int{2, 2, 3}))
		Expect(summary.Rank([]float64{3, 3, 3}, true)).To(Equal([]int{2, 2, 2}))
	})

	It("places NaN values at the bottom regardless of direction", func() {
		nan := math.NaN()
		Expect(summary.Rank([]float64{nan, 2, 8}, false)).To(Equal([]int{3, 2, 1}))
		Expect(summary.Rank([]float64{nan, 2, 8}, true)).To(Equal([]int{3, 1, 2}))
	})

	It("keeps NaN values in the output, never dropping them", func() {
		nan := math.NaN()
		ranks := summary.Rank([]float64{nan, nan, 1}, true)
		Expect(ranks).To(HaveLen(3))
		Expect(ranks[2]).To(Equal(1))
		// the two NaNs tie at the bottom positions 2 and 3
		Expect(ranks[0]).To(Equal(ranks[1]))
	})
})
