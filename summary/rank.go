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

package summary

import (
	"math"
	"sort"
)

// Rank assigns 1-based ranks to values. Ties share the average of the
// positions they span, rounded half away from zero when stored. Ascending
// means rank 1 is the smallest value; descending means rank 1 is the
// largest. NaN values are placed at the bottom (after every defined value)
// rather than excluded, so every input receives a rank.
func Rank(values []float64, ascending bool) []int {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	less := func(a, b float64) bool {
		switch {
		case math.IsNaN(a):
			return false
		case math.IsNaN(b):
			return true
		case ascending:
			return a < b
		default:
			return a > b
		}
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return less(values[idx[i]], values[idx[j]])
	})

	same := func(a, b float64) bool {
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	}

	ranks := make([]int, n)
	for start := 0; start < n; {
		end := start + 1
		for end < n && same(values[idx[start]], values[idx[end]]) {
			end++
		}
		// positions start+1 .. end share their average rank
		avg := float64(start+1+end) / 2
		for i := start; i < end; i++ {
			ranks[idx[i]] = int(math.Round(avg))
		}
		start = end
	}
	return ranks
}
