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
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Exceedances returns the amounts by which losses exceed the threshold,
// for losses strictly greater than it.
func Exceedances(losses []float64, threshold float64) []float64 {
	excess := make([]float64, 0, len(losses))
	for _, x := range losses {
		if x > threshold {
			excess = append(excess, x-threshold)
		}
	}
	return excess
}

// gpdNegLogLikelihood evaluates the negative log-likelihood of the
// Generalized Pareto distribution with the shape held fixed and location
// zero. Candidates with a non-positive scale, or with observations outside
// the distribution's support, cost +Inf rather than erroring so the
// optimizer can route around them.
func gpdNegLogLikelihood(scale float64, excess []float64, shape float64) float64 {
	if scale <= 0 {
		return math.Inf(1)
	}
	n := float64(len(excess))
	if shape == 0 {
		var sum float64
		for _, x := range excess {
			sum += x
		}
		return n*math.Log(scale) + sum/scale
	}
	var sum float64
	for _, x := range excess {
		z := 1 + shape*x/scale
		if z <= 0 {
			return math.Inf(1)
		}
		sum += math.Log(z)
	}
	return n*math.Log(scale) + (1+1/shape)*sum
}

// FitScale estimates the GPD scale parameter by maximum likelihood with the
// shape fixed at the Hill estimate. The search starts from the sample
// standard deviation of the exceedances and is capped at
// cfg.MaxFitIterations. Returns ErrTooFewExceedances when there is not
// enough data to fit and ErrNoConvergence (wrapping the solver status) when
// the minimizer fails; both are soft failures.
func FitScale(excess []float64, shape float64, cfg Config) (float64, error) {
	if len(excess) < cfg.MinExceedances {
		return 0, ErrTooFewExceedances
	}

	initial := stat.PopStdDev(excess, nil)
	if !(initial > 0) {
		initial = 1e-6
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return gpdNegLogLikelihood(x[0], excess, shape)
		},
	}
	settings := &optimize.Settings{MajorIterations: cfg.MaxFitIterations}

	result, err := optimize.Minimize(problem, []float64{initial}, settings, &optimize.NelderMead{})
	if err != nil || !fitConverged(result) {
		// retry with a quasi-Newton method before giving up
		result, err = optimize.Minimize(problem, []float64{initial}, settings, &optimize.BFGS{})
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNoConvergence, err)
	}
	if !fitConverged(result) {
		return 0, fmt.Errorf("%w: %s", ErrNoConvergence, result.Status)
	}

	scale := result.X[0]
	if !(scale > 0) || math.IsInf(result.F, 0) {
		return 0, fmt.Errorf("%w: degenerate scale %g", ErrNoConvergence, scale)
	}
	return scale, nil
}

func fitConverged(result *optimize.Result) bool {
	if result == nil {
		return false
	}
	switch result.Status {
	case optimize.Success, optimize.FunctionConvergence, optimize.GradientThreshold,
		optimize.StepConvergence:
		return true
	}
	return false
}
