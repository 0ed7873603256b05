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

import "runtime"

// Config collects the tuning constants of the tail-estimation pipeline.
// It is passed by value into every stage so that multiple configurations
// can run side by side; nothing in this package reads process-wide state.
type Config struct {
	// MinLosses is the minimum number of strictly negative daily returns a
	// ticker must have before tail estimation is attempted.
	MinLosses int

	// KMin and KMaxCap bound the range of order statistics explored by the
	// Hill estimator. The effective upper bound for a series of n losses is
	// min(n-KMaxMargin, KMaxCap), exclusive.
	KMin       int
	KMaxCap    int
	KMaxMargin int

	// HillSigma is the Gaussian kernel width used to smooth the raw Hill
	// curve; SelectSigma smooths the absolute gradient during threshold
	// selection (the "eyeball method").
	HillSigma   float64
	SelectSigma float64

	// MinExceedances is the smallest exceedance count for which a GPD scale
	// fit is attempted.
	MinExceedances int

	// MaxFitIterations caps the work done by the MLE solver so a single
	// pathological fit cannot stall a batch.
	MaxFitIterations int

	// Alpha is the confidence level for VaR and expected shortfall.
	Alpha float64

	// Workers is the fan-out width used when processing many tickers.
	Workers int
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		MinLosses:        30,
		KMin:             5,
		KMaxCap:          150,
		KMaxMargin:       10,
		HillSigma:        2,
		SelectSigma:      5,
		MinExceedances:   5,
		MaxFitIterations: 200,
		Alpha:            0.95,
		Workers:          runtime.NumCPU(),
	}
}
