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

import "errors"

var (
	// ErrInsufficientLosses and ErrInsufficientK exclude a ticker from the
	// summary entirely.
	ErrInsufficientLosses = errors.New("not enough loss observations")
	ErrInsufficientK      = errors.New("not enough order statistics for the Hill estimator")

	// ErrTooFewExceedances and ErrNoConvergence are soft fit failures; the
	// ticker still appears in the summary with undefined risk values.
	ErrTooFewExceedances = errors.New("not enough exceedances above threshold to fit GPD")
	ErrNoConvergence     = errors.New("GPD scale fit did not converge")
)
