// Copyright 2025 go-highway Authors
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

// Package timing measures kernel calls and reduces the samples to the
// statistics and derived throughput figures reported per benchmark run.
package timing

import "time"

type trialConfig struct {
	warmup bool
	setup  func()
}

// TrialOption configures RunTrials.
type TrialOption func(*trialConfig)

// WithSetup runs fn before every trial, including the warm-up, outside the
// timed region. Kernels that accumulate into their output use it to re-zero.
func WithSetup(fn func()) TrialOption {
	return func(c *trialConfig) {
		c.setup = fn
	}
}

// WithoutWarmup disables the untimed first call.
func WithoutWarmup() TrialOption {
	return func(c *trialConfig) {
		c.warmup = false
	}
}

// RunTrials calls kernel count times and returns the duration of each call
// in seconds. Unless WithoutWarmup is given, one untimed call precedes the
// trials so page faults and lazy initialization are not sampled.
func RunTrials(count int, kernel func(), opts ...TrialOption) []float64 {
	cfg := trialConfig{warmup: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.warmup {
		if cfg.setup != nil {
			cfg.setup()
		}
		kernel()
	}

	samples := make([]float64, 0, max(count, 0))
	for range count {
		if cfg.setup != nil {
			cfg.setup()
		}
		start := time.Now()
		kernel()
		samples = append(samples, time.Since(start).Seconds())
	}
	return samples
}
