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

package kernelbench

import (
	"log/slog"

	"github.com/ajroetker/kernelbench/hwy/contrib/align"
)

type options struct {
	logger    *slog.Logger
	alignment int
}

// Option configures a Runner.
type Option func(*options)

// WithLogger sets the logger for phase and fallback messages.
//
// If nil is passed, output is discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}

// WithAlignment sets the byte alignment of operand buffers. It must be a
// power of two; values below align.MinAlignment are raised to it and
// values <= 0 restore the default.
func WithAlignment(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = align.DefaultAlignment()
		}
		o.alignment = n
	}
}

func defaultOptions() options {
	return options{
		logger:    slog.New(slog.DiscardHandler),
		alignment: align.DefaultAlignment(),
	}
}
