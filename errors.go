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
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedConfig is matched by errors for unknown kernel,
	// variant, layout or pattern names. No default is ever substituted.
	ErrUnrecognizedConfig = errors.New("unrecognized configuration")

	// ErrInvalidConfig is matched by errors for out-of-range numeric
	// settings such as non-positive dimensions.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ConfigError reports which Config field was rejected.
//
// errors.Is matches it against ErrUnrecognizedConfig or ErrInvalidConfig
// depending on the failure. The underlying error (if any) can be accessed
// via errors.Unwrap.
type ConfigError struct {
	Field string
	Value string
	kind  error
	cause error
}

func (e *ConfigError) Error() string {
	if e.kind == ErrUnrecognizedConfig {
		return fmt.Sprintf("unrecognized %s %q", e.Field, e.Value)
	}
	if e.cause != nil {
		return fmt.Sprintf("invalid %s %s: %v", e.Field, e.Value, e.cause)
	}
	return fmt.Sprintf("invalid %s %s", e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.cause }

// Is reports whether target is the sentinel describing this failure.
func (e *ConfigError) Is(target error) bool { return target == e.kind }

func unrecognized(field, value string, cause error) error {
	return &ConfigError{Field: field, Value: value, kind: ErrUnrecognizedConfig, cause: cause}
}

func invalid(field string, value any, cause error) error {
	return &ConfigError{Field: field, Value: fmt.Sprint(value), kind: ErrInvalidConfig, cause: cause}
}

var errNotPositive = errors.New("must be positive")
