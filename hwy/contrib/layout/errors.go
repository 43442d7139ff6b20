// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidArgument reports a precondition violation: non-positive
	// sizes, dimensions that do not satisfy the output-size formula, or
	// slices too short for the declared shape.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAllocation reports that a buffer could not be obtained. The
	// operation did not run and no partially filled buffer is returned.
	ErrAllocation = errors.New("allocation failed")
)

// Invalid returns an error wrapping ErrInvalidArgument.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

// CheckPositive returns an error unless every value is > 0.
// names is a comma-separated list matching values: CheckPositive("m,k,n", m, k, n).
func CheckPositive(names string, values ...int) error {
	labels := strings.Split(names, ",")
	for i, v := range values {
		if v > 0 {
			continue
		}
		name := "dimension"
		if i < len(labels) {
			name = strings.TrimSpace(labels[i])
		}
		return Invalid("%s must be positive, got %d", name, v)
	}
	return nil
}

// CheckLen returns an error if a slice of length got cannot hold want
// elements.
func CheckLen(name string, got, want int) error {
	if got < want {
		return Invalid("%s slice too short: len %d, need %d", name, got, want)
	}
	return nil
}

// maxElements bounds the element count of any buffer a kernel allocates.
const maxElements = math.MaxInt

// CheckAlloc returns an error wrapping ErrAllocation if rows*cols overflows
// or exceeds limit elements. limit <= 0 means no limit beyond overflow.
func CheckAlloc(name string, rows, cols, limit int) error {
	if rows <= 0 || cols <= 0 {
		return Invalid("%s: %dx%d buffer", name, rows, cols)
	}
	if rows > maxElements/cols {
		return fmt.Errorf("%s: %dx%d elements overflow: %w", name, rows, cols, ErrAllocation)
	}
	if n := rows * cols; limit > 0 && n > limit {
		return fmt.Errorf("%s: %d elements exceed limit %d: %w", name, n, limit, ErrAllocation)
	}
	return nil
}
