// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package conv

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

func TestAddBias(t *testing.T) {
	rng := rand.New(rand.NewPCG(51, 52))

	// Spatial sizes below, at and around multiples of four reach both the
	// vector body and the tail.
	for _, spatial := range []int{1, 3, 4, 5, 8, 9, 17} {
		t.Run(fmt.Sprintf("spatial%d", spatial), func(t *testing.T) {
			const outCh = 3
			output := make([]float32, outCh*spatial)
			for i := range output {
				output[i] = rng.Float32()
			}
			bias := []float32{0.5, -2, 10}

			want := slices.Clone(output)
			for i := range want {
				want[i] += bias[i/spatial]
			}

			if err := AddBias(output, bias, outCh, spatial); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, output); diff != "" {
				t.Errorf("AddBias mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddBiasZero(t *testing.T) {
	rng := rand.New(rand.NewPCG(53, 54))
	output := make([]float32, 4*13)
	for i := range output {
		output[i] = rng.Float32()*2 - 1
	}
	want := slices.Clone(output)

	if err := AddBias(output, make([]float32, 4), 4, 13); err != nil {
		t.Fatal(err)
	}
	checkIdentical(t, want, output)
}

func TestAddBiasFloat64(t *testing.T) {
	output := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if err := AddBias(output, []float64{100, 200}, 2, 5); err != nil {
		t.Fatal(err)
	}
	want := []float64{101, 102, 103, 104, 105, 206, 207, 208, 209, 210}
	if diff := cmp.Diff(want, output); diff != "" {
		t.Errorf("AddBias mismatch (-want +got):\n%s", diff)
	}
}

func TestAddBiasErrors(t *testing.T) {
	output := make([]float32, 12)
	bias := make([]float32, 3)

	for _, tc := range []struct {
		name             string
		output, bias     []float32
		outCh, spatialSz int
	}{
		{"zero channels", output, bias, 0, 4},
		{"zero spatial", output, bias, 3, 0},
		{"short output", output[:11], bias, 3, 4},
		{"short bias", output, bias[:2], 3, 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := AddBias(tc.output, tc.bias, tc.outCh, tc.spatialSz)
			if !errors.Is(err, layout.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
