// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package conv

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// problem is one valid-convolution test case.
type problem struct {
	outCh, inCh, k, inSize int
}

func (p problem) outSize() int { return p.inSize - p.k + 1 }

func (p problem) String() string {
	return fmt.Sprintf("co%d_ci%d_k%d_in%d", p.outCh, p.inCh, p.k, p.inSize)
}

// testProblems covers single and multi channel layers, square kernels from
// 1 to 8 and a kernel as wide as the input.
var testProblems = []problem{
	{1, 1, 3, 8},
	{16, 1, 3, 12},
	{4, 3, 3, 9},
	{2, 2, 1, 5},
	{3, 2, 4, 11},
	{5, 3, 5, 13},
	{2, 2, 7, 10},
	{2, 1, 8, 16},
	{3, 2, 6, 6},
}

// tensors holds seeded input, weight and bias data for a problem.
type tensors struct {
	input, weight, bias []float32
}

// newTensors fills the buffers with tenths in [0, 0.9], the value range of
// the benchmark driver.
func newTensors(rng *rand.Rand, p problem) tensors {
	fill := func(n int) []float32 {
		out := make([]float32, n)
		for i := range out {
			out[i] = float32(rng.IntN(10)) / 10
		}
		return out
	}
	return tensors{
		input:  fill(p.inCh * p.inSize * p.inSize),
		weight: fill(p.outCh * p.inCh * p.k * p.k),
		bias:   fill(p.outCh),
	}
}

func (p problem) newOutput() []float32 {
	return make([]float32, p.outCh*p.outSize()*p.outSize())
}

// referenceConvolve is the textbook definition, accumulated in float64.
func referenceConvolve(p problem, tt tensors) []float32 {
	outSize := p.outSize()
	out := p.newOutput()
	for oc := range p.outCh {
		for r := range outSize {
			for c := range outSize {
				sum := float64(tt.bias[oc])
				for ic := range p.inCh {
					for kr := range p.k {
						for kc := range p.k {
							in := tt.input[(ic*p.inSize+r+kr)*p.inSize+c+kc]
							w := tt.weight[((oc*p.inCh+ic)*p.k+kr)*p.k+kc]
							sum += float64(in) * float64(w)
						}
					}
				}
				out[(oc*outSize+r)*outSize+c] = float32(sum)
			}
		}
	}
	return out
}

// approx compares results of strategies that sum in different orders.
var approx = cmpopts.EquateApprox(1e-5, 1e-6)

func checkClose(t *testing.T, want, got []float32) {
	t.Helper()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func checkIdentical(t *testing.T, want, got []float32) {
	t.Helper()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("[%d] = %v, want %v (bit-identical)", i, got[i], want[i])
		}
	}
}

func filled(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}
