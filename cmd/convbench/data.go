// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"math/rand/v2"
	"time"

	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

// defaultBias is added to every output channel.
const defaultBias = 0.1

// problem is one seeded convolution workload.
type problem struct {
	g      layout.Geometry
	input  []float32
	weight []float32
	bias   []float32
}

// newRNG returns the generator for seed. Each workload gets its own
// generator so runs are reproducible regardless of what ran before.
func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// tenths returns n values drawn from {0, 0.1, ..., 0.9}.
func tenths(rng *rand.Rand, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(rng.IntN(10)) / 10
	}
	return out
}

func newProblem(opts *options) (*problem, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	g := opts.geometry()
	rng := newRNG(opts.seed)

	bias := make([]float32, g.OutChannels)
	for i := range bias {
		bias[i] = defaultBias
	}
	return &problem{
		g:      g,
		input:  tenths(rng, g.Input().Len()),
		weight: tenths(rng, g.Weight().Len()),
		bias:   bias,
	}, nil
}

func (p *problem) newOutput() []float32 {
	return make([]float32, p.g.Output().Len())
}

// timeRuns calls fn repeat times and returns the mean duration of a call.
func timeRuns(repeat int, fn func() error) (time.Duration, error) {
	start := time.Now()
	for range repeat {
		if err := fn(); err != nil {
			return 0, err
		}
	}
	return time.Since(start) / time.Duration(repeat), nil
}

// rate returns ops per second in units of scale (1e9 for GFLOPS).
func rate(ops int64, d time.Duration, scale float64) float64 {
	if d <= 0 {
		return 0
	}
	return float64(ops) / d.Seconds() / scale
}
