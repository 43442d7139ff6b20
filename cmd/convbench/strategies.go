// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/samber/lo"

	"github.com/ajroetker/go-convolve/hwy/contrib/conv"
	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
	"github.com/ajroetker/go-convolve/hwy/contrib/workerpool"
)

// Names of the pool-backed variants, which have no conv.Strategy value.
const (
	parallelDirect = "parallel-direct"
	parallelIm2col = "parallel-im2col-gemm"
)

// variant is one runnable convolution: a conv.Strategy or a parallel
// wrapper around one.
type variant struct {
	name string
	// supports reports whether the variant handles a kernel size.
	supports func(kernel int) bool
	run      func(p *problem, output []float32) error
}

// variants lists every strategy followed by the parallel wrappers, which run
// on pool (nil runs them on the caller's goroutine).
func variants(pool *workerpool.Pool) []variant {
	out := lo.Map(conv.Strategies(), func(s conv.Strategy, _ int) variant {
		return variant{
			name:     s.String(),
			supports: s.Supports,
			run: func(p *problem, output []float32) error {
				g := p.g
				return conv.Run(s, p.input, p.weight, p.bias, output, g.OutChannels, g.InChannels, g.KH, g.OutH(), g.InH)
			},
		}
	})

	ws := conv.NewWorkspace[float32]()
	always := func(int) bool { return true }
	return append(out,
		variant{
			name:     parallelDirect,
			supports: always,
			run: func(p *problem, output []float32) error {
				g := p.g
				return conv.ParallelConvolve(pool, p.input, p.weight, p.bias, output, g.OutChannels, g.InChannels, g.KH, g.OutH(), g.InH)
			},
		},
		variant{
			name:     parallelIm2col,
			supports: always,
			run: func(p *problem, output []float32) error {
				g := p.g
				return conv.ParallelConvolveIm2col(pool, ws, p.input, p.weight, p.bias, output, g.OutChannels, g.InChannels, g.KH, g.OutH(), g.InH)
			},
		},
	)
}

// findVariant returns the variant called name.
func findVariant(vs []variant, name string) (variant, error) {
	v, ok := lo.Find(vs, func(v variant) bool { return v.name == name })
	if !ok {
		return variant{}, layout.Invalid("unknown strategy %q (see convbench list)", name)
	}
	return v, nil
}

// variantNames returns the names of vs.
func variantNames(vs []variant) []string {
	return lo.Map(vs, func(v variant, _ int) string { return v.name })
}

// newPool returns a pool of the requested size, or nil for one worker.
func newPool(workers int) *workerpool.Pool {
	if workers == 1 {
		return nil
	}
	return workerpool.New(workers)
}
