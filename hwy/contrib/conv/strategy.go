// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package conv

import (
	"github.com/ajroetker/go-convolve/hwy"
	"github.com/ajroetker/go-convolve/hwy/contrib/gemm"
	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

// Strategy names one way of computing a valid convolution.
type Strategy int

const (
	// StrategyDirect is Convolve.
	StrategyDirect Strategy = iota

	// StrategyUnrolled3x3 is Convolve3x3. It supports kernel size 3 only.
	StrategyUnrolled3x3

	// StrategyVectorized is ConvolveVec.
	StrategyVectorized

	// StrategyIm2colGemm is ConvolveIm2col with the 4x4-tiled gemm.Gemm.
	StrategyIm2colGemm

	// StrategyIm2colGemm1x4 is the im2col pipeline with gemm.Gemm1x4.
	StrategyIm2colGemm1x4

	// StrategyIm2colNaive is the im2col pipeline with gemm.GemmNaive.
	StrategyIm2colNaive

	// StrategyIm2colBLAS is the im2col pipeline with gemm.GemmBLAS.
	StrategyIm2colBLAS

	numStrategies
)

var strategyNames = [numStrategies]string{
	StrategyDirect:        "direct",
	StrategyUnrolled3x3:   "unrolled3x3",
	StrategyVectorized:    "vectorized",
	StrategyIm2colGemm:    "im2col-gemm",
	StrategyIm2colGemm1x4: "im2col-gemm1x4",
	StrategyIm2colNaive:   "im2col-naive",
	StrategyIm2colBLAS:    "im2col-blas",
}

// String returns the name accepted by ParseStrategy.
func (s Strategy) String() string {
	if s < 0 || s >= numStrategies {
		return "unknown"
	}
	return strategyNames[s]
}

// ParseStrategy returns the Strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return Strategy(s), nil
		}
	}
	return 0, layout.Invalid("conv: unknown strategy %q", name)
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	out := make([]Strategy, numStrategies)
	for i := range out {
		out[i] = Strategy(i)
	}
	return out
}

// Supports reports whether s can run a kernelSize x kernelSize filter.
func (s Strategy) Supports(kernelSize int) bool {
	if s == StrategyUnrolled3x3 {
		return kernelSize == 3
	}
	return s >= 0 && s < numStrategies
}

// Run computes a valid convolution with strategy s. Arguments are those of
// Convolve.
func Run[T hwy.Floats](s Strategy, input, weight, bias, output []T, outChannels, inChannels, kernelSize, outSize, inSize int) error {
	switch s {
	case StrategyDirect:
		return Convolve(input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize)
	case StrategyUnrolled3x3:
		return Convolve3x3(input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize)
	case StrategyVectorized:
		return ConvolveVec(input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize)
	case StrategyIm2colGemm:
		return convolveIm2col(nil, input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize, gemm.Gemm[T])
	case StrategyIm2colGemm1x4:
		return convolveIm2col(nil, input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize, gemm.Gemm1x4[T])
	case StrategyIm2colNaive:
		return convolveIm2col(nil, input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize, gemm.GemmNaive[T])
	case StrategyIm2colBLAS:
		return convolveIm2col(nil, input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize, gemm.GemmBLAS[T])
	default:
		return layout.Invalid("conv: unknown strategy %d", int(s))
	}
}
