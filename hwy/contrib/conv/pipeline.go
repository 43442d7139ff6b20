// Copyright 2025 go-convolve Authors
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

package conv

import (
	"github.com/ajroetker/go-convolve/hwy"
	"github.com/ajroetker/go-convolve/hwy/contrib/gemm"
	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

// gemmFunc is the signature shared by the gemm strategies.
type gemmFunc[T hwy.Floats] func(a, b, c []T, m, k, n int) error

// fillFunc writes the im2col matrix of input for g into dst.
type fillFunc[T hwy.Floats] func(dst, input []T, g layout.Geometry)

// ConvolveIm2col computes the same valid convolution as Convolve in three
// stages: Im2col, then gemm.Gemm of the weight matrix by the im2col matrix
// straight into output, then AddBias (skipped when bias is nil).
//
// The im2col matrix is allocated for the call and released when it returns.
func ConvolveIm2col[T hwy.Floats](input, weight, bias, output []T, outChannels, inChannels, kernelSize, outSize, inSize int) error {
	return convolveIm2col(nil, input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize, gemm.Gemm[T])
}

// ConvolveIm2colFloat32 is the non-generic version for float32.
func ConvolveIm2colFloat32(input, weight, bias, output []float32, outChannels, inChannels, kernelSize, outSize, inSize int) error {
	return ConvolveIm2col(input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize)
}

// ConvolveGeneral is the im2col pipeline for any geometry: padding, stride
// and dilation are folded into the im2col matrix with Im2colGeneral, which
// is then multiplied by the weight matrix and biased as in ConvolveIm2col.
//
// The output must hold g.Output().Len() elements. ws may be nil.
func ConvolveGeneral[T hwy.Floats](ws *Workspace[T], input, weight, bias, output []T, g layout.Geometry) error {
	g = g.Normalize()
	if err := layout.CheckBuffers(g, input, weight, bias, output); err != nil {
		return err
	}
	return runPipeline(ws, input, weight, bias, output, g, im2colPadded[T], gemm.Gemm[T])
}

func convolveIm2col[T hwy.Floats](ws *Workspace[T], input, weight, bias, output []T, outChannels, inChannels, kernelSize, outSize, inSize int, mul gemmFunc[T]) error {
	g, err := checkValid(input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize)
	if err != nil {
		return err
	}
	return runPipeline(ws, input, weight, bias, output, g, im2colValid[T], mul)
}

// runPipeline runs im2col, GEMM and the bias epilogue for a validated
// geometry.
func runPipeline[T hwy.Floats](ws *Workspace[T], input, weight, bias, output []T, g layout.Geometry, fill fillFunc[T], mul gemmFunc[T]) error {
	rows, cols := g.ColRows(), g.ColCols()
	if err := layout.CheckAlloc("im2col", rows, cols, MaxIm2colElements); err != nil {
		return err
	}

	buf := ws.get(rows * cols)
	defer ws.put(buf)
	col := *buf
	fill(col, input, g)

	m := g.OutChannels
	if err := mul(weight[:m*rows], col, output[:m*cols], m, rows, cols); err != nil {
		return err
	}
	if bias != nil {
		addBias(output, bias, m, cols)
	}
	return nil
}
