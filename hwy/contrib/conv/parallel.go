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
	"github.com/ajroetker/go-convolve/hwy/contrib/workerpool"
)

// MinParallelOps is the FLOP count below which the parallel variants run on
// the caller's goroutine.
const MinParallelOps = 1 << 18

// ParallelConvolve is Convolve with output channels split across pool. Each
// worker owns a contiguous range of channels and writes only their planes,
// and per-element summation is unchanged, so the result is identical to
// Convolve. A nil pool runs Convolve directly.
func ParallelConvolve[T hwy.Floats](pool *workerpool.Pool, input, weight, bias, output []T, outChannels, inChannels, kernelSize, outSize, inSize int) error {
	g, err := checkValid(input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize)
	if err != nil {
		return err
	}

	if pool == nil || outChannels == 1 || g.FLOPs() < MinParallelOps {
		convolveChannels(input, weight, bias, output, g, 0, outChannels)
		return nil
	}

	pool.ParallelFor(outChannels, func(start, end int) {
		convolveChannels(input, weight, bias, output, g, start, end)
	})
	return nil
}

// ParallelConvolveIm2col is ConvolveIm2col with the GEMM stage run by
// gemm.ParallelGemm on pool, and the im2col matrix borrowed from ws (which
// may be nil). The result is identical to ConvolveIm2col.
func ParallelConvolveIm2col[T hwy.Floats](pool *workerpool.Pool, ws *Workspace[T], input, weight, bias, output []T, outChannels, inChannels, kernelSize, outSize, inSize int) error {
	mul := func(a, b, c []T, m, k, n int) error {
		return gemm.ParallelGemm(pool, a, b, c, m, k, n)
	}
	return convolveIm2col(ws, input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize, mul)
}
