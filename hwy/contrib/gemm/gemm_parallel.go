// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package gemm

import (
	"github.com/ajroetker/go-convolve/hwy"
	"github.com/ajroetker/go-convolve/hwy/contrib/workerpool"
)

// MinParallelOps is the M*N*K below which ParallelGemm runs on the caller's
// goroutine.
const MinParallelOps = 64 * 64 * 64

// ParallelGemm computes C = A * B, splitting the rows of C into strips that
// run concurrently on pool. Strip boundaries fall on multiples of TileSize,
// so each strip tiles exactly as the corresponding rows would in Gemm and
// the result is identical to Gemm.
//
// A nil pool, or a product smaller than MinParallelOps, runs Gemm directly.
func ParallelGemm[T hwy.Floats](pool *workerpool.Pool, a, b, c []T, m, k, n int) error {
	if err := checkArgs(len(a), len(b), len(c), m, k, n); err != nil {
		return err
	}
	if pool == nil || m*n*k < MinParallelOps || m <= TileSize {
		blockedGemm(a, b, c, m, k, n)
		return nil
	}

	pool.ParallelForAligned(m, TileSize, func(start, end int) {
		blockedGemm(a[start*k:end*k], b, c[start*n:end*n], end-start, k, n)
	})
	return nil
}
