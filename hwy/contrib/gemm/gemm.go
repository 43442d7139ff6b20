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

package gemm

import (
	"github.com/ajroetker/go-convolve/hwy"
	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

// TileSize is the edge of the register tile: 4 rows of A by 4 columns of B,
// one Vec4 of accumulators per tile row.
const TileSize = hwy.Lanes

// Gemm computes C = A * B using 4x4 register tiling.
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major), overwritten
//
// Rows are processed in blocks of 4 up to M - M%4 and, within each block,
// columns in blocks of 4 up to N - N%4. Each tile keeps its 16 partial sums
// in registers across the full K dimension, so every loaded A value is used
// four times and every loaded B value four times.
//
// Remainders are handled in this order:
//  1. trailing columns of each full row block, one element at a time;
//  2. trailing rows, over the full N range.
//
// Every element, tiled or not, is summed in increasing k order.
func Gemm[T hwy.Floats](a, b, c []T, m, k, n int) error {
	if err := checkArgs(len(a), len(b), len(c), m, k, n); err != nil {
		return err
	}
	blockedGemm(a, b, c, m, k, n)
	return nil
}

// GemmFloat32 is the non-generic version for float32.
func GemmFloat32(a, b, c []float32, m, k, n int) error {
	return Gemm(a, b, c, m, k, n)
}

// GemmFloat64 is the non-generic version for float64.
func GemmFloat64(a, b, c []float64, m, k, n int) error {
	return Gemm(a, b, c, m, k, n)
}

func checkArgs(lenA, lenB, lenC, m, k, n int) error {
	if err := layout.CheckPositive("m,k,n", m, k, n); err != nil {
		return err
	}
	if err := layout.CheckLen("A", lenA, m*k); err != nil {
		return err
	}
	if err := layout.CheckLen("B", lenB, k*n); err != nil {
		return err
	}
	return layout.CheckLen("C", lenC, m*n)
}

// blockedGemm is Gemm without argument checks.
func blockedGemm[T hwy.Floats](a, b, c []T, m, k, n int) {
	mBlocked := hwy.BlockedLen(m)
	nBlocked := hwy.BlockedLen(n)
	vectorized := hwy.Vectorized()

	var i int
	for i = 0; i < mBlocked; i += TileSize {
		var j int
		for j = 0; j < nBlocked; j += TileSize {
			if vectorized {
				tileVec4(a, b, c, i, j, k, n)
			} else {
				tileScalar(a, b, c, i, j, k, n)
			}
		}

		// Handle remaining columns (N not a multiple of 4)
		for ; j < n; j++ {
			for r := 0; r < TileSize && i+r < m; r++ {
				c[(i+r)*n+j] = dot(a[(i+r)*k:(i+r+1)*k], b, j, n)
			}
		}
	}

	// Handle remaining rows (M not a multiple of 4) across all of N
	for ; i < m; i++ {
		aRow := a[i*k : (i+1)*k]
		for j := 0; j < n; j++ {
			c[i*n+j] = dot(aRow, b, j, n)
		}
	}
}

// tileVec4 computes the 4x4 tile of C at (i, j) with one Vec4 accumulator
// per tile row: at each p, broadcast A[i+r, p] and multiply by B[p, j:j+4].
func tileVec4[T hwy.Floats](a, b, c []T, i, j, k, n int) {
	a0 := a[i*k : (i+1)*k]
	a1 := a[(i+1)*k : (i+2)*k]
	a2 := a[(i+2)*k : (i+3)*k]
	a3 := a[(i+3)*k : (i+4)*k]

	acc0 := hwy.Zero4[T]()
	acc1 := hwy.Zero4[T]()
	acc2 := hwy.Zero4[T]()
	acc3 := hwy.Zero4[T]()

	for p := range k {
		vB := hwy.Load4(b[p*n+j:])

		acc0 = hwy.Set4(a0[p]).MulAdd(vB, acc0)
		acc1 = hwy.Set4(a1[p]).MulAdd(vB, acc1)
		acc2 = hwy.Set4(a2[p]).MulAdd(vB, acc2)
		acc3 = hwy.Set4(a3[p]).MulAdd(vB, acc3)
	}

	acc0.Store(c[i*n+j:])
	acc1.Store(c[(i+1)*n+j:])
	acc2.Store(c[(i+2)*n+j:])
	acc3.Store(c[(i+3)*n+j:])
}

// tileScalar is tileVec4 with 16 named scalar accumulators, used in scalar
// dispatch mode.
func tileScalar[T hwy.Floats](a, b, c []T, i, j, k, n int) {
	var (
		c00, c01, c02, c03 T
		c10, c11, c12, c13 T
		c20, c21, c22, c23 T
		c30, c31, c32, c33 T
	)

	for p := range k {
		a0 := a[i*k+p]
		a1 := a[(i+1)*k+p]
		a2 := a[(i+2)*k+p]
		a3 := a[(i+3)*k+p]

		bRow := b[p*n+j : p*n+j+4]
		b0, b1, b2, b3 := bRow[0], bRow[1], bRow[2], bRow[3]

		c00 += a0 * b0
		c01 += a0 * b1
		c02 += a0 * b2
		c03 += a0 * b3

		c10 += a1 * b0
		c11 += a1 * b1
		c12 += a1 * b2
		c13 += a1 * b3

		c20 += a2 * b0
		c21 += a2 * b1
		c22 += a2 * b2
		c23 += a2 * b3

		c30 += a3 * b0
		c31 += a3 * b1
		c32 += a3 * b2
		c33 += a3 * b3
	}

	row := c[i*n+j:]
	row[0], row[1], row[2], row[3] = c00, c01, c02, c03
	row = c[(i+1)*n+j:]
	row[0], row[1], row[2], row[3] = c10, c11, c12, c13
	row = c[(i+2)*n+j:]
	row[0], row[1], row[2], row[3] = c20, c21, c22, c23
	row = c[(i+3)*n+j:]
	row[0], row[1], row[2], row[3] = c30, c31, c32, c33
}

// dot returns sum over p of aRow[p] * B[p, j], in increasing p.
func dot[T hwy.Floats](aRow, b []T, j, n int) T {
	var sum T
	for p, av := range aRow {
		sum += av * b[p*n+j]
	}
	return sum
}
