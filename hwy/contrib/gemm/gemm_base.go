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

import "github.com/ajroetker/go-convolve/hwy"

// GemmNaive computes C = A * B with the plain triple loop:
// C[i,j] = sum(A[i,p] * B[p,j]) for p in 0..K-1.
// It is the reference the other strategies are checked against.
func GemmNaive[T hwy.Floats](a, b, c []T, m, k, n int) error {
	if err := checkArgs(len(a), len(b), len(c), m, k, n); err != nil {
		return err
	}
	for i := range m {
		aRow := a[i*k : (i+1)*k]
		for j := range n {
			c[i*n+j] = dot(aRow, b, j, n)
		}
	}
	return nil
}

// Gemm1x4 computes C = A * B one row of A at a time, producing four columns
// of C per Vec4 accumulator. Trailing columns (N not a multiple of 4) are
// computed one element at a time.
//
// Each loaded B vector is used once, which makes Gemm1x4 the baseline that
// Gemm's 4x4 tiles improve on.
func Gemm1x4[T hwy.Floats](a, b, c []T, m, k, n int) error {
	if err := checkArgs(len(a), len(b), len(c), m, k, n); err != nil {
		return err
	}

	nBlocked := hwy.BlockedLen(n)
	for i := range m {
		aRow := a[i*k : (i+1)*k]
		cRow := c[i*n : (i+1)*n]

		var j int
		for j = 0; j < nBlocked; j += hwy.Lanes {
			acc := hwy.Zero4[T]()
			for p, av := range aRow {
				acc = hwy.Set4(av).MulAdd(hwy.Load4(b[p*n+j:]), acc)
			}
			acc.Store(cRow[j:])
		}

		// Handle remaining columns
		for ; j < n; j++ {
			cRow[j] = dot(aRow, b, j, n)
		}
	}
	return nil
}
