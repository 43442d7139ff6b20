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

// Package gemm provides the general matrix multiply used by the im2col
// convolution path, C = A * B, with several interchangeable strategies.
//
// All matrices are row-major. Note the argument order follows the
// convolution pipeline, (m, k, n), not the (m, n, k) of most BLAS-style APIs:
//
//	// A is MxK (weights), B is KxN (im2col), C is MxN (output)
//	a := make([]float32, M*K)
//	b := make([]float32, K*N)
//	c := make([]float32, M*N)
//
//	if err := gemm.Gemm(a, b, c, M, K, N); err != nil {
//	    return err
//	}
//
// Strategies:
//   - Gemm: 4x4 register tiles with row/column remainder paths
//   - Gemm1x4: one row at a time, four columns per vector
//   - GemmNaive: the triple loop every other strategy is checked against
//   - GemmBLAS: gonum's BLAS implementation
//   - ParallelGemm: Gemm over row strips on a worker pool
//
// Gemm, Gemm1x4, GemmNaive and ParallelGemm accumulate every element in
// increasing k order, so they produce identical results. GemmBLAS agrees
// within floating-point tolerance.
package gemm
