// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package gemm

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/ajroetker/go-convolve/hwy"
	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

// GemmBLAS computes C = A * B with gonum's BLAS (alpha = 1, beta = 0).
//
// gonum blocks and parallelizes differently, so results agree with Gemm only
// within floating-point tolerance. Only float32 and float64 slices are
// supported; other element types return an error wrapping
// layout.ErrInvalidArgument.
func GemmBLAS[T hwy.Floats](a, b, c []T, m, k, n int) error {
	if err := checkArgs(len(a), len(b), len(c), m, k, n); err != nil {
		return err
	}

	switch av := any(a).(type) {
	case []float32:
		bv, cv := any(b).([]float32), any(c).([]float32)
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas32.General{Rows: m, Cols: k, Stride: k, Data: av[:m*k]},
			blas32.General{Rows: k, Cols: n, Stride: n, Data: bv[:k*n]},
			0,
			blas32.General{Rows: m, Cols: n, Stride: n, Data: cv[:m*n]},
		)
	case []float64:
		bv, cv := any(b).([]float64), any(c).([]float64)
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas64.General{Rows: m, Cols: k, Stride: k, Data: av[:m*k]},
			blas64.General{Rows: k, Cols: n, Stride: n, Data: bv[:k*n]},
			0,
			blas64.General{Rows: m, Cols: n, Stride: n, Data: cv[:m*n]},
		)
	default:
		return layout.Invalid("gemm: BLAS supports float32 and float64 only, got %T", a)
	}
	return nil
}
