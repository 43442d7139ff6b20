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

package hwy

// This file provides the pure Go implementations of the Vec4 operations.
// Every lane operation is written as the plain scalar expression (a*b + c,
// never math.FMA) so that a vectorized kernel rounds exactly like the scalar
// loop it replaces.

// Load4 creates a vector from the first four elements of src.
// src must hold at least four elements.
func Load4[T Floats](src []T) Vec4[T] {
	_ = src[3] // bounds check hint
	return Vec4[T]{src[0], src[1], src[2], src[3]}
}

// Set4 creates a vector with all lanes set to value.
func Set4[T Floats](value T) Vec4[T] {
	return Vec4[T]{value, value, value, value}
}

// Zero4 creates a vector with all lanes set to zero.
func Zero4[T Floats]() Vec4[T] {
	return Vec4[T]{}
}

// Store writes the four lanes to dst.
// dst must hold at least four elements.
func (v Vec4[T]) Store(dst []T) {
	_ = dst[3] // bounds check hint
	dst[0] = v[0]
	dst[1] = v[1]
	dst[2] = v[2]
	dst[3] = v[3]
}

// Add performs element-wise addition.
func (v Vec4[T]) Add(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

// Mul performs element-wise multiplication.
func (v Vec4[T]) Mul(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] * o[0], v[1] * o[1], v[2] * o[2], v[3] * o[3]}
}

// MulAdd computes v*b + c per lane.
func (v Vec4[T]) MulAdd(b, c Vec4[T]) Vec4[T] {
	return Vec4[T]{
		c[0] + v[0]*b[0],
		c[1] + v[1]*b[1],
		c[2] + v[2]*b[2],
		c[3] + v[3]*b[3],
	}
}

// ReduceSum sums all lanes pairwise: (v0+v1) + (v2+v3).
func (v Vec4[T]) ReduceSum() T {
	return (v[0] + v[1]) + (v[2] + v[3])
}

// Add performs element-wise addition.
func Add[T Floats](a, b Vec4[T]) Vec4[T] {
	return a.Add(b)
}

// Mul performs element-wise multiplication.
func Mul[T Floats](a, b Vec4[T]) Vec4[T] {
	return a.Mul(b)
}

// MulAdd computes a*b + c per lane.
func MulAdd[T Floats](a, b, c Vec4[T]) Vec4[T] {
	return a.MulAdd(b, c)
}

// ReduceSum sums all lanes.
func ReduceSum[T Floats](v Vec4[T]) T {
	return v.ReduceSum()
}

// Store writes a vector's lanes to a slice.
func Store[T Floats](v Vec4[T], dst []T) {
	v.Store(dst)
}
