// Package hwy provides the portable 4-lane vector abstraction the convolution
// kernels are written against, together with runtime CPU dispatch.
//
// Kernels express their innermost multiply-accumulate as operations over a
// Vec4, a 128-bit style vector of four lanes (four float32 fill one SSE or
// NEON register). The compiler maps the fixed-size lane loops onto hardware
// lanes where it can; the algorithms never depend on that.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-convolve/hwy"
//
//	a := hwy.Load4(data1)
//	b := hwy.Load4(data2)
//	acc := a.MulAdd(b, hwy.Zero4[float32]())
//	acc.Store(output)
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// Lanes is the number of lanes in a Vec4.
const Lanes = 4

// Vec4 is a vector of four lanes.
//
// Vec4 is a value type: operations return new vectors and never alias the
// slices they were loaded from.
type Vec4[T Floats] [Lanes]T

// NumLanes returns the number of lanes in this vector.
func (v Vec4[T]) NumLanes() int {
	return Lanes
}

// Data returns the lanes as a slice.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec4[T]) Data() []T {
	return v[:]
}
