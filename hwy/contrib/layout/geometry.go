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

package layout

// Geometry describes one convolution: input, filter and the
// stride/padding/dilation that map them to the output.
//
// Stride and Dilation of 0 are treated as 1 by Normalize; Validate
// rejects negative values.
type Geometry struct {
	InChannels  int
	OutChannels int

	InH, InW int
	KH, KW   int

	Stride   int
	Padding  int
	Dilation int
}

// Valid returns the square valid-convolution geometry (stride 1, no
// padding, no dilation) used by the direct and im2col engines.
func Valid(inChannels, outChannels, kernelSize, inSize int) Geometry {
	return Geometry{
		InChannels:  inChannels,
		OutChannels: outChannels,
		InH:         inSize,
		InW:         inSize,
		KH:          kernelSize,
		KW:          kernelSize,
		Stride:      1,
		Dilation:    1,
	}
}

// Normalize returns a copy with zero Stride and Dilation set to 1.
func (g Geometry) Normalize() Geometry {
	if g.Stride == 0 {
		g.Stride = 1
	}
	if g.Dilation == 0 {
		g.Dilation = 1
	}
	return g
}

// Validate checks that every dimension is positive, padding is not
// negative, and the kernel fits the padded input.
func (g Geometry) Validate() error {
	g = g.Normalize()
	if err := CheckPositive("in channels,out channels,input height,input width,kernel height,kernel width,stride,dilation",
		g.InChannels, g.OutChannels, g.InH, g.InW, g.KH, g.KW, g.Stride, g.Dilation); err != nil {
		return err
	}
	if g.Padding < 0 {
		return Invalid("padding must not be negative, got %d", g.Padding)
	}
	if g.OutH() <= 0 || g.OutW() <= 0 {
		return Invalid("kernel %dx%d (dilation %d) does not fit %dx%d input with padding %d",
			g.KH, g.KW, g.Dilation, g.InH, g.InW, g.Padding)
	}
	return nil
}

// OutH returns the output height.
func (g Geometry) OutH() int {
	g = g.Normalize()
	return OutputSize(g.InH, g.KH, g.Dilation, g.Stride, g.Padding)
}

// OutW returns the output width.
func (g Geometry) OutW() int {
	g = g.Normalize()
	return OutputSize(g.InW, g.KW, g.Dilation, g.Stride, g.Padding)
}

// Input returns the input tensor shape.
func (g Geometry) Input() Shape3 {
	return Shape3{C: g.InChannels, H: g.InH, W: g.InW}
}

// Weight returns the weight tensor shape.
func (g Geometry) Weight() Shape4 {
	return Shape4{O: g.OutChannels, I: g.InChannels, KH: g.KH, KW: g.KW}
}

// Output returns the output tensor shape.
func (g Geometry) Output() Shape3 {
	return Shape3{C: g.OutChannels, H: g.OutH(), W: g.OutW()}
}

// ColRows returns the number of rows of the im2col matrix, Ci*KH*KW.
func (g Geometry) ColRows() int {
	return g.Weight().Row()
}

// ColCols returns the number of columns of the im2col matrix, OutH*OutW.
func (g Geometry) ColCols() int {
	return g.Output().Plane()
}

// IsValidConv reports whether g is a stride-1, unpadded, undilated
// convolution.
func (g Geometry) IsValidConv() bool {
	g = g.Normalize()
	return g.Stride == 1 && g.Padding == 0 && g.Dilation == 1
}

// FLOPs returns the number of floating-point operations (one multiply and
// one add per tap) needed to compute the whole output.
func (g Geometry) FLOPs() int64 {
	return int64(g.OutChannels) * int64(g.OutH()) * int64(g.OutW()) *
		int64(g.InChannels) * int64(g.KH) * int64(g.KW) * 2
}

// CheckBuffers validates g and the lengths of the caller's buffers.
// bias may be nil when the caller adds no bias.
func CheckBuffers[T any](g Geometry, input, weight, bias, output []T) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if err := CheckLen("input", len(input), g.Input().Len()); err != nil {
		return err
	}
	if err := CheckLen("weight", len(weight), g.Weight().Len()); err != nil {
		return err
	}
	if bias != nil {
		if err := CheckLen("bias", len(bias), g.OutChannels); err != nil {
			return err
		}
	}
	return CheckLen("output", len(output), g.Output().Len())
}
