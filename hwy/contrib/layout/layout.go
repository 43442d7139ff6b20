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

// Index3 returns the flat offset of (c, h, w) in a (C, H, W) feature tensor.
func Index3(c, h, w, height, width int) int {
	return c*height*width + h*width + w
}

// Index4 returns the flat offset of (o, i, kh, kw) in an (O, I, KH, KW)
// weight tensor.
func Index4(o, i, kh, kw, inChannels, kernelH, kernelW int) int {
	return ((o*inChannels+i)*kernelH+kh)*kernelW + kw
}

// Shape3 is the shape of a channel-major feature tensor.
type Shape3 struct {
	C, H, W int
}

// Index returns the flat offset of (c, h, w).
func (s Shape3) Index(c, h, w int) int {
	return Index3(c, h, w, s.H, s.W)
}

// Plane returns the number of elements in one channel, H*W.
func (s Shape3) Plane() int {
	return s.H * s.W
}

// Len returns the total number of elements, C*H*W.
func (s Shape3) Len() int {
	return s.C * s.H * s.W
}

// Shape4 is the shape of a convolution weight tensor.
type Shape4 struct {
	O, I, KH, KW int
}

// Index returns the flat offset of (o, i, kh, kw).
func (s Shape4) Index(o, i, kh, kw int) int {
	return Index4(o, i, kh, kw, s.I, s.KH, s.KW)
}

// Row returns I*KH*KW: the length of one output channel's filter, which is
// also the K dimension of the weight-as-matrix view.
func (s Shape4) Row() int {
	return s.I * s.KH * s.KW
}

// Len returns the total number of elements, O*I*KH*KW.
func (s Shape4) Len() int {
	return s.O * s.Row()
}

// EffectiveKernel returns the footprint of a dilated kernel,
// (kernelSize-1)*dilation + 1.
func EffectiveKernel(kernelSize, dilation int) int {
	return (kernelSize-1)*dilation + 1
}

// OutputSize returns the number of output positions along one spatial axis:
//
//	floor((inputSize + 2*padding - ((kernelSize-1)*dilation + 1)) / stride) + 1
//
// Callers use it to size output buffers. A result <= 0 means the kernel
// does not fit; Geometry.Validate reports that as an error.
func OutputSize(inputSize, kernelSize, dilation, stride, padding int) int {
	span := inputSize + 2*padding - EffectiveKernel(kernelSize, dilation)
	if span < 0 {
		// Go division truncates toward zero; floor explicitly so that
		// kernels larger than the padded input yield a non-positive size.
		return (span-stride+1)/stride + 1
	}
	return span/stride + 1
}
