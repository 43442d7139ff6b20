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

// Package conv provides multi-channel 2D convolution (cross-correlation)
// kernels built on the hwy Vec4 abstraction and the gemm package.
//
// Tensors are flat row-major slices in the layouts of package layout:
//
//   - input:  [inChannels, inSize, inSize]
//   - weight: [outChannels, inChannels, kernelSize, kernelSize]
//   - bias:   [outChannels] (optional, pass nil to skip)
//   - output: [outChannels, outSize, outSize]
//
// # Strategies
//
// Every strategy computes the same result up to floating-point rounding
// order:
//
//   - Convolve: the direct six-deep loop, the reference for the others
//   - Convolve3x3: fully unrolled 3x3 taps, bit-identical to Convolve
//   - ConvolveVec: taps in 4x4 chunks of Vec4 products, scalar edge chunks
//   - ConvolveIm2col: Im2col, then gemm.Gemm, then AddBias
//   - ConvolveGeneral: padded, strided and dilated im2col pipeline
//   - DilatedConvolve: single-plane dilated convolution with zero padding
//
// Run selects a strategy by Strategy value, and ParallelConvolve splits the
// output channels of the direct kernel over a workerpool.Pool.
//
// # Errors
//
// Precondition violations return errors wrapping layout.ErrInvalidArgument;
// im2col buffers that cannot be allocated return errors wrapping
// layout.ErrAllocation. Kernels never write to output when they return an
// error. Dilated taps that fall outside the input are treated as zeros and
// are not reported.
package conv
