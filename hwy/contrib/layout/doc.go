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

// Package layout defines the memory-layout contract shared by every
// convolution kernel.
//
// Feature tensors are channel-major (C, H, W):
//
//	index(c, h, w) = c*H*W + h*W + w
//
// Weight tensors are (Co, Ci, Kh, Kw):
//
//	index(o, i, kh, kw) = ((o*Ci + i)*Kh + kh)*Kw + kw
//
// so a weight tensor is also, without copying, the row-major
// Co x (Ci*Kh*Kw) matrix the GEMM path multiplies by the im2col matrix.
//
// The package also owns the output-size formula and the argument checks
// every kernel performs before touching memory. Checks return errors
// wrapping ErrInvalidArgument or ErrAllocation.
package layout
