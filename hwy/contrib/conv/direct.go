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

package conv

import (
	"github.com/ajroetker/go-convolve/hwy"
	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

// Convolve computes a valid (stride 1, unpadded) convolution directly:
//
//	output[oc, r, c] = bias[oc] + sum over ic, kr, kc of
//	    input[ic, r+kr, c+kc] * weight[oc, ic, kr, kc]
//
// outSize must equal inSize - kernelSize + 1. Loops run row, column, output
// channel, input channel, kernel row, kernel column, and each output element
// is accumulated in that tap order before the bias is added.
func Convolve[T hwy.Floats](input, weight, bias, output []T, outChannels, inChannels, kernelSize, outSize, inSize int) error {
	g, err := checkValid(input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize)
	if err != nil {
		return err
	}
	convolveChannels(input, weight, bias, output, g, 0, outChannels)
	return nil
}

// ConvolveFloat32 is the non-generic version for float32.
func ConvolveFloat32(input, weight, bias, output []float32, outChannels, inChannels, kernelSize, outSize, inSize int) error {
	return Convolve(input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize)
}

// convolveChannels is Convolve restricted to output channels [ocStart, ocEnd).
func convolveChannels[T hwy.Floats](input, weight, bias, output []T, g layout.Geometry, ocStart, ocEnd int) {
	in, wt, out := g.Input(), g.Weight(), g.Output()
	k := g.KH

	for row := range out.H {
		for col := range out.W {
			for oc := ocStart; oc < ocEnd; oc++ {
				var temp T
				for ic := range g.InChannels {
					for kr := range k {
						inRow := input[in.Index(ic, row+kr, col):]
						wRow := weight[wt.Index(oc, ic, kr, 0):]
						for kc := range k {
							temp += inRow[kc] * wRow[kc]
						}
					}
				}
				output[out.Index(oc, row, col)] = temp + biasAt(bias, oc)
			}
		}
	}
}

// Convolve3x3 is Convolve with the nine taps of a 3x3 kernel written out.
// It adds the taps in the same order as Convolve, so the two agree bit for
// bit. kernelSize must be 3.
func Convolve3x3[T hwy.Floats](input, weight, bias, output []T, outChannels, inChannels, kernelSize, outSize, inSize int) error {
	if kernelSize != 3 {
		return layout.Invalid("conv: Convolve3x3 needs kernel size 3, got %d", kernelSize)
	}
	g, err := checkValid(input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize)
	if err != nil {
		return err
	}

	in, wt, out := g.Input(), g.Weight(), g.Output()
	for row := range out.H {
		for col := range out.W {
			for oc := range outChannels {
				var temp T
				for ic := range inChannels {
					i0 := input[in.Index(ic, row, col):]
					i1 := input[in.Index(ic, row+1, col):]
					i2 := input[in.Index(ic, row+2, col):]
					w := weight[wt.Index(oc, ic, 0, 0):]
					_ = w[8]

					temp += i0[0] * w[0]
					temp += i0[1] * w[1]
					temp += i0[2] * w[2]
					temp += i1[0] * w[3]
					temp += i1[1] * w[4]
					temp += i1[2] * w[5]
					temp += i2[0] * w[6]
					temp += i2[1] * w[7]
					temp += i2[2] * w[8]
				}
				output[out.Index(oc, row, col)] = temp + biasAt(bias, oc)
			}
		}
	}
	return nil
}

// ConvolveVec is Convolve with the taps of each (output, input) channel pair
// walked in 4x4 chunks. A full chunk loads four input rows and four kernel
// rows as Vec4s, forms their products, combines them as (p0+p1)+(p2+p3),
// reduces the lanes and adds the result to the running sum. Chunks cut short
// by the kernel edge (kernel sizes that are not a multiple of 4) are added
// one tap at a time.
//
// The chunked summation order differs from Convolve, so results agree to
// floating-point tolerance rather than exactly.
func ConvolveVec[T hwy.Floats](input, weight, bias, output []T, outChannels, inChannels, kernelSize, outSize, inSize int) error {
	g, err := checkValid(input, weight, bias, output, outChannels, inChannels, kernelSize, outSize, inSize)
	if err != nil {
		return err
	}

	in, wt, out := g.Input(), g.Weight(), g.Output()
	k := kernelSize
	for row := range out.H {
		for col := range out.W {
			for oc := range outChannels {
				var temp T
				for ic := range inChannels {
					for kr := 0; kr < k; kr += hwy.Lanes {
						rows := min(hwy.Lanes, k-kr)
						for kc := 0; kc < k; kc += hwy.Lanes {
							cols := min(hwy.Lanes, k-kc)

							if rows == hwy.Lanes && cols == hwy.Lanes {
								p0 := hwy.Load4(input[in.Index(ic, row+kr, col+kc):]).Mul(hwy.Load4(weight[wt.Index(oc, ic, kr, kc):]))
								p1 := hwy.Load4(input[in.Index(ic, row+kr+1, col+kc):]).Mul(hwy.Load4(weight[wt.Index(oc, ic, kr+1, kc):]))
								p2 := hwy.Load4(input[in.Index(ic, row+kr+2, col+kc):]).Mul(hwy.Load4(weight[wt.Index(oc, ic, kr+2, kc):]))
								p3 := hwy.Load4(input[in.Index(ic, row+kr+3, col+kc):]).Mul(hwy.Load4(weight[wt.Index(oc, ic, kr+3, kc):]))
								temp += p0.Add(p1).Add(p2.Add(p3)).ReduceSum()
								continue
							}

							// Partial chunk at the kernel edge
							for r := range rows {
								for c := range cols {
									temp += input[in.Index(ic, row+kr+r, col+kc+c)] * weight[wt.Index(oc, ic, kr+r, kc+c)]
								}
							}
						}
					}
				}
				output[out.Index(oc, row, col)] = temp + biasAt(bias, oc)
			}
		}
	}
	return nil
}

// checkValid validates the arguments of the valid-convolution kernels and
// returns their geometry.
func checkValid[T hwy.Floats](input, weight, bias, output []T, outChannels, inChannels, kernelSize, outSize, inSize int) (layout.Geometry, error) {
	err := layout.CheckPositive("out channels,in channels,kernel size,output size,input size",
		outChannels, inChannels, kernelSize, outSize, inSize)
	if err != nil {
		return layout.Geometry{}, err
	}
	if want := inSize - kernelSize + 1; outSize != want {
		return layout.Geometry{}, layout.Invalid("conv: output size %d does not match input %d and kernel %d, want %d",
			outSize, inSize, kernelSize, want)
	}
	g := layout.Valid(inChannels, outChannels, kernelSize, inSize)
	if err := layout.CheckBuffers(g, input, weight, bias, output); err != nil {
		return layout.Geometry{}, err
	}
	return g, nil
}

// biasAt returns bias[oc], or zero when no bias is given.
func biasAt[T hwy.Floats](bias []T, oc int) T {
	if bias == nil {
		return 0
	}
	return bias[oc]
}
