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

// DilatedConvolve computes a single-plane dilated convolution with stride
// and implicit zero padding:
//
//	output[y, x] = sum over kr, kc of
//	    input[y*stride - padding + kr*dilation, x*stride - padding + kc*dilation] * kernel[kr, kc]
//
// Taps that fall outside the h x w input contribute nothing. outH and outW
// must equal layout.OutputSize for the given parameters. The output is
// overwritten. A 3x3 kernel takes the DilatedConvolve3x3 path.
func DilatedConvolve[T hwy.Floats](input []T, h, w int, kernel []T, kh, kw int, output []T, outH, outW, dilation, stride, padding int) error {
	g := planeGeometry(h, w, kh, kw, dilation, stride, padding)
	if err := checkPlane(g, input, kernel, output, outH, outW); err != nil {
		return err
	}
	clear(output[:outH*outW])
	dilatedAccumulate(input, kernel, output, g)
	return nil
}

// DilatedConvolve3x3 is DilatedConvolve for a 3x3 kernel with the nine taps
// held in locals. It produces the same values as the general path.
func DilatedConvolve3x3[T hwy.Floats](input []T, h, w int, kernel []T, output []T, outH, outW, dilation, stride, padding int) error {
	g := planeGeometry(h, w, 3, 3, dilation, stride, padding)
	if err := checkPlane(g, input, kernel, output, outH, outW); err != nil {
		return err
	}
	clear(output[:outH*outW])
	dilated3x3(input, kernel, output, g)
	return nil
}

// DilatedConvolveMulti applies DilatedConvolve across channels: for every
// output channel it accumulates the plane convolution of each input channel
// with the matching kernel plane of weight, then adds bias (nil for none).
//
// Tensors use the layouts of the valid-convolution kernels with the output
// sized by g.OutH and g.OutW.
func DilatedConvolveMulti[T hwy.Floats](input, weight, bias, output []T, g layout.Geometry) error {
	g = g.Normalize()
	if err := layout.CheckBuffers(g, input, weight, bias, output); err != nil {
		return err
	}

	in, wt, out := g.Input(), g.Weight(), g.Output()
	plane := planeGeometry(g.InH, g.InW, g.KH, g.KW, g.Dilation, g.Stride, g.Padding)
	kernelLen := g.KH * g.KW

	for oc := range g.OutChannels {
		dst := output[out.Index(oc, 0, 0):][:out.Plane()]
		clear(dst)
		for ic := range g.InChannels {
			src := input[in.Index(ic, 0, 0):][:in.Plane()]
			kernel := weight[wt.Index(oc, ic, 0, 0):][:kernelLen]
			dilatedAccumulate(src, kernel, dst, plane)
		}
		if b := biasAt(bias, oc); b != 0 {
			for i := range dst {
				dst[i] += b
			}
		}
	}
	return nil
}

func planeGeometry(h, w, kh, kw, dilation, stride, padding int) layout.Geometry {
	return layout.Geometry{
		InChannels:  1,
		OutChannels: 1,
		InH:         h,
		InW:         w,
		KH:          kh,
		KW:          kw,
		Stride:      stride,
		Padding:     padding,
		Dilation:    dilation,
	}
}

// checkPlane validates a single-plane geometry, the caller's declared output
// size, and the buffer lengths.
func checkPlane[T hwy.Floats](g layout.Geometry, input, kernel, output []T, outH, outW int) error {
	err := layout.CheckPositive("input height,input width,kernel height,kernel width,output height,output width,dilation,stride",
		g.InH, g.InW, g.KH, g.KW, outH, outW, g.Dilation, g.Stride)
	if err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	if outH != g.OutH() || outW != g.OutW() {
		return layout.Invalid("conv: output %dx%d does not match computed %dx%d", outH, outW, g.OutH(), g.OutW())
	}
	return layout.CheckBuffers(g, input, kernel, nil, output)
}

// dilatedAccumulate adds the dilated convolution of one input plane with one
// kernel plane to output. g must be normalized and validated.
func dilatedAccumulate[T hwy.Floats](input, kernel, output []T, g layout.Geometry) {
	if g.KH == 3 && g.KW == 3 {
		dilated3x3(input, kernel, output, g)
		return
	}
	dilatedGeneric(input, kernel, output, g)
}

func dilatedGeneric[T hwy.Floats](input, kernel, output []T, g layout.Geometry) {
	outH, outW := g.OutH(), g.OutW()
	for y := range outH {
		anchorY := y*g.Stride - g.Padding
		for x := range outW {
			anchorX := x*g.Stride - g.Padding
			var sum T
			for kr := range g.KH {
				iy := anchorY + kr*g.Dilation
				if iy < 0 || iy >= g.InH {
					continue
				}
				inRow := input[iy*g.InW : (iy+1)*g.InW]
				kRow := kernel[kr*g.KW : (kr+1)*g.KW]
				for kc, kv := range kRow {
					ix := anchorX + kc*g.Dilation
					if ix < 0 || ix >= g.InW {
						continue
					}
					sum += inRow[ix] * kv
				}
			}
			output[y*outW+x] += sum
		}
	}
}

// dilated3x3 is dilatedGeneric for a 3x3 kernel. Taps are visited in the
// same order, so results match the general loop exactly.
func dilated3x3[T hwy.Floats](input, kernel, output []T, g layout.Geometry) {
	_ = kernel[8]
	k00, k01, k02 := kernel[0], kernel[1], kernel[2]
	k10, k11, k12 := kernel[3], kernel[4], kernel[5]
	k20, k21, k22 := kernel[6], kernel[7], kernel[8]

	h, w, d := g.InH, g.InW, g.Dilation
	outH, outW := g.OutH(), g.OutW()

	// tap returns input[y, x], or false when (y, x) is padding.
	tap := func(y, x int) (T, bool) {
		if y < 0 || y >= h || x < 0 || x >= w {
			return 0, false
		}
		return input[y*w+x], true
	}

	for y := range outH {
		y0 := y*g.Stride - g.Padding
		y1, y2 := y0+d, y0+2*d
		for x := range outW {
			x0 := x*g.Stride - g.Padding
			x1, x2 := x0+d, x0+2*d

			var sum T
			if v, ok := tap(y0, x0); ok {
				sum += v * k00
			}
			if v, ok := tap(y0, x1); ok {
				sum += v * k01
			}
			if v, ok := tap(y0, x2); ok {
				sum += v * k02
			}
			if v, ok := tap(y1, x0); ok {
				sum += v * k10
			}
			if v, ok := tap(y1, x1); ok {
				sum += v * k11
			}
			if v, ok := tap(y1, x2); ok {
				sum += v * k12
			}
			if v, ok := tap(y2, x0); ok {
				sum += v * k20
			}
			if v, ok := tap(y2, x1); ok {
				sum += v * k21
			}
			if v, ok := tap(y2, x2); ok {
				sum += v * k22
			}
			output[y*outW+x] += sum
		}
	}
}
