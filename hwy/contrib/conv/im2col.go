// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package conv

import (
	"github.com/ajroetker/go-convolve/hwy"
	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

// MaxIm2colElements is the largest im2col matrix, in elements, that Im2col
// and the im2col pipelines will allocate. Larger requests fail with
// layout.ErrAllocation.
const MaxIm2colElements = 1 << 30

// Im2col unrolls the receptive fields of a valid convolution into a newly
// allocated (inChannels*kernelSize^2) x (outSize^2) row-major matrix.
//
// Row (ic*kernelSize + kr)*kernelSize + kc holds, for every output position
// (oh, ow) in row-major order, input[ic, oh+kr, ow+kc]. Multiplying the
// weight tensor, viewed as an outChannels x (inChannels*kernelSize^2) matrix,
// by this matrix yields the convolution output without bias.
//
// A matrix that would exceed MaxIm2colElements returns an error wrapping
// layout.ErrAllocation and no buffer.
func Im2col[T hwy.Floats](input []T, inChannels, inSize, kernelSize, outSize int) ([]T, error) {
	g, err := im2colGeometry(inChannels, inSize, kernelSize, outSize)
	if err != nil {
		return nil, err
	}
	if err := layout.CheckAlloc("im2col", g.ColRows(), g.ColCols(), MaxIm2colElements); err != nil {
		return nil, err
	}
	if err := layout.CheckLen("input", len(input), g.Input().Len()); err != nil {
		return nil, err
	}

	col := make([]T, g.ColRows()*g.ColCols())
	im2colValid(col, input, g)
	return col, nil
}

// Im2colInto is Im2col writing into the caller's dst, which must hold at
// least (inChannels*kernelSize^2) * outSize^2 elements.
func Im2colInto[T hwy.Floats](dst, input []T, inChannels, inSize, kernelSize, outSize int) error {
	g, err := im2colGeometry(inChannels, inSize, kernelSize, outSize)
	if err != nil {
		return err
	}
	if err := layout.CheckLen("input", len(input), g.Input().Len()); err != nil {
		return err
	}
	if err := layout.CheckLen("im2col", len(dst), g.ColRows()*g.ColCols()); err != nil {
		return err
	}
	im2colValid(dst, input, g)
	return nil
}

// Im2colGeneral is Im2colInto for any geometry: the column for output
// position (oh, ow) and row (ic, kr, kc) holds the input at
// (oh*stride - padding + kr*dilation, ow*stride - padding + kc*dilation),
// or zero where that position lies in the padding.
//
// dst must hold g.ColRows() * g.ColCols() elements.
func Im2colGeneral[T hwy.Floats](dst, input []T, g layout.Geometry) error {
	g = g.Normalize()
	if err := g.Validate(); err != nil {
		return err
	}
	if err := layout.CheckLen("input", len(input), g.Input().Len()); err != nil {
		return err
	}
	if err := layout.CheckLen("im2col", len(dst), g.ColRows()*g.ColCols()); err != nil {
		return err
	}
	im2colPadded(dst, input, g)
	return nil
}

func im2colGeometry(inChannels, inSize, kernelSize, outSize int) (layout.Geometry, error) {
	err := layout.CheckPositive("in channels,input size,kernel size,output size",
		inChannels, inSize, kernelSize, outSize)
	if err != nil {
		return layout.Geometry{}, err
	}
	if want := inSize - kernelSize + 1; outSize != want {
		return layout.Geometry{}, layout.Invalid("conv: output size %d does not match input %d and kernel %d, want %d",
			outSize, inSize, kernelSize, want)
	}
	// Output channels do not shape the im2col matrix.
	return layout.Valid(inChannels, 1, kernelSize, inSize), nil
}

// im2colValid fills dst for a stride-1, unpadded geometry. Each (row, oh)
// segment is a contiguous run of the input row, so it is copied whole.
func im2colValid[T hwy.Floats](dst, input []T, g layout.Geometry) {
	in := g.Input()
	outH, outW := g.OutH(), g.OutW()
	cols := outH * outW

	row := 0
	for ic := range g.InChannels {
		for kr := range g.KH {
			for kc := range g.KW {
				dstRow := dst[row*cols : (row+1)*cols]
				for oh := range outH {
					copy(dstRow[oh*outW:(oh+1)*outW], input[in.Index(ic, oh+kr, kc):])
				}
				row++
			}
		}
	}
}

// im2colPadded fills dst for a normalized, validated geometry, writing zeros
// for taps in the padding.
func im2colPadded[T hwy.Floats](dst, input []T, g layout.Geometry) {
	in := g.Input()
	outH, outW := g.OutH(), g.OutW()
	cols := outH * outW

	row := 0
	for ic := range g.InChannels {
		for kr := range g.KH {
			for kc := range g.KW {
				dstRow := dst[row*cols : (row+1)*cols]
				for oh := range outH {
					out := dstRow[oh*outW : (oh+1)*outW]
					iy := oh*g.Stride - g.Padding + kr*g.Dilation
					if iy < 0 || iy >= g.InH {
						clear(out)
						continue
					}
					inRow := input[in.Index(ic, iy, 0):][:g.InW]
					for ow := range out {
						ix := ow*g.Stride - g.Padding + kc*g.Dilation
						if ix < 0 || ix >= g.InW {
							out[ow] = 0
							continue
						}
						out[ow] = inRow[ix]
					}
				}
				row++
			}
		}
	}
}
