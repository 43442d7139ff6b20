// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package conv

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

func TestIm2colLayout(t *testing.T) {
	// 1x5x5 input holding its own flat index, 3x3 kernel: 9x9 matrix.
	input := make([]float32, 25)
	for i := range input {
		input[i] = float32(i)
	}

	col, err := Im2col(input, 1, 5, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(col) != 81 {
		t.Fatalf("len = %d, want 81", len(col))
	}

	at := func(r, c int) float32 { return col[r*9+c] }
	if got := at(0, 0); got != input[0] {
		t.Errorf("(0,0) = %v, want in[0,0] = %v", got, input[0])
	}
	if got := at(0, 8); got != input[2*5+2] {
		t.Errorf("(0,8) = %v, want in[2,2] = %v", got, input[12])
	}
	if got := at(8, 0); got != input[2*5+2] {
		t.Errorf("(8,0) = %v, want in[2,2] = %v", got, input[12])
	}

	// Every entry: row (kr, kc), column (oh, ow) holds in[oh+kr, ow+kc].
	for kr := range 3 {
		for kc := range 3 {
			for oh := range 3 {
				for ow := range 3 {
					if got, want := at(kr*3+kc, oh*3+ow), input[(oh+kr)*5+ow+kc]; got != want {
						t.Fatalf("(%d,%d) = %v, want %v", kr*3+kc, oh*3+ow, got, want)
					}
				}
			}
		}
	}
}

func TestIm2colMultiChannel(t *testing.T) {
	const inCh, inSize, k = 2, 4, 2
	const outSize = inSize - k + 1
	input := make([]float32, inCh*inSize*inSize)
	for i := range input {
		input[i] = float32(i)
	}

	col, err := Im2col(input, inCh, inSize, k, outSize)
	if err != nil {
		t.Fatal(err)
	}

	in := layout.Shape3{C: inCh, H: inSize, W: inSize}
	cols := outSize * outSize
	for ic := range inCh {
		for kr := range k {
			for kc := range k {
				row := (ic*k+kr)*k + kc
				for oh := range outSize {
					for ow := range outSize {
						if got, want := col[row*cols+oh*outSize+ow], input[in.Index(ic, oh+kr, ow+kc)]; got != want {
							t.Fatalf("row %d col %d = %v, want %v", row, oh*outSize+ow, got, want)
						}
					}
				}
			}
		}
	}
}

func TestIm2colInto(t *testing.T) {
	rng := rand.New(rand.NewPCG(41, 42))
	p := problem{1, 3, 4, 9}
	tt := newTensors(rng, p)

	want, err := Im2col(tt.input, p.inCh, p.inSize, p.k, p.outSize())
	if err != nil {
		t.Fatal(err)
	}
	got := filled(len(want)+3, -1)
	if err := Im2colInto(got, tt.input, p.inCh, p.inSize, p.k, p.outSize()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got[:len(want)]); diff != "" {
		t.Errorf("Im2colInto mismatch (-want +got):\n%s", diff)
	}

	err = Im2colInto(got[:len(want)-1], tt.input, p.inCh, p.inSize, p.k, p.outSize())
	if !errors.Is(err, layout.ErrInvalidArgument) {
		t.Errorf("short dst: err = %v, want ErrInvalidArgument", err)
	}
}

func TestIm2colGeneral(t *testing.T) {
	rng := rand.New(rand.NewPCG(43, 44))

	t.Run("valid geometry matches Im2col", func(t *testing.T) {
		p := problem{1, 2, 3, 7}
		tt := newTensors(rng, p)
		want, err := Im2col(tt.input, p.inCh, p.inSize, p.k, p.outSize())
		if err != nil {
			t.Fatal(err)
		}
		got := make([]float32, len(want))
		if err := Im2colGeneral(got, tt.input, layout.Valid(p.inCh, p.outCh, p.k, p.inSize)); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("padding is zero filled", func(t *testing.T) {
		// 1x3x3 ones, 3x3 kernel, padding 1: the centre tap row is all ones,
		// the corner tap rows see four in-bounds positions each.
		g := layout.Geometry{InChannels: 1, OutChannels: 1, InH: 3, InW: 3, KH: 3, KW: 3, Padding: 1}
		dst := filled(g.ColRows()*g.ColCols(), -1)
		if err := Im2colGeneral(dst, filled(9, 1), g); err != nil {
			t.Fatal(err)
		}

		cols := g.ColCols()
		for row := range g.ColRows() {
			var sum float32
			for _, v := range dst[row*cols : (row+1)*cols] {
				if v != 0 && v != 1 {
					t.Fatalf("row %d holds %v", row, v)
				}
				sum += v
			}
			want := map[int]float32{0: 4, 1: 6, 2: 4, 3: 6, 4: 9, 5: 6, 6: 4, 7: 6, 8: 4}[row]
			if sum != want {
				t.Errorf("row %d sums to %v, want %v", row, sum, want)
			}
		}
	})

	t.Run("strided and dilated", func(t *testing.T) {
		g := layout.Geometry{InChannels: 1, OutChannels: 1, InH: 6, InW: 5, KH: 2, KW: 2, Stride: 2, Dilation: 2, Padding: 1}
		input := make([]float32, g.Input().Len())
		for i := range input {
			input[i] = float32(i + 1)
		}
		dst := make([]float32, g.ColRows()*g.ColCols())
		if err := Im2colGeneral(dst, input, g); err != nil {
			t.Fatal(err)
		}

		outH, outW := g.OutH(), g.OutW()
		for kr := range g.KH {
			for kc := range g.KW {
				for oh := range outH {
					for ow := range outW {
						iy := oh*g.Stride - g.Padding + kr*g.Dilation
						ix := ow*g.Stride - g.Padding + kc*g.Dilation
						var want float32
						if iy >= 0 && iy < g.InH && ix >= 0 && ix < g.InW {
							want = input[iy*g.InW+ix]
						}
						if got := dst[(kr*g.KW+kc)*outH*outW+oh*outW+ow]; got != want {
							t.Fatalf("tap (%d,%d) at (%d,%d) = %v, want %v", kr, kc, oh, ow, got, want)
						}
					}
				}
			}
		}
	})
}

func TestIm2colAllocation(t *testing.T) {
	// 9000 rows by ~16.7M columns is far above MaxIm2colElements; the check
	// fires before the input is touched.
	_, err := Im2col[float32](nil, 1000, 4096, 3, 4094)
	if !errors.Is(err, layout.ErrAllocation) {
		t.Fatalf("err = %v, want ErrAllocation", err)
	}

	_, err = Im2col[float32](nil, 1<<20, 1<<20, 1<<20, 1)
	if !errors.Is(err, layout.ErrAllocation) {
		t.Fatalf("overflow: err = %v, want ErrAllocation", err)
	}
}

func TestIm2colErrors(t *testing.T) {
	input := make([]float32, 25)
	tests := []struct {
		name                              string
		inCh, inSize, kernelSize, outSize int
	}{
		{"zero channels", 0, 5, 3, 3},
		{"zero kernel", 1, 5, 0, 6},
		{"wrong output size", 1, 5, 3, 2},
		{"short input", 2, 5, 3, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, err := Im2col(input, tc.inCh, tc.inSize, tc.kernelSize, tc.outSize)
			if !errors.Is(err, layout.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
			if col != nil {
				t.Errorf("got a buffer of %d elements on error", len(col))
			}
		})
	}
}
