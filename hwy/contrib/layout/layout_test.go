// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package layout

import (
	"errors"
	"math"
	"testing"
)

func TestIndex3(t *testing.T) {
	s := Shape3{C: 3, H: 4, W: 5}

	// Walking (c, h, w) in nested order must visit 0..Len()-1 exactly once.
	want := 0
	for c := range s.C {
		for h := range s.H {
			for w := range s.W {
				if got := s.Index(c, h, w); got != want {
					t.Fatalf("Index(%d,%d,%d) = %d, want %d", c, h, w, got, want)
				}
				want++
			}
		}
	}
	if want != s.Len() {
		t.Errorf("Len() = %d, visited %d", s.Len(), want)
	}
	if s.Plane() != 20 {
		t.Errorf("Plane() = %d, want 20", s.Plane())
	}
}

func TestIndex4(t *testing.T) {
	s := Shape4{O: 2, I: 3, KH: 3, KW: 2}

	want := 0
	for o := range s.O {
		for i := range s.I {
			for kh := range s.KH {
				for kw := range s.KW {
					if got := s.Index(o, i, kh, kw); got != want {
						t.Fatalf("Index(%d,%d,%d,%d) = %d, want %d", o, i, kh, kw, got, want)
					}
					want++
				}
			}
		}
	}
	if want != s.Len() {
		t.Errorf("Len() = %d, visited %d", s.Len(), want)
	}
	// Row o of the weight-as-matrix view starts at o*Row().
	if got := s.Index(1, 0, 0, 0); got != s.Row() {
		t.Errorf("Index(1,0,0,0) = %d, want Row() = %d", got, s.Row())
	}
}

func TestOutputSize(t *testing.T) {
	tests := []struct {
		in, k, dilation, stride, padding int
		want                             int
	}{
		{256, 3, 1, 1, 0, 254},
		{256, 7, 1, 1, 0, 250},
		{256, 3, 2, 1, 0, 252},
		{5, 3, 1, 1, 0, 3},
		{5, 3, 1, 2, 0, 2},
		{5, 3, 1, 1, 1, 5},
		{5, 3, 2, 1, 2, 5},
		{6, 3, 1, 2, 1, 3},
		{3, 3, 2, 1, 0, -1},
		{2, 5, 1, 2, 0, -1},
		{2, 4, 1, 2, 0, 0},
	}
	for _, tt := range tests {
		got := OutputSize(tt.in, tt.k, tt.dilation, tt.stride, tt.padding)
		if got != tt.want {
			t.Errorf("OutputSize(in=%d, k=%d, d=%d, s=%d, p=%d) = %d, want %d",
				tt.in, tt.k, tt.dilation, tt.stride, tt.padding, got, tt.want)
		}
	}
}

// TestOutputSizeEnumeration checks the closed form against counting anchor
// positions whose dilated footprint fits the padded input.
func TestOutputSizeEnumeration(t *testing.T) {
	for in := 1; in <= 12; in++ {
		for k := 1; k <= 4; k++ {
			for _, d := range []int{1, 2, 3} {
				for _, s := range []int{1, 2} {
					for _, p := range []int{0, 1, 2} {
						count := 0
						for anchor := -p; anchor+EffectiveKernel(k, d)-1 < in+p; anchor += s {
							count++
						}
						got := OutputSize(in, k, d, s, p)
						if max(got, 0) != count {
							t.Errorf("OutputSize(%d,%d,%d,%d,%d) = %d, enumerated %d", in, k, d, s, p, got, count)
						}
					}
				}
			}
		}
	}
}

func TestEffectiveKernel(t *testing.T) {
	if got := EffectiveKernel(3, 1); got != 3 {
		t.Errorf("EffectiveKernel(3,1) = %d, want 3", got)
	}
	if got := EffectiveKernel(3, 2); got != 5 {
		t.Errorf("EffectiveKernel(3,2) = %d, want 5", got)
	}
	if got := EffectiveKernel(1, 7); got != 1 {
		t.Errorf("EffectiveKernel(1,7) = %d, want 1", got)
	}
}

func TestCheckPositive(t *testing.T) {
	if err := CheckPositive("m,k,n", 1, 2, 3); err != nil {
		t.Errorf("CheckPositive(1,2,3) = %v", err)
	}
	err := CheckPositive("m,k,n", 1, 0, 3)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("CheckPositive(1,0,3) = %v, want ErrInvalidArgument", err)
	}
	if want := "k must be positive, got 0: invalid argument"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestCheckLen(t *testing.T) {
	if err := CheckLen("a", 10, 10); err != nil {
		t.Errorf("CheckLen(10, 10) = %v", err)
	}
	if err := CheckLen("a", 9, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("CheckLen(9, 10) = %v, want ErrInvalidArgument", err)
	}
}

func TestCheckAlloc(t *testing.T) {
	if err := CheckAlloc("col", 9, 64516, 0); err != nil {
		t.Errorf("CheckAlloc = %v", err)
	}
	if err := CheckAlloc("col", math.MaxInt/2, 3, 0); !errors.Is(err, ErrAllocation) {
		t.Errorf("overflowing CheckAlloc = %v, want ErrAllocation", err)
	}
	if err := CheckAlloc("col", 100, 100, 1000); !errors.Is(err, ErrAllocation) {
		t.Errorf("over-limit CheckAlloc = %v, want ErrAllocation", err)
	}
	if err := CheckAlloc("col", 0, 100, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty CheckAlloc = %v, want ErrInvalidArgument", err)
	}
}
