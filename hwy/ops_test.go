package hwy

import (
	"testing"
)

func TestLoad4(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	v := Load4(data)

	if v.NumLanes() != 4 {
		t.Errorf("NumLanes() = %d, want 4", v.NumLanes())
	}

	for i := range v.NumLanes() {
		if v[i] != data[i] {
			t.Errorf("Load4: lane %d: got %v, want %v", i, v[i], data[i])
		}
	}
}

func TestLoad4DoesNotAlias(t *testing.T) {
	data := []float32{1, 2, 3, 4}
	v := Load4(data)
	data[0] = 100

	if v[0] != 1 {
		t.Errorf("Load4 aliased source slice: lane 0 = %v", v[0])
	}
}

func TestLoad4Short(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Load4 on a 3-element slice should panic")
		}
	}()
	Load4([]float32{1, 2, 3})
}

func TestSet4(t *testing.T) {
	v := Set4[float32](42.0)

	for i := range v.NumLanes() {
		if v[i] != 42.0 {
			t.Errorf("Set4: lane %d: got %v, want %v", i, v[i], 42.0)
		}
	}
}

func TestZero4(t *testing.T) {
	v := Zero4[float64]()

	for i := range v.NumLanes() {
		if v[i] != 0 {
			t.Errorf("Zero4: lane %d: got %v, want 0", i, v[i])
		}
	}
}

func TestAdd(t *testing.T) {
	a := Vec4[float32]{1, 2, 3, 4}
	b := Set4[float32](10.0)
	result := Add(a, b)

	want := []float32{11, 12, 13, 14}
	for i, w := range want {
		if result[i] != w {
			t.Errorf("Add: lane %d: got %v, want %v", i, result[i], w)
		}
	}
}

func TestMul(t *testing.T) {
	a := Vec4[float32]{1, 2, 3, 4}
	b := Set4[float32](5.0)
	result := Mul(a, b)

	want := []float32{5, 10, 15, 20}
	for i, w := range want {
		if result[i] != w {
			t.Errorf("Mul: lane %d: got %v, want %v", i, result[i], w)
		}
	}
}

func TestMulAdd(t *testing.T) {
	a := Vec4[float32]{2, 3, 4, 5}
	b := Set4[float32](10)
	c := Vec4[float32]{1, 2, 3, 4}
	result := MulAdd(a, b, c)

	want := []float32{21, 32, 43, 54}
	for i, w := range want {
		if result[i] != w {
			t.Errorf("MulAdd: lane %d: got %v, want %v", i, result[i], w)
		}
	}
}

// TestMulAddMatchesScalar checks that MulAdd rounds like the scalar
// accumulation the kernels compare against.
func TestMulAddMatchesScalar(t *testing.T) {
	a := Vec4[float32]{0.1, 1.0 / 3, 1e-7, 123.456}
	b := Vec4[float32]{0.7, 3.0, 1e7, 0.001}
	c := Vec4[float32]{1e-3, -1, 0.5, 7}
	got := a.MulAdd(b, c)

	for i := range Lanes {
		sum := c[i]
		sum += a[i] * b[i]
		if got[i] != sum {
			t.Errorf("lane %d: MulAdd = %v, scalar = %v", i, got[i], sum)
		}
	}
}

func TestReduceSum(t *testing.T) {
	v := Vec4[float64]{1, 2, 3, 4}
	if got := ReduceSum(v); got != 10 {
		t.Errorf("ReduceSum = %v, want 10", got)
	}

	// Pairwise: (1e8+1) + (-1e8+1) loses both ones; left-to-right keeps one.
	p := Vec4[float32]{1e8, 1, -1e8, 1}
	if got := p.ReduceSum(); got != 0 {
		t.Errorf("ReduceSum pairwise = %v, want 0", got)
	}
}

func TestStore(t *testing.T) {
	v := Vec4[float32]{9, 8, 7, 6}
	dst := make([]float32, 6)
	Store(v, dst[1:])

	want := []float32{0, 9, 8, 7, 6, 0}
	for i, w := range want {
		if dst[i] != w {
			t.Errorf("Store: dst[%d] = %v, want %v", i, dst[i], w)
		}
	}
}

func BenchmarkMulAdd(b *testing.B) {
	x := Set4[float32](1.0001)
	y := Set4[float32](0.9999)
	acc := Zero4[float32]()
	for b.Loop() {
		acc = x.MulAdd(y, acc)
	}
	_ = acc
}
