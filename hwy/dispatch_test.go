package hwy

import "testing"

func TestDispatchLevelString(t *testing.T) {
	tests := map[DispatchLevel]string{
		DispatchScalar:    "scalar",
		DispatchSSE2:      "sse2",
		DispatchAVX2:      "avx2",
		DispatchAVX512:    "avx512",
		DispatchNEON:      "neon",
		DispatchSVE:       "sve",
		DispatchLevel(99): "unknown",
	}
	for level, want := range tests {
		if got := level.String(); got != want {
			t.Errorf("DispatchLevel(%d).String() = %q, want %q", int(level), got, want)
		}
	}
}

func TestCurrentLevel(t *testing.T) {
	t.Logf("Dispatch level: %s, width %d bytes, FMA %v", CurrentName(), CurrentWidth(), HasFMA())

	if CurrentWidth() < 16 {
		t.Errorf("CurrentWidth() = %d, want at least 16", CurrentWidth())
	}
	if CurrentName() != CurrentLevel().String() {
		t.Errorf("CurrentName() = %q, want %q", CurrentName(), CurrentLevel().String())
	}
}

func TestSetLevel(t *testing.T) {
	prev := SetLevel(DispatchScalar)
	defer SetLevel(prev)

	if Vectorized() {
		t.Error("Vectorized() = true in scalar mode")
	}
	if CurrentWidth() != 16 {
		t.Errorf("scalar width = %d, want 16", CurrentWidth())
	}

	SetLevel(DispatchAVX2)
	if !Vectorized() {
		t.Error("Vectorized() = false at avx2")
	}
	if CurrentWidth() != 32 {
		t.Errorf("avx2 width = %d, want 32", CurrentWidth())
	}
}

func TestNoSimdEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"false", false},
		{"0", false},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("HWY_NO_SIMD", tt.val)
		if got := NoSimdEnv(); got != tt.want {
			t.Errorf("HWY_NO_SIMD=%q: NoSimdEnv() = %v, want %v", tt.val, got, tt.want)
		}
	}
}
