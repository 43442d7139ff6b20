package hwy

import (
	"os"
	"strconv"
)

// DispatchLevel represents the SIMD instruction set detected at runtime.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, pure scalar Go.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline, 128-bit).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON

	// DispatchSVE indicates ARM SVE instructions (scalable vector).
	DispatchSVE
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	case DispatchSVE:
		return "sve"
	default:
		return "unknown"
	}
}

// currentLevel is the detected SIMD level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the SIMD register width in bytes for the current level.
// Set by init() in dispatch_*.go files.
var currentWidth int

// CurrentLevel returns the SIMD instruction set being used.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current SIMD target.
// For example: "avx2", "neon", "scalar".
func CurrentName() string {
	return currentLevel.String()
}

// Vectorized reports whether kernels should take their Vec4 code paths.
// It is false only in scalar mode.
func Vectorized() bool {
	return currentLevel != DispatchScalar
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, kernels use their scalar variants regardless of CPU capabilities.
// This is useful for testing and debugging.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// SetLevel overrides the detected dispatch level and returns the previous one.
// It exists for tests and benchmarks that compare scalar and vector paths;
// packages that capture dispatch decisions in init() are not affected.
func SetLevel(level DispatchLevel) DispatchLevel {
	prev := currentLevel
	currentLevel = level
	currentWidth = widthOf(level)
	return prev
}

func widthOf(level DispatchLevel) int {
	switch level {
	case DispatchAVX2:
		return 32
	case DispatchAVX512:
		return 64
	default:
		// Use 16-byte vectors even in scalar mode for consistency
		return 16
	}
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = widthOf(DispatchScalar)
}
