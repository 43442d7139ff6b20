//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	// Check for HWY_NO_SIMD environment variable first
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	// ARM64 (AArch64) always has NEON (ASIMD) available.
	// It's part of the ARMv8-A base architecture.
	if cpu.ARM64.HasASIMD {
		currentLevel = DispatchNEON
	} else {
		// Fallback to scalar (should never happen on ARMv8+)
		currentLevel = DispatchScalar
	}

	// SVE is reported but the kernels still run 4-lane tiles on it.
	if cpu.ARM64.HasSVE {
		currentLevel = DispatchSVE
	}
	currentWidth = widthOf(currentLevel)
}

// HasFMA returns true; every ARMv8 core has FMLA, and the Go compiler fuses
// a*b+c on arm64.
func HasFMA() bool {
	return true
}
