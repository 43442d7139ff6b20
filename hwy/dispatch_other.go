//go:build !amd64 && !arm64

package hwy

func init() {
	// Other architectures run the scalar variants.
	// The Vec4 kernels are portable, but without a known 128-bit unit there
	// is nothing to gain from them.
	setScalarMode()
}

// HasFMA returns false on architectures without detection support.
func HasFMA() bool {
	return false
}
