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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

// hasFMA indicates FMA3 support (Haswell+, Piledriver+).
var hasFMA bool

func init() {
	// Check if SIMD is disabled via environment variable
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	detectCPUFeatures()
}

func detectCPUFeatures() {
	hasFMA = cpu.X86.HasFMA

	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512VL:
		currentLevel = DispatchAVX512
	case cpu.X86.HasAVX2:
		currentLevel = DispatchAVX2
	case cpu.X86.HasSSE2:
		currentLevel = DispatchSSE2
	default:
		currentLevel = DispatchScalar
	}
	currentWidth = widthOf(currentLevel)
}

// HasFMA returns true if the CPU supports fused multiply-add instructions.
// The Go compiler only fuses a*b+c on amd64 when built for GOAMD64=v3 or
// later, so results can differ from FMA-less machines in the last bit.
func HasFMA() bool {
	return hasFMA
}
