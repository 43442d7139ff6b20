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

package hwy

// ProcessWithTail is a helper for processing arrays four lanes at a time
// that handles both full vectors and the tail (remainder) automatically.
//
// It calls:
//   - fullFn(offset) for each full vector (offset is the starting index)
//   - tailFn(offset, count) once for the tail if size is not a multiple of Lanes
//
// Example:
//
//	hwy.ProcessWithTail(len(data),
//	    func(offset int) {
//	        v := hwy.Load4(data[offset:])
//	        v.Add(v).Store(output[offset:])
//	    },
//	    func(offset, count int) {
//	        for i := offset; i < offset+count; i++ {
//	            output[i] = data[i] + data[i]
//	        }
//	    },
//	)
func ProcessWithTail(size int, fullFn func(offset int), tailFn func(offset, count int)) {
	// Process full vectors
	fullVectors := size / Lanes
	for i := range fullVectors {
		fullFn(i * Lanes)
	}

	// Process tail if any
	remaining := size % Lanes
	if remaining > 0 {
		tailFn(fullVectors*Lanes, remaining)
	}
}

// BlockedLen rounds size down to a multiple of Lanes.
// This is the bound of the blocked part of a loop: size &^ 3.
func BlockedLen(size int) int {
	return size - size%Lanes
}

// IsAligned returns true if size is a multiple of Lanes.
func IsAligned(size int) bool {
	return size%Lanes == 0
}
