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

// Command convbench times and cross-checks the convolution strategies of
// package conv on seeded synthetic data.
//
// Usage:
//
//	convbench list
//	convbench info
//	convbench run im2col-gemm --kernel 7 --size 256 --out-channels 16
//	convbench run direct --workers 8 --repeat 10
//	convbench dilated --dilation 2 --stride 1 --padding 2
//	convbench verify --in-channels 3 --kernel 5
//
// Defaults describe a single-channel 256x256 input convolved with sixteen
// 3x3 filters. Inputs and weights are tenths in [0, 0.9] drawn from a PCG
// generator seeded by --seed; every bias is 0.1.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
