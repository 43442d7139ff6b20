// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package conv

import (
	"github.com/ajroetker/go-convolve/hwy"
	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

// AddBias adds bias[oc] to each of the spatialSize contiguous elements of
// output channel oc, in place. Full groups of four use Vec4 adds and the
// remainder is added one element at a time.
func AddBias[T hwy.Floats](output, bias []T, outChannels, spatialSize int) error {
	if err := layout.CheckPositive("out channels,spatial size", outChannels, spatialSize); err != nil {
		return err
	}
	if err := layout.CheckLen("output", len(output), outChannels*spatialSize); err != nil {
		return err
	}
	if err := layout.CheckLen("bias", len(bias), outChannels); err != nil {
		return err
	}
	addBias(output, bias, outChannels, spatialSize)
	return nil
}

func addBias[T hwy.Floats](output, bias []T, outChannels, spatialSize int) {
	for oc := range outChannels {
		plane := output[oc*spatialSize : (oc+1)*spatialSize]
		b := bias[oc]
		vb := hwy.Set4(b)
		hwy.ProcessWithTail(spatialSize,
			func(offset int) {
				hwy.Load4(plane[offset:]).Add(vb).Store(plane[offset:])
			},
			func(offset, count int) {
				for i := offset; i < offset+count; i++ {
					plane[i] += b
				}
			},
		)
	}
}
