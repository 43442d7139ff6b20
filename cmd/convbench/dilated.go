// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-convolve/hwy/contrib/conv"
	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

type dilatedOptions struct {
	dilation int
	stride   int
	padding  int
	multi    bool
}

func newDilatedCmd(opts *options) *cobra.Command {
	dopts := &dilatedOptions{}

	cmd := &cobra.Command{
		Use:   "dilated",
		Short: "Time dilated convolution with stride and zero padding",
		Long: `dilated times conv.DilatedConvolve on one size x size plane with a
kernel x kernel filter. With --multi it instead runs the full channel
geometry through conv.DilatedConvolveMulti and the im2col pipeline
conv.ConvolveGeneral, and reports how far the two disagree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			if err := layout.CheckPositive("dilation,stride", dopts.dilation, dopts.stride); err != nil {
				return err
			}
			g := layout.Geometry{
				InChannels:  1,
				OutChannels: 1,
				InH:         opts.size,
				InW:         opts.size,
				KH:          opts.kernel,
				KW:          opts.kernel,
				Stride:      dopts.stride,
				Padding:     dopts.padding,
				Dilation:    dopts.dilation,
			}
			if dopts.multi {
				g.InChannels, g.OutChannels = opts.inChannels, opts.outChannels
			}
			if err := g.Validate(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "input:            %dx%dx%d\n", g.InChannels, g.InH, g.InW)
			fmt.Fprintf(w, "kernel:           %dx%d, dilation %d, stride %d, padding %d\n",
				g.KH, g.KW, g.Dilation, g.Stride, g.Padding)
			fmt.Fprintf(w, "receptive field:  %dx%d\n",
				layout.EffectiveKernel(g.KH, g.Dilation), layout.EffectiveKernel(g.KW, g.Dilation))
			fmt.Fprintf(w, "output:           %dx%dx%d\n", g.OutChannels, g.OutH(), g.OutW())

			if dopts.multi {
				return runDilatedMulti(w, opts, g)
			}
			return runDilatedPlane(w, opts, g)
		},
	}

	f := cmd.Flags()
	f.IntVar(&dopts.dilation, "dilation", 2, "spacing between kernel taps")
	f.IntVar(&dopts.stride, "stride", 1, "step between output anchors")
	f.IntVar(&dopts.padding, "padding", 0, "implicit zero border on each side")
	f.BoolVar(&dopts.multi, "multi", false, "use --in-channels/--out-channels and compare against the im2col pipeline")
	return cmd
}

func runDilatedPlane(w io.Writer, opts *options, g layout.Geometry) error {
	rng := newRNG(opts.seed)
	input := tenths(rng, g.InH*g.InW)
	kernel := tenths(rng, g.KH*g.KW)
	outH, outW := g.OutH(), g.OutW()
	output := make([]float32, outH*outW)

	elapsed, err := timeRuns(opts.repeat, func() error {
		return conv.DilatedConvolve(input, g.InH, g.InW, kernel, g.KH, g.KW, output, outH, outW, g.Dilation, g.Stride, g.Padding)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "time:             %v per run (%d runs)\n", elapsed, opts.repeat)
	fmt.Fprintf(w, "MFLOPS:           %.3f\n", rate(g.FLOPs(), elapsed, 1e6))
	fmt.Fprintf(w, "sample:           %v\n", output[:min(4, len(output))])
	return nil
}

func runDilatedMulti(w io.Writer, opts *options, g layout.Geometry) error {
	rng := newRNG(opts.seed)
	input := tenths(rng, g.Input().Len())
	weight := tenths(rng, g.Weight().Len())
	bias := make([]float32, g.OutChannels)
	for i := range bias {
		bias[i] = defaultBias
	}

	direct := make([]float32, g.Output().Len())
	pipelined := make([]float32, g.Output().Len())
	ws := conv.NewWorkspace[float32]()

	runs := []struct {
		name string
		fn   func() error
	}{
		{"direct", func() error { return conv.DilatedConvolveMulti(input, weight, bias, direct, g) }},
		{"im2col", func() error { return conv.ConvolveGeneral(ws, input, weight, bias, pipelined, g) }},
	}

	for _, r := range runs {
		elapsed, err := timeRuns(opts.repeat, r.fn)
		if err != nil {
			return fmt.Errorf("%s: %w", r.name, err)
		}
		fmt.Fprintf(w, "%-18s%v per run, %.3f MFLOPS\n", r.name+" time:", elapsed, rate(g.FLOPs(), elapsed, 1e6))
	}
	fmt.Fprintf(w, "max rel error:    %.3g\n", maxRelError(pipelined, direct))
	return nil
}
