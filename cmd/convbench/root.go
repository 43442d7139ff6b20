// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-convolve/hwy/contrib/layout"
)

// options holds the persistent flags shared by every sub-command.
type options struct {
	inChannels  int
	outChannels int
	kernel      int
	size        int
	seed        uint64
	repeat      int
	workers     int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "convbench",
		Short: "Benchmark and cross-check 2D convolution strategies",
		Long: `convbench runs the convolution strategies of package conv on seeded
synthetic data, reporting wall time and GFLOPS, and verifies that every
strategy agrees with the direct reference.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.IntVar(&opts.inChannels, "in-channels", 1, "input channels")
	f.IntVar(&opts.outChannels, "out-channels", 16, "output channels (filters)")
	f.IntVarP(&opts.kernel, "kernel", "k", 3, "square kernel size")
	f.IntVarP(&opts.size, "size", "s", 256, "square input size")
	f.Uint64Var(&opts.seed, "seed", 1, "seed of the data generator")
	f.IntVarP(&opts.repeat, "repeat", "n", 1, "timed runs per measurement")
	f.IntVarP(&opts.workers, "workers", "w", 1, "worker goroutines for parallel strategies (0 = GOMAXPROCS)")

	root.AddCommand(
		newRunCmd(opts),
		newDilatedCmd(opts),
		newVerifyCmd(opts),
		newListCmd(opts),
		newInfoCmd(),
	)
	return root
}

// validate checks the flags that shape the convolution.
func (o *options) validate() error {
	if err := layout.CheckPositive("in-channels,out-channels,kernel,size,repeat",
		o.inChannels, o.outChannels, o.kernel, o.size, o.repeat); err != nil {
		return err
	}
	if o.workers < 0 {
		return layout.Invalid("workers must not be negative, got %d", o.workers)
	}
	if o.kernel > o.size {
		return layout.Invalid("kernel %d larger than input %d", o.kernel, o.size)
	}
	return nil
}

// geometry is the valid convolution described by the flags.
func (o *options) geometry() layout.Geometry {
	return layout.Valid(o.inChannels, o.outChannels, o.kernel, o.size)
}
