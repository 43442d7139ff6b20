// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <strategy>",
		Short: "Time one strategy and report GFLOPS",
		Example: `  convbench run direct
  convbench run im2col-gemm --kernel 7 --repeat 5
  convbench run parallel-direct --workers 0`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: variantNames(variants(nil)),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProblem(opts)
			if err != nil {
				return err
			}

			pool := newPool(opts.workers)
			defer pool.Close()

			v, err := findVariant(variants(pool), args[0])
			if err != nil {
				return err
			}

			output := p.newOutput()
			elapsed, err := timeRuns(opts.repeat, func() error { return v.run(p, output) })
			if err != nil {
				return fmt.Errorf("%s: %w", v.name, err)
			}

			g := p.g
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "strategy: %s\n", v.name)
			fmt.Fprintf(w, "input:    %dx%dx%d\n", g.InChannels, g.InH, g.InW)
			fmt.Fprintf(w, "weights:  %dx%dx%dx%d\n", g.OutChannels, g.InChannels, g.KH, g.KW)
			fmt.Fprintf(w, "output:   %dx%dx%d\n", g.OutChannels, g.OutH(), g.OutW())
			fmt.Fprintf(w, "time:     %v per run (%d runs)\n", elapsed, opts.repeat)
			fmt.Fprintf(w, "ops:      %d\n", g.FLOPs())
			fmt.Fprintf(w, "GFLOPS:   %.3f\n", rate(g.FLOPs(), elapsed, 1e9))
			fmt.Fprintf(w, "sample:   %v\n", output[:min(4, len(output))])
			return nil
		},
	}
}
