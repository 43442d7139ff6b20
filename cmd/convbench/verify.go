// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"math"
	"runtime"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-convolve/hwy/contrib/conv"
)

// defaultTolerance is the largest relative error verify accepts.
const defaultTolerance = 1e-5

// result is the outcome of one variant in verify.
type result struct {
	name   string
	maxErr float64
}

func newVerifyCmd(opts *options) *cobra.Command {
	tolerance := defaultTolerance

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every strategy against the direct convolution",
		Long: `verify runs every strategy that supports --kernel on the same seeded
data, concurrently, and compares each output with conv.Convolve. It fails
when any maximum relative error exceeds --tolerance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProblem(opts)
			if err != nil {
				return err
			}

			g := p.g
			want := p.newOutput()
			if err := conv.Convolve(p.input, p.weight, p.bias, want, g.OutChannels, g.InChannels, g.KH, g.OutH(), g.InH); err != nil {
				return err
			}

			pool := newPool(opts.workers)
			defer pool.Close()

			vs := lo.Filter(variants(pool), func(v variant, _ int) bool { return v.supports(g.KH) })
			results := make([]result, len(vs))

			var eg errgroup.Group
			eg.SetLimit(runtime.GOMAXPROCS(0))
			for i, v := range vs {
				eg.Go(func() error {
					got := p.newOutput()
					if err := v.run(p, got); err != nil {
						return fmt.Errorf("%s: %w", v.name, err)
					}
					results[i] = result{name: v.name, maxErr: maxRelError(got, want)}
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, r := range results {
				status := "ok"
				if r.maxErr > tolerance {
					status = "FAIL"
				}
				fmt.Fprintf(w, "%-22s max rel error %.3g  %s\n", r.name, r.maxErr, status)
			}

			failed := lo.Filter(results, func(r result, _ int) bool { return r.maxErr > tolerance })
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d strategies exceed tolerance %g: %v",
					len(failed), len(results), tolerance, lo.Map(failed, func(r result, _ int) string { return r.name }))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&tolerance, "tolerance", defaultTolerance, "largest accepted relative error")
	return cmd
}

// maxRelError returns the largest |got-want| / max(|want|, 1) over the
// elements of want.
func maxRelError(got, want []float32) float64 {
	var worst float64
	for i, wv := range want {
		diff := math.Abs(float64(got[i]) - float64(wv))
		rel := diff / math.Max(math.Abs(float64(wv)), 1)
		if rel > worst || math.IsNaN(rel) {
			worst = rel
		}
	}
	return worst
}
