// Copyright 2025 go-convolve Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"runtime"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-convolve/hwy"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List strategy names accepted by run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, v := range variants(nil) {
				note := lo.Ternary(v.supports(opts.kernel), "", fmt.Sprintf("  (unsupported for kernel %d)", opts.kernel))
				fmt.Fprintf(w, "%s%s\n", v.name, note)
			}
			return nil
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the detected SIMD dispatch level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "arch:        %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(w, "dispatch:    %s\n", hwy.CurrentName())
			fmt.Fprintf(w, "width:       %d bytes\n", hwy.CurrentWidth())
			fmt.Fprintf(w, "vectorized:  %t\n", hwy.Vectorized())
			fmt.Fprintf(w, "fma:         %t\n", hwy.HasFMA())
			fmt.Fprintf(w, "no-simd env: %t\n", hwy.NoSimdEnv())
			fmt.Fprintf(w, "gomaxprocs:  %d\n", runtime.GOMAXPROCS(0))
			return nil
		},
	}
}
