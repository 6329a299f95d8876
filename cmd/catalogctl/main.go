package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var tolerance float64

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Validate role catalogs and preview fit scores offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Float64Var(&tolerance, "tolerance", 0.01, "allowed deviation of weight sum from 1.0")

	root.AddCommand(newValidateCmd(&tolerance))
	root.AddCommand(newNormalizeCmd(&tolerance))
	root.AddCommand(newRankCmd(&tolerance))
	root.AddCommand(newTierCmd())
	return root
}
