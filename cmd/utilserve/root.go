package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "utilserve",
		Short: "Small utilities behind a JSON API",
		Long: `utilserve exposes four stateless utilities over HTTP: a BMI calculator,
a password generator, a number list analyser and a temperature converter.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newCalcCmd())
	return root
}
