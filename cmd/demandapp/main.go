package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "demandapp",
		Short:        "Demand forecasting form backed by a pre-trained regression model",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newInspectCmd())
	return root
}
