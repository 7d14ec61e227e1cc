package main

import (
	"os"

	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	c := &cobra.Command{
		Use:          "longpath",
		Short:        "long-range jump point search over navigation grids",
		SilenceUsage: true,
	}
	c.AddCommand(SolveCmd(), ConvertCmd(), ViewCmd())
	return c
}

func main() {
	if err := RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
