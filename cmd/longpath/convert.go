package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/longpath/internal/mapfile"
)

func ConvertCmd() *cobra.Command {
	var configFile, in, out string
	c := &cobra.Command{
		Use:   "convert",
		Short: "convert a map to the binary format",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(configFile, in, "")
			if err != nil {
				return err
			}
			defer env.logger.Sync()

			if err := mapfile.Save(out, env.grid, env.registry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %dx%d grid to %s\n", env.grid.W, env.grid.H, out)
			return nil
		},
	}
	c.Flags().StringVar(&configFile, "config", "", "config file")
	c.Flags().StringVar(&in, "in", "", "input map")
	c.Flags().StringVar(&out, "out", "", "output map")
	_ = c.MarkFlagRequired("in")
	_ = c.MarkFlagRequired("out")
	return c
}
