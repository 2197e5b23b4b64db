package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLayersCmd creates and returns the layers subcommand.
func NewLayersCmd() *cobra.Command {
	var opts gameOptions

	cmd := &cobra.Command{
		Use:   "layers",
		Short: "List the mounted layers, lowest precedence first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.open(cmd)
			if err != nil {
				return err
			}
			for _, line := range g.Describe() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	opts.addFlags(cmd)
	return cmd
}
