package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dendrascience/assetvfs/vpath"
)

// NewCatCmd creates and returns the cat subcommand.
func NewCatCmd() *cobra.Command {
	var opts gameOptions

	cmd := &cobra.Command{
		Use:   "cat PATH",
		Short: "Print a virtual file",
		Long: `Print the contents of a virtual file as served by the layer with the
highest precedence. Lookups ignore case.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.open(cmd)
			if err != nil {
				return err
			}
			f, err := g.VFS().OpenFile(vpath.Parse(args[0]))
			if err != nil {
				return err
			}
			_, err = f.Reader().WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	opts.addFlags(cmd)
	return cmd
}
