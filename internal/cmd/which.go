package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dendrascience/assetvfs/vpath"
)

// NewWhichCmd creates and returns the which subcommand.
// It reports the layer, and where possible the host file, behind a path.
func NewWhichCmd() *cobra.Command {
	var opts gameOptions

	cmd := &cobra.Command{
		Use:   "which PATH",
		Short: "Show which layer provides a virtual path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.open(cmd)
			if err != nil {
				return err
			}
			res, err := g.VFS().Which(vpath.Parse(args[0]))
			if err != nil {
				return err
			}

			mount := res.Layer.MountPoint.String()
			if mount == "" {
				mount = "/"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kind:     %s\n", res.Info)
			fmt.Fprintf(out, "layer:    #%d\n", res.Layer.ID)
			fmt.Fprintf(out, "mount:    %s\n", mount)
			fmt.Fprintf(out, "backend:  %s\n", res.Layer.Description)
			fmt.Fprintf(out, "relative: %s\n", res.Relative)
			if res.Absolute != "" {
				fmt.Fprintf(out, "host:     %s\n", res.Absolute)
			}
			return nil
		},
	}

	opts.addFlags(cmd)
	return cmd
}
