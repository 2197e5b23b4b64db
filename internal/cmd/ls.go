package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dendrascience/assetvfs/vfs"
	"github.com/dendrascience/assetvfs/vpath"
)

// NewLsCmd creates and returns the ls subcommand.
// It lists the merged contents of a virtual directory.
func NewLsCmd() *cobra.Command {
	var (
		opts      gameOptions
		recursive bool
		depth     int
		exts      []string
	)

	cmd := &cobra.Command{
		Use:   "ls [PATH]",
		Short: "List a virtual directory",
		Long: `List the merged contents of a virtual directory across all layers.

Entries provided by several layers are listed once, spelled the way the most
recently mounted layer spells them. Directories carry a trailing slash.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.open(cmd)
			if err != nil {
				return err
			}

			path := vpath.Root
			if len(args) > 0 {
				path = vpath.Parse(args[0])
			}
			mode := vfs.Flat
			switch {
			case recursive:
				mode = vfs.Recursive
			case depth > 0:
				mode = vfs.Depth(depth)
			}
			var match vfs.Matcher
			if len(exts) > 0 {
				match = vfs.MatchExtensions(exts...)
			}

			// Entries from the layers that could be listed are printed
			// even when another layer failed.
			found, err := g.VFS().Find(path, mode, match)
			out := cmd.OutOrStdout()
			for _, p := range found {
				if g.VFS().PathInfo(p) == vfs.Directory {
					fmt.Fprintf(out, "%s/\n", p)
					continue
				}
				fmt.Fprintln(out, p)
			}
			return err
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "List all descendants")
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Number of levels below the listed directory to descend into")
	cmd.Flags().StringSliceVarP(&exts, "ext", "e", nil, "Only list files with these extensions")

	return cmd
}
