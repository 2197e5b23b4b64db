package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dendrascience/assetvfs/vfs"
	"github.com/dendrascience/assetvfs/vpath"
)

// NewCountCmd creates and returns the count subcommand.
// It counts the files visible below a virtual directory, grouped by extension.
func NewCountCmd() *cobra.Command {
	var opts gameOptions

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count the files in a virtual directory tree",
		Long: `Count the files visible below a virtual directory after all layers are
merged, grouped by extension. Shadowed files are counted once.`,
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
			files, err := g.VFS().Find(path, vfs.Recursive, vfs.MatchFiles)
			if err != nil {
				return err
			}

			byExt := make(map[string]int)
			for _, f := range files {
				byExt[vpath.Fold(f.Ext())]++
			}
			exts := make([]string, 0, len(byExt))
			for ext := range byExt {
				exts = append(exts, ext)
			}
			sort.Strings(exts)

			out := cmd.OutOrStdout()
			for _, ext := range exts {
				name := ext
				if name == "" {
					name = "(none)"
				}
				fmt.Fprintf(out, "%-8s %d\n", name, byExt[ext])
			}
			fmt.Fprintf(out, "Total files: %d\n", len(files))
			return nil
		},
	}

	opts.addFlags(cmd)
	return cmd
}
