package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dendrascience/assetvfs/version"
)

// NewRootCmd creates and returns the root cobra command for the assetvfs CLI.
// It sets up all subcommands and command groups.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "assetvfs",
		Short: "assetvfs - A layered virtual file system for game assets",
		Long: `assetvfs mounts the asset folders, packages and texture wads of a game into
one case-insensitive virtual tree, the way the game itself would see them.

Later layers shadow earlier ones: default assets, the game's own assets, then
each search path followed by the packages inside it, and finally the texture
wads.

Use subcommands to perform different operations:
  - ls, cat, which, layers, count: inspect the merged tree
  - mount: serve the merged tree read-only with FUSE
  - validate: check package and wad archives
  - seed: generate a sample game installation`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
	}

	groupUtilities := "utilities"
	groupFilesystem := "filesystem"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFilesystem,
		Title: "Filesystem Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	for _, c := range []*cobra.Command{
		NewLsCmd(),
		NewCatCmd(),
		NewWhichCmd(),
		NewLayersCmd(),
		NewMountCmd(),
	} {
		c.GroupID = groupFilesystem
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		NewCountCmd(),
		NewValidateCmd(),
		NewSeedCmd(),
		NewVersionCmd(),
	} {
		c.GroupID = groupUtilities
		rootCmd.AddCommand(c)
	}

	return rootCmd
}
