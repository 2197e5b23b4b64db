package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/spf13/cobra"

	"github.com/dendrascience/assetvfs/fusefs"
	"github.com/dendrascience/assetvfs/vfs"
	"github.com/dendrascience/assetvfs/version"
)

// NewMountCmd creates and returns the mount subcommand.
// It serves the merged game tree read-only at a mountpoint.
func NewMountCmd() *cobra.Command {
	var opts gameOptions

	cmd := &cobra.Command{
		Use:   "mount MOUNTPOINT",
		Short: "Mount the merged game tree with FUSE",
		Long: `Mount the merged game tree read-only at MOUNTPOINT.

The game is mounted the same way the other commands see it. Send SIGHUP to
reload the texture wads, and interrupt to unmount.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(cmd, &opts, args[0])
		},
	}

	opts.addFlags(cmd)
	return cmd
}

func runMount(cmd *cobra.Command, opts *gameOptions, mountpoint string) error {
	if pathsOverlap(opts.game, mountpoint) {
		return fmt.Errorf("mountpoint %s overlaps game path %s", mountpoint, opts.game)
	}

	g, err := opts.open(cmd)
	if err != nil {
		return err
	}
	logger := opts.logger
	filesystem := fusefs.New(g.VFS())

	c, err := fusefs.Mount(mountpoint)
	if err != nil {
		return err
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)
	go func() {
		for sig := range sigChan {
			if sig == syscall.SIGHUP {
				err := filesystem.Update(func(*vfs.VFS) error {
					return opts.reloadWads(g)
				})
				if err != nil {
					logger.Error("reloading wads failed", "err", err)
				}
				continue
			}

			logger.Info("received signal, unmounting", "signal", sig)
			if err := fuse.Unmount(mountpoint); err != nil {
				logger.Error("unmount failed", "mount", mountpoint, "err", err)
			}
			return
		}
	}()

	logger.Info("mounted", "version", version.GetVersion(), "mount", mountpoint, "game", g.Game(), "layers", g.VFS().Len())
	return fs.Serve(c, filesystem)
}

// pathsOverlap reports whether one path contains the other.
func pathsOverlap(path1, path2 string) bool {
	abs1, err := filepath.Abs(path1)
	if err != nil {
		abs1 = filepath.Clean(path1)
	}
	abs2, err := filepath.Abs(path2)
	if err != nil {
		abs2 = filepath.Clean(path2)
	}
	return contains(abs1, abs2) || contains(abs2, abs1)
}

func contains(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
