package cmd

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dendrascience/assetvfs/gamefs"
	"github.com/dendrascience/assetvfs/vpath"
)

// gameOptions are the flags shared by every command that works on a
// mounted game.
type gameOptions struct {
	config         string
	game           string
	searchPaths    []string
	wads           []string
	wadSearchPaths []string
	wadMount       string
	verbose        bool

	cfg    gamefs.Config
	logger *log.Logger
}

func (o *gameOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.config, "config", "c", "", "Path to the game configuration file (required)")
	f.StringVarP(&o.game, "game", "g", "", "Path to the game installation (required)")
	f.StringArrayVarP(&o.searchPaths, "search-path", "s", nil, "Additional search path, relative to the game path unless absolute")
	f.StringArrayVar(&o.wads, "wad", nil, "Texture wad to mount (default: textures.wads from the configuration)")
	f.StringArrayVar(&o.wadSearchPaths, "wad-search-path", nil, "Directory to look up relative wads in (default: textures.searchpaths)")
	f.StringVar(&o.wadMount, "wad-mount", "", "Virtual directory to mount wads at (default: textures.root)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("game")
}

// open loads the configuration and mounts the game, then its wads.
func (o *gameOptions) open(cmd *cobra.Command) (*gamefs.GameFileSystem, error) {
	o.logger = gamefs.NewLogger(cmd.ErrOrStderr(), o.verbose)

	fsys := afero.NewOsFs()
	cfg, err := gamefs.LoadConfigFile(fsys, o.config)
	if err != nil {
		return nil, err
	}
	o.cfg = cfg

	g := gamefs.New(fsys)
	if err := g.Initialize(cfg, o.game, o.searchPaths, o.logger); err != nil {
		return nil, err
	}
	if err := o.reloadWads(g); err != nil {
		return nil, err
	}
	return g, nil
}

// reloadWads mounts the wads named on the command line, falling back to the
// texture settings of the configuration.
func (o *gameOptions) reloadWads(g *gamefs.GameFileSystem) error {
	wads := o.wads
	if len(wads) == 0 {
		wads = o.cfg.Textures.Wads
	}
	if len(wads) == 0 {
		return nil
	}

	searchPaths := o.wadSearchPaths
	if len(searchPaths) == 0 {
		for _, dir := range o.cfg.Textures.SearchPaths {
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(o.game, dir)
			}
			searchPaths = append(searchPaths, dir)
		}
	}

	mount := o.wadMount
	if mount == "" {
		mount = o.cfg.Textures.Root
	}
	return g.ReloadWads(vpath.Parse(mount), searchPaths, wads, o.logger)
}
