package gamefs

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/dendrascience/assetvfs/archive"
	"github.com/dendrascience/assetvfs/diskfs"
	"github.com/dendrascience/assetvfs/vfs"
	"github.com/dendrascience/assetvfs/vpath"
)

// State is the lifecycle position of a GameFileSystem.
type State int

const (
	// Uninitialized means nothing is mounted.
	Uninitialized State = iota
	// Initialized means the default asset and search path layers are mounted.
	Initialized
	// WadsLoaded means ReloadWads has run at least once since Initialize.
	WadsLoaded
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case WadsLoaded:
		return "wads loaded"
	default:
		return "uninitialized"
	}
}

// GameFileSystem mounts the asset layers of one game into a VFS.
//
// Like the VFS it wraps, a GameFileSystem is meant to be driven from a single
// goroutine.
type GameFileSystem struct {
	fs          afero.Fs
	vfs         *vfs.VFS
	wadMountIDs []vfs.MountID
	state       State
	game        string
}

// New returns an empty game file system reading host files through fsys.
func New(fsys afero.Fs) *GameFileSystem {
	return &GameFileSystem{fs: fsys, vfs: vfs.New()}
}

// NewOS returns an empty game file system on the local disk.
func NewOS() *GameFileSystem {
	return New(afero.NewOsFs())
}

// VFS returns the mount table. Callers may read from it freely; mounting or
// unmounting layers behind the GameFileSystem's back breaks ReloadWads.
func (g *GameFileSystem) VFS() *vfs.VFS {
	return g.vfs
}

// State reports the lifecycle state.
func (g *GameFileSystem) State() State {
	return g.state
}

// Game returns the name of the initialized game.
func (g *GameFileSystem) Game() string {
	return g.game
}

// WadMountIDs returns the ids of the currently mounted wads in mount order.
func (g *GameFileSystem) WadMountIDs() []vfs.MountID {
	out := make([]vfs.MountID, len(g.wadMountIDs))
	copy(out, g.wadMountIDs)
	return out
}

// Initialize clears every layer and mounts the asset layers for the game in
// gamePath. Relative additional search paths are taken relative to gamePath.
//
// Only configuration problems are returned as errors. Missing directories and
// unreadable or corrupt packages are logged and skipped.
func (g *GameFileSystem) Initialize(cfg Config, gamePath string, additionalSearchPaths []string, logger Logger) error {
	g.Close()
	if logger == nil {
		logger = Discard()
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	parse, err := archive.Lookup(cfg.PackageFormat.Format)
	if err != nil {
		return configError(err, "unknown package format", map[string]interface{}{"format": cfg.PackageFormat.Format})
	}

	for _, dir := range cfg.DefaultAssets {
		g.mountDirectory(dir, logger)
	}
	if cfg.GameAssets != "" {
		g.mountDirectory(cfg.GameAssets, logger)
	}

	searchPaths := append([]string{filepath.Join(gamePath, cfg.SearchPath)}, additionalSearchPaths...)
	for i, dir := range searchPaths {
		if i > 0 && !filepath.IsAbs(dir) {
			dir = filepath.Join(gamePath, dir)
		}
		if g.mountDirectory(dir, logger) {
			g.mountPackages(dir, cfg.Extensions(), parse, logger)
		}
	}

	g.state = Initialized
	g.game = cfg.Name
	logger.Info("game file system initialized", "game", cfg.Name, "layers", g.vfs.Len())
	return nil
}

// mountDirectory mounts dir at the root. It reports whether dir exists.
func (g *GameFileSystem) mountDirectory(dir string, logger Logger) bool {
	ok, err := afero.DirExists(g.fs, dir)
	if err != nil || !ok {
		logger.Warn("skipping missing directory", "path", dir)
		return false
	}
	id := g.vfs.Mount(vpath.Root, diskfs.New(g.fs, dir))
	logger.Debug("mounted directory", "path", dir, "id", id)
	return true
}

// mountPackages mounts every package directly inside dir, ordered by name
// ignoring case.
func (g *GameFileSystem) mountPackages(dir string, extensions []string, parse archive.Parser, logger Logger) {
	for _, path := range g.findPackages(dir, extensions, logger) {
		a, err := g.readArchive(path, parse)
		if err != nil {
			logger.Error("skipping package", "path", path, "err", err)
			continue
		}
		id := g.vfs.Mount(vpath.Root, a)
		logger.Debug("mounted package", "path", path, "format", a.Format(), "entries", len(a.Entries()), "id", id)
	}
}

func (g *GameFileSystem) findPackages(dir string, extensions []string, logger Logger) []string {
	infos, err := afero.ReadDir(g.fs, dir)
	if err != nil {
		logger.Error("cannot list packages", "path", dir, "err", ioError(err, dir))
		return nil
	}
	match := vfs.MatchExtensions(extensions...)
	var names []vpath.Path
	for _, info := range infos {
		name := vpath.New(info.Name())
		kind := vfs.File
		if info.IsDir() {
			kind = vfs.Directory
		}
		if match(name, kind) {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return vpath.Less(names[i], names[j]) })

	out := make([]string, len(names))
	for i, name := range names {
		out[i] = filepath.Join(dir, name.String())
	}
	return out
}

func (g *GameFileSystem) readArchive(path string, parse archive.Parser) (*archive.Archive, error) {
	data, err := afero.ReadFile(g.fs, path)
	if err != nil {
		return nil, ioError(err, path)
	}
	return parse(path, data)
}

// ReloadWads replaces the mounted texture wads. It unmounts exactly the wads
// mounted by the previous call, then mounts each of wadPaths at
// rootMountPoint. A relative wad path is looked up in wadSearchPaths in order.
// Wads that cannot be found, read or parsed are logged and skipped.
func (g *GameFileSystem) ReloadWads(rootMountPoint vpath.Path, wadSearchPaths, wadPaths []string, logger Logger) error {
	if g.state == Uninitialized {
		return ErrUninitialized
	}
	if logger == nil {
		logger = Discard()
	}

	for _, id := range g.wadMountIDs {
		if err := g.vfs.Unmount(id); err != nil {
			logger.Warn("wad layer already gone", "id", id, "err", err)
		}
	}
	g.wadMountIDs = nil

	for _, wadPath := range wadPaths {
		path, err := g.resolveWad(wadPath, wadSearchPaths)
		if err != nil {
			logger.Error("skipping wad", "path", wadPath, "err", err)
			continue
		}
		a, err := g.readArchive(path, archive.ParseWAD)
		if err != nil {
			logger.Error("skipping wad", "path", path, "err", err)
			continue
		}
		id := g.vfs.Mount(rootMountPoint, a)
		g.wadMountIDs = append(g.wadMountIDs, id)
		logger.Info("mounted wad", "path", path, "mount", rootMountPoint.String(), "entries", len(a.Entries()), "id", id)
	}

	g.state = WadsLoaded
	return nil
}

func (g *GameFileSystem) resolveWad(wadPath string, searchPaths []string) (string, error) {
	if filepath.IsAbs(wadPath) {
		if ok, _ := afero.Exists(g.fs, wadPath); ok {
			return wadPath, nil
		}
		return "", fmt.Errorf("%w: %s", ErrWadNotFound, wadPath)
	}
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, wadPath)
		if info, err := g.fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrWadNotFound, wadPath)
}

// Close unmounts everything. The GameFileSystem can be initialized again
// afterwards.
func (g *GameFileSystem) Close() {
	g.vfs.UnmountAll()
	g.wadMountIDs = nil
	g.state = Uninitialized
	g.game = ""
}

// Describe lists the layers for diagnostics, lowest precedence first.
func (g *GameFileSystem) Describe() []string {
	layers := g.vfs.Layers()
	out := make([]string, len(layers))
	for i, l := range layers {
		mount := l.MountPoint.String()
		if mount == "" {
			mount = "/"
		}
		out[i] = fmt.Sprintf("#%d %s <- %s", l.ID, mount, l.Description)
	}
	return out
}
