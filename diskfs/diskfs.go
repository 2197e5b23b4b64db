// Package diskfs serves a host directory as a vfs.Backend.
//
// Lookups ignore case: every path component is matched against the directory
// listing, preferring an exact match and otherwise taking the first entry
// whose folded name matches.
package diskfs

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/dendrascience/assetvfs/vfs"
	"github.com/dendrascience/assetvfs/vpath"
)

// Backend is a directory on a host file system.
type Backend struct {
	fs   afero.Fs
	root string
}

var (
	_ vfs.Backend        = (*Backend)(nil)
	_ vfs.AbsolutePather = (*Backend)(nil)
)

// New serves the directory root of fsys. Pass afero.NewOsFs() for the real
// disk.
func New(fsys afero.Fs, root string) *Backend {
	return &Backend{fs: afero.NewBasePathFs(fsys, root), root: root}
}

// NewOS serves a directory on the local disk.
func NewOS(root string) *Backend {
	return New(afero.NewOsFs(), root)
}

// String describes the backend.
func (b *Backend) String() string {
	return b.root
}

// Root returns the host directory the backend serves.
func (b *Backend) Root() string {
	return b.root
}

// resolve maps p to the on-disk spelling of each component.
func (b *Backend) resolve(p vpath.Path) (vpath.Path, os.FileInfo, error) {
	resolved := vpath.Root
	info, err := b.fs.Stat("/")
	if err != nil {
		return resolved, nil, err
	}
	for i := 0; i < p.Len(); i++ {
		if !info.IsDir() {
			return resolved, nil, os.ErrNotExist
		}
		name := p.Component(i)
		next := resolved.Append(name)
		if fi, err := b.fs.Stat(hostPath(next)); err == nil {
			resolved, info = next, fi
			continue
		}
		entries, err := afero.ReadDir(b.fs, hostPath(resolved))
		if err != nil {
			return resolved, nil, err
		}
		var found os.FileInfo
		for _, e := range entries {
			if vpath.EqualFold(e.Name(), name) {
				found = e
				break
			}
		}
		if found == nil {
			return resolved, nil, os.ErrNotExist
		}
		resolved = resolved.Append(found.Name())
		if info, err = b.fs.Stat(hostPath(resolved)); err != nil {
			return resolved, nil, err
		}
	}
	return resolved, info, nil
}

func hostPath(p vpath.Path) string {
	return "/" + p.String()
}

// PathInfo implements vfs.Backend.
func (b *Backend) PathInfo(p vpath.Path) vfs.PathInfo {
	_, info, err := b.resolve(p)
	switch {
	case err != nil:
		return vfs.Unknown
	case info.IsDir():
		return vfs.Directory
	default:
		return vfs.File
	}
}

// OpenFile implements vfs.Backend. The whole file is read into memory.
func (b *Backend) OpenFile(p vpath.Path) (*vfs.FileData, error) {
	resolved, info, err := b.resolve(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, vfs.NotFound(p)
		}
		return nil, fmt.Errorf("resolve %s in %s: %w", p, b.root, err)
	}
	if info.IsDir() {
		return nil, vfs.NotFound(p)
	}
	data, err := afero.ReadFile(b.fs, hostPath(resolved))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.Absolute(resolved), err)
	}
	return vfs.NewFileData(resolved, data), nil
}

// Find implements vfs.Backend.
func (b *Backend) Find(p vpath.Path, mode vfs.TraversalMode, match vfs.Matcher) ([]vpath.Path, error) {
	resolved, info, err := b.resolve(p)
	if err != nil || !info.IsDir() {
		return nil, vfs.NotDirectory(p)
	}
	var out []vpath.Path
	if err := b.walk(resolved, 1, mode, match, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Backend) walk(dir vpath.Path, level int, mode vfs.TraversalMode, match vfs.Matcher, out *[]vpath.Path) error {
	if !mode.Allows(level) {
		return nil
	}
	entries, err := afero.ReadDir(b.fs, hostPath(dir))
	if err != nil {
		return fmt.Errorf("list %s: %w", b.Absolute(dir), err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		child := dir.Append(e.Name())
		isDir := e.IsDir()
		if e.Mode()&os.ModeSymlink != 0 {
			fi, err := b.fs.Stat(hostPath(child))
			if err != nil {
				continue
			}
			isDir = fi.IsDir()
		}
		info := vfs.File
		if isDir {
			info = vfs.Directory
		}
		if match == nil || match(child, info) {
			*out = append(*out, child)
		}
		if isDir {
			if err := b.walk(child, level+1, mode, match, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// Absolute implements vfs.AbsolutePather.
func (b *Backend) Absolute(p vpath.Path) string {
	if resolved, _, err := b.resolve(p); err == nil {
		p = resolved
	}
	return filepath.Join(b.root, filepath.FromSlash(path.Clean("/" + p.String())))
}
