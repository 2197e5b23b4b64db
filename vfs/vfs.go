package vfs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dendrascience/assetvfs/vpath"
)

// MountID identifies one mount operation. IDs increase strictly and are never
// reused, so a stale ID can never unmount a newer layer.
type MountID uint64

// layer is one mounted backend
type layer struct {
	id         MountID
	mountPoint vpath.Path
	backend    Backend
}

// LayerInfo describes a mounted layer for diagnostics.
type LayerInfo struct {
	ID          MountID
	MountPoint  vpath.Path
	Description string
}

// Resolution tells which layer provides a path.
type Resolution struct {
	Layer    LayerInfo
	Info     PathInfo
	Relative vpath.Path // path as seen by the backend
	Absolute string     // host location, empty if the backend cannot tell
}

// VFS is an ordered stack of mounted backends. Layers mounted later take
// precedence over layers mounted earlier.
//
// A VFS is not safe for concurrent use.
type VFS struct {
	layers []*layer // ordered from bottom (oldest) to top (newest)
	nextID MountID
}

// New returns an empty mount table.
func New() *VFS {
	return &VFS{nextID: 1}
}

// Mount pushes backend on top of the stack at mountPoint. The VFS takes
// ownership of the backend.
func (v *VFS) Mount(mountPoint vpath.Path, backend Backend) MountID {
	if v.nextID == 0 {
		v.nextID = 1
	}
	id := v.nextID
	v.nextID++
	v.layers = append(v.layers, &layer{id: id, mountPoint: mountPoint, backend: backend})
	return id
}

// Unmount removes exactly the layer with the given id. An unknown id leaves
// the stack untouched and returns an error wrapping ErrNotMounted.
func (v *VFS) Unmount(id MountID) error {
	for i, l := range v.layers {
		if l.id == id {
			v.layers = append(v.layers[:i:i], v.layers[i+1:]...)
			return nil
		}
	}
	return notMounted(id)
}

// UnmountAll removes every layer.
func (v *VFS) UnmountAll() {
	v.layers = nil
}

// Len returns the number of mounted layers.
func (v *VFS) Len() int {
	return len(v.layers)
}

// Layers lists the mounted layers from lowest to highest precedence.
func (v *VFS) Layers() []LayerInfo {
	out := make([]LayerInfo, len(v.layers))
	for i, l := range v.layers {
		out[i] = l.info()
	}
	return out
}

func (l *layer) info() LayerInfo {
	return LayerInfo{ID: l.id, MountPoint: l.mountPoint, Description: describe(l.backend)}
}

func describe(b Backend) string {
	if s, ok := b.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", b)
}

// PathInfo reports what path denotes. Ancestors of a mount point are
// directories; otherwise the most recently mounted layer that knows the path
// decides.
func (v *VFS) PathInfo(path vpath.Path) PathInfo {
	for i := len(v.layers) - 1; i >= 0; i-- {
		l := v.layers[i]
		if l.mountPoint.HasPrefix(path) {
			return Directory
		}
		if rel, ok := path.TrimPrefix(l.mountPoint); ok {
			if info := l.backend.PathInfo(rel); info != Unknown {
				return info
			}
		}
	}
	return Unknown
}

// OpenFile returns the contents of path from the most recently mounted layer
// that knows it. If that layer has a directory there, the result is
// ErrNotFound just like an absent path.
func (v *VFS) OpenFile(path vpath.Path) (*FileData, error) {
	for i := len(v.layers) - 1; i >= 0; i-- {
		l := v.layers[i]
		if l.mountPoint.HasPrefix(path) {
			return nil, NotFound(path)
		}
		rel, ok := path.TrimPrefix(l.mountPoint)
		if !ok {
			continue
		}
		switch l.backend.PathInfo(rel) {
		case File:
			f, err := l.backend.OpenFile(rel)
			if err != nil {
				return nil, err
			}
			return f.withPath(l.mountPoint.Join(f.Path())), nil
		case Directory:
			return nil, NotFound(path)
		}
	}
	return nil, NotFound(path)
}

// Find lists the entries below path across all layers. Entries provided by
// several layers are listed once, spelled as in the most recently mounted
// one. The result is sorted.
//
// A layer whose backend fails to list does not stop the merge: the entries
// of the other layers are still returned, together with an error joining
// every backend failure.
func (v *VFS) Find(path vpath.Path, mode TraversalMode, match Matcher) ([]vpath.Path, error) {
	if v.PathInfo(path) != Directory {
		return nil, NotDirectory(path)
	}
	if match == nil {
		match = MatchAll
	}

	seen := make(map[string]struct{})
	var out []vpath.Path
	var errs []error
	add := func(p vpath.Path) {
		key := p.Key()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}

	for i := len(v.layers) - 1; i >= 0; i-- {
		l := v.layers[i]
		if rel, ok := path.TrimPrefix(l.mountPoint); ok {
			if l.backend.PathInfo(rel) != Directory {
				continue
			}
			found, err := l.backend.Find(rel, mode, match)
			if err != nil {
				errs = append(errs, l.findError(err))
				continue
			}
			for _, p := range found {
				add(l.mountPoint.Join(p))
			}
			continue
		}

		// The mount point lies strictly below path: its ancestors are
		// implicit directories.
		rest, ok := l.mountPoint.TrimPrefix(path)
		if !ok {
			continue
		}
		for level := 1; level <= rest.Len() && mode.Allows(level); level++ {
			dir := l.mountPoint.Prefix(path.Len() + level)
			if match(dir, Directory) {
				add(dir)
			}
		}
		sub, ok := mode.Below(rest.Len())
		if !ok {
			continue
		}
		found, err := l.backend.Find(vpath.Root, sub, match)
		if err != nil {
			errs = append(errs, l.findError(err))
			continue
		}
		for _, p := range found {
			add(l.mountPoint.Join(p))
		}
	}

	sort.Slice(out, func(i, j int) bool { return vpath.Less(out[i], out[j]) })
	return out, errors.Join(errs...)
}

func (l *layer) findError(err error) error {
	return fmt.Errorf("layer #%d (%s): %w", l.id, describe(l.backend), err)
}

// Which tells which layer provides path and, where the backend supports it,
// the host location behind it.
func (v *VFS) Which(path vpath.Path) (Resolution, error) {
	for i := len(v.layers) - 1; i >= 0; i-- {
		l := v.layers[i]
		rel, ok := path.TrimPrefix(l.mountPoint)
		if !ok {
			continue
		}
		info := l.backend.PathInfo(rel)
		if info == Unknown {
			continue
		}
		res := Resolution{Layer: l.info(), Info: info, Relative: rel}
		if ap, ok := l.backend.(AbsolutePather); ok {
			res.Absolute = ap.Absolute(rel)
		}
		return res, nil
	}
	return Resolution{}, NotFound(path)
}

// MakeAbsolute returns the host location that provides path.
func (v *VFS) MakeAbsolute(path vpath.Path) (string, error) {
	res, err := v.Which(path)
	if err != nil {
		return "", err
	}
	if res.Absolute == "" {
		return "", fmt.Errorf("layer %d cannot locate %q: %w", res.Layer.ID, path, ErrNotFound)
	}
	return res.Absolute, nil
}
