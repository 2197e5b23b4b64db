package vfs

import (
	"strings"

	"github.com/dendrascience/assetvfs/vpath"
)

// PathInfo classifies a path within a backend or the whole mount table.
type PathInfo int

const (
	// Unknown means the path does not exist.
	Unknown PathInfo = iota
	// Directory means the path names a directory.
	Directory
	// File means the path names a file.
	File
)

// String returns a string representation of the PathInfo.
func (i PathInfo) String() string {
	switch i {
	case Directory:
		return "directory"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// Backend is a single source of bytes that can be mounted into a VFS.
//
// All paths handed to a backend are relative to the backend's own root; the
// mount table strips the mount point before calling it.
type Backend interface {
	// Find lists the entries below path, which must be a directory. Returned
	// paths include path itself as prefix.
	Find(path vpath.Path, mode TraversalMode, match Matcher) ([]vpath.Path, error)

	// OpenFile returns the contents of the file at path.
	OpenFile(path vpath.Path) (*FileData, error)

	// PathInfo reports whether path is a file, a directory or absent.
	PathInfo(path vpath.Path) PathInfo
}

// AbsolutePather is implemented by backends that can tell where a path lives
// outside the virtual file system, e.g. on disk or inside an archive.
type AbsolutePather interface {
	Absolute(path vpath.Path) string
}

// TraversalMode bounds how deep Find descends. The zero value is Flat.
type TraversalMode struct {
	depth int
}

var (
	// Flat lists direct children only.
	Flat = TraversalMode{depth: 0}
	// Recursive lists every descendant.
	Recursive = TraversalMode{depth: -1}
)

// Depth lists direct children plus n further levels.
func Depth(n int) TraversalMode {
	if n < 0 {
		return Recursive
	}
	return TraversalMode{depth: n}
}

// IsRecursive reports whether the mode is unbounded.
func (m TraversalMode) IsRecursive() bool {
	return m.depth < 0
}

// Allows reports whether an entry level levels below the search root is
// listed. Direct children are at level 1.
func (m TraversalMode) Allows(level int) bool {
	return m.depth < 0 || level <= m.depth+1
}

// Below returns the mode to use after descending levels levels. ok is false
// when nothing further down would be listed.
func (m TraversalMode) Below(levels int) (mode TraversalMode, ok bool) {
	if m.depth < 0 {
		return m, true
	}
	if m.depth-levels < 0 {
		return m, false
	}
	return TraversalMode{depth: m.depth - levels}, true
}

// Matcher selects which entries Find returns. Traversal continues into
// directories regardless of whether they matched.
type Matcher func(path vpath.Path, info PathInfo) bool

// MatchAll accepts every entry.
func MatchAll(vpath.Path, PathInfo) bool { return true }

// MatchFiles accepts files only.
func MatchFiles(_ vpath.Path, info PathInfo) bool { return info == File }

// MatchExtensions accepts files whose extension is one of exts, ignoring case.
// Extensions may be given with or without the leading dot.
func MatchExtensions(exts ...string) Matcher {
	want := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		want[NormalizeExtension(ext)] = struct{}{}
	}
	return func(path vpath.Path, info PathInfo) bool {
		if info != File {
			return false
		}
		_, ok := want[vpath.Fold(path.Ext())]
		return ok
	}
}

// And accepts entries accepted by every matcher.
func And(matchers ...Matcher) Matcher {
	return func(path vpath.Path, info PathInfo) bool {
		for _, m := range matchers {
			if !m(path, info) {
				return false
			}
		}
		return true
	}
}

// NormalizeExtension folds ext and ensures it starts with a dot.
func NormalizeExtension(ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return vpath.Fold(ext)
}
