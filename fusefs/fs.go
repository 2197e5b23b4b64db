package fusefs

import (
	"context"
	"errors"
	"os"
	"sync"
	"syscall"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/dendrascience/assetvfs/vfs"
	"github.com/dendrascience/assetvfs/vpath"
)

// FS serves a VFS over FUSE. The VFS itself is not safe for concurrent use,
// so every access goes through the FS lock.
type FS struct {
	mu     sync.Mutex
	vfs    *vfs.VFS
	inodes *inodeTable
	// gen counts calls to Update. File contents cached under an older
	// generation are read again.
	gen uint64
}

var (
	_ fs.FS                 = (*FS)(nil)
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.Node               = (*File)(nil)
	_ fs.HandleReadAller    = (*File)(nil)
)

// New returns a FUSE file system backed by v.
func New(v *vfs.VFS) *FS {
	return &FS{vfs: v, inodes: newInodeTable()}
}

// Root implements fs.FS.
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f, path: vpath.Root}, nil
}

// Update runs fn while holding the lock, for callers that mount or unmount
// layers of a served VFS.
func (f *FS) Update(fn func(v *vfs.VFS) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	return fn(f.vfs)
}

func (f *FS) pathInfo(p vpath.Path) vfs.PathInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.vfs.PathInfo(p)
}

func (f *FS) node(p vpath.Path, info vfs.PathInfo) fs.Node {
	if info == vfs.Directory {
		return &Dir{fs: f, path: p}
	}
	return &File{fs: f, path: p}
}

// Dir is a directory node.
type Dir struct {
	fs   *FS
	path vpath.Path
}

// Attr returns directory attributes.
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = d.fs.inodes.get(d.path)
	a.Mode = os.ModeDir | 0o555
	return nil
}

// Lookup resolves name inside the directory, ignoring case.
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	child := d.path.Append(name)
	switch info := d.fs.pathInfo(child); info {
	case vfs.Directory, vfs.File:
		return d.fs.node(child, info), nil
	}
	return nil, syscall.ENOENT
}

// ReadDirAll lists the merged contents of every layer below the directory.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	children, err := d.fs.vfs.Find(d.path, vfs.Flat, nil)
	if err != nil {
		// The mount root stays listable with nothing mounted.
		if d.path.IsRoot() && errors.Is(err, vfs.ErrNotDirectory) {
			return []fuse.Dirent{}, nil
		}
		return nil, errno(err)
	}

	dirents := make([]fuse.Dirent, 0, len(children))
	for _, child := range children {
		typ := fuse.DT_File
		if d.fs.vfs.PathInfo(child) == vfs.Directory {
			typ = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{
			Inode: d.fs.inodes.get(child),
			Name:  child.Base(),
			Type:  typ,
		})
	}
	return dirents, nil
}

// File is a regular file node. Contents are read on first use and kept
// until the next Update.
type File struct {
	fs   *FS
	path vpath.Path

	mu     sync.Mutex
	data   []byte
	gen    uint64
	loaded bool
}

func (f *File) load() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	if f.loaded && f.gen == f.fs.gen {
		return f.data, nil
	}

	fd, err := f.fs.vfs.OpenFile(f.path)
	if err != nil {
		f.data, f.loaded = nil, false
		return nil, errno(err)
	}
	f.data, f.gen, f.loaded = fd.Bytes(), f.fs.gen, true
	return f.data, nil
}

// Attr returns file attributes.
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	data, err := f.load()
	if err != nil {
		return err
	}
	a.Inode = f.fs.inodes.get(f.path)
	a.Mode = 0o444
	a.Size = uint64(len(data))
	return nil
}

// ReadAll returns the file contents.
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	return f.load()
}

func errno(err error) error {
	switch {
	case errors.Is(err, vfs.ErrNotFound):
		return syscall.ENOENT
	case errors.Is(err, vfs.ErrNotDirectory):
		return syscall.ENOTDIR
	}
	return syscall.EIO
}

// Mount attaches a read-only FUSE connection at mountpoint. The caller serves
// it with fs.Serve and closes it when done.
func Mount(mountpoint string) (*fuse.Conn, error) {
	return fuse.Mount(
		mountpoint,
		fuse.FSName("assetvfs"),
		fuse.Subtype("assetvfs"),
		fuse.ReadOnly(),
	)
}
