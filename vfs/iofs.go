package vfs

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/dendrascience/assetvfs/vpath"
)

// FS exposes a mount table as a read-only io/fs.FS, so that fs.WalkDir,
// fs.Glob and http.FS work on the merged view.
func FS(v *VFS) fs.FS {
	return &ioFS{v: v}
}

type ioFS struct {
	v *VFS
}

var (
	_ fs.ReadDirFS  = (*ioFS)(nil)
	_ fs.ReadFileFS = (*ioFS)(nil)
	_ fs.StatFS     = (*ioFS)(nil)
)

func (f *ioFS) resolve(op, name string) (vpath.Path, error) {
	if !fs.ValidPath(name) {
		return vpath.Root, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	// Only "/" separates names here; a backslash is part of a name, and no
	// layer can hold such a name.
	if strings.ContainsRune(name, '\\') {
		return vpath.Root, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	if name == "." {
		return vpath.Root, nil
	}
	return vpath.New(strings.Split(name, "/")...), nil
}

func (f *ioFS) Open(name string) (fs.File, error) {
	p, err := f.resolve("open", name)
	if err != nil {
		return nil, err
	}
	switch f.v.PathInfo(p) {
	case File:
		data, err := f.v.OpenFile(p)
		if err != nil {
			return nil, &fs.PathError{Op: "open", Path: name, Err: translate(err)}
		}
		return &ioFile{data: data, r: data.Reader()}, nil
	case Directory:
		entries, err := f.ReadDir(name)
		if err != nil {
			return nil, err
		}
		return &ioDir{info: dirInfo(p), entries: entries}, nil
	default:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
}

func (f *ioFS) ReadFile(name string) ([]byte, error) {
	p, err := f.resolve("readfile", name)
	if err != nil {
		return nil, err
	}
	data, err := f.v.OpenFile(p)
	if err != nil {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: translate(err)}
	}
	return data.Bytes(), nil
}

func (f *ioFS) Stat(name string) (fs.FileInfo, error) {
	p, err := f.resolve("stat", name)
	if err != nil {
		return nil, err
	}
	return f.stat(p, name)
}

func (f *ioFS) stat(p vpath.Path, name string) (fs.FileInfo, error) {
	switch f.v.PathInfo(p) {
	case Directory:
		return dirInfo(p), nil
	case File:
		data, err := f.v.OpenFile(p)
		if err != nil {
			return nil, &fs.PathError{Op: "stat", Path: name, Err: translate(err)}
		}
		return fileInfo{name: p.Base(), size: int64(data.Len())}, nil
	default:
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
}

func (f *ioFS) ReadDir(name string) ([]fs.DirEntry, error) {
	p, err := f.resolve("readdir", name)
	if err != nil {
		return nil, err
	}
	children, err := f.v.Find(p, Flat, nil)
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: translate(err)}
	}
	out := make([]fs.DirEntry, 0, len(children))
	for _, child := range children {
		info, err := f.stat(child, child.String())
		if err != nil {
			return nil, err
		}
		out = append(out, fs.FileInfoToDirEntry(info))
	}
	return out, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fs.ErrNotExist
	case errors.Is(err, ErrNotDirectory):
		return fs.ErrInvalid
	default:
		return err
	}
}

type fileInfo struct {
	name string
	size int64
	dir  bool
}

func dirInfo(p vpath.Path) fileInfo {
	name := p.Base()
	if p.IsRoot() {
		name = "."
	}
	return fileInfo{name: name, dir: true}
}

func (i fileInfo) Name() string       { return i.name }
func (i fileInfo) Size() int64        { return i.size }
func (i fileInfo) ModTime() time.Time { return time.Time{} }
func (i fileInfo) IsDir() bool        { return i.dir }
func (i fileInfo) Sys() any           { return nil }

func (i fileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}

type ioFile struct {
	data *FileData
	r    io.ReadSeeker
}

func (f *ioFile) Stat() (fs.FileInfo, error) {
	return fileInfo{name: f.data.Path().Base(), size: int64(f.data.Len())}, nil
}

func (f *ioFile) Read(b []byte) (int, error)                { return f.r.Read(b) }
func (f *ioFile) Seek(off int64, whence int) (int64, error) { return f.r.Seek(off, whence) }
func (f *ioFile) ReadAt(b []byte, off int64) (int, error)   { return f.data.ReadAt(b, off) }
func (f *ioFile) Close() error                              { return nil }

type ioDir struct {
	info    fileInfo
	entries []fs.DirEntry
	offset  int
}

func (d *ioDir) Stat() (fs.FileInfo, error) { return d.info, nil }
func (d *ioDir) Close() error               { return nil }

func (d *ioDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.info.name, Err: fs.ErrInvalid}
}

func (d *ioDir) ReadDir(n int) ([]fs.DirEntry, error) {
	rest := d.entries[d.offset:]
	if n <= 0 {
		d.offset = len(d.entries)
		return rest, nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	if n > len(rest) {
		n = len(rest)
	}
	d.offset += n
	return rest[:n], nil
}
