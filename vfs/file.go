package vfs

import (
	"bytes"
	"io"

	"github.com/dendrascience/assetvfs/vpath"
)

// FileData is the immutable content of an opened file.
//
// It owns its bytes, so it stays valid after the layer it came from has been
// unmounted. The buffer is never handed out for writing; Bytes returns a copy.
type FileData struct {
	path vpath.Path
	data []byte
}

// NewFileData wraps data as the content of path. The caller must not modify
// data afterwards.
func NewFileData(path vpath.Path, data []byte) *FileData {
	return &FileData{path: path, data: data}
}

// Path returns the path the file was opened under.
func (f *FileData) Path() vpath.Path {
	return f.path
}

// Len returns the size of the file in bytes.
func (f *FileData) Len() int {
	return len(f.data)
}

// ReadAt implements io.ReaderAt.
func (f *FileData) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Reader returns a new reader over the file contents.
func (f *FileData) Reader() *bytes.Reader {
	return bytes.NewReader(f.data)
}

// Bytes returns a copy of the file contents.
func (f *FileData) Bytes() []byte {
	out := make([]byte, len(f.data))
	copy(out, f.data)
	return out
}

// withPath returns a view of the same contents under another path.
func (f *FileData) withPath(p vpath.Path) *FileData {
	return &FileData{path: p, data: f.data}
}
