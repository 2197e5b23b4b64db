package archive

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/dendrascience/assetvfs/vpath"
)

// ParseZip parses a zip-family package (zip, pk3, pk4).
func ParseZip(path string, data []byte) (*Archive, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, formatError(path, nil, "%v", err)
	}

	a := newArchive(path, "zip")
	for _, f := range r.File {
		name := vpath.Parse(f.Name)
		if name.IsRoot() {
			continue
		}
		if strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir() {
			if err := a.AddDirectory(name); err != nil {
				return nil, formatError(path, map[string]interface{}{"entry": f.Name}, "entry %q: %v", f.Name, err)
			}
			continue
		}
		off, err := f.DataOffset()
		if err != nil {
			return nil, formatError(path, map[string]interface{}{"entry": f.Name}, "entry %q: %v", f.Name, err)
		}
		e := Entry{
			Name:       name,
			Offset:     off,
			Length:     int64(f.CompressedSize64),
			Size:       int64(f.UncompressedSize64),
			Compressed: f.Method != zip.Store,
		}
		if err := checkEntry(path, f.Name, e.Offset, e.Length, int64(len(data))); err != nil {
			return nil, err
		}
		if err := a.add(e, e.Size, zipOpener(f)); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func zipOpener(f *zip.File) func() ([]byte, error) {
	return func() ([]byte, error) {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		out, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		return out, nil
	}
}
