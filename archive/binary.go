package archive

import (
	"bytes"
	"encoding/binary"
)

// header reads little-endian int32 fields from the start of an archive.
type header []byte

func (h header) int32At(off int) int64 {
	return int64(int32(binary.LittleEndian.Uint32(h[off : off+4])))
}

// cstring returns b up to the first NUL.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// checkDirectory validates that count records of recordSize bytes starting at
// off lie inside an archive of size bytes.
func checkDirectory(path string, off, count, recordSize, size int64) error {
	ctx := map[string]interface{}{"offset": off, "count": count}
	switch {
	case off < 0:
		return formatError(path, ctx, "negative directory offset %d", off)
	case count < 0:
		return formatError(path, ctx, "negative entry count %d", count)
	case off > size || count*recordSize > size-off:
		return formatError(path, ctx, "directory at %d with %d entries exceeds archive size %d", off, count, size)
	}
	return nil
}

// checkEntry validates that an entry's bytes lie inside the archive.
func checkEntry(path, name string, off, length, size int64) error {
	ctx := map[string]interface{}{"entry": name, "offset": off, "length": length}
	switch {
	case off < 0 || length < 0:
		return formatError(path, ctx, "entry %q has negative offset or length", name)
	case off > size || length > size-off:
		return formatError(path, ctx, "entry %q at %d+%d exceeds archive size %d", name, off, length, size)
	}
	return nil
}
