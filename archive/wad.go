package archive

import (
	"github.com/dendrascience/assetvfs/vpath"
)

const (
	wad2Magic = "WAD2"
	wad3Magic = "WAD3"

	wadHeaderSize = 12
	wadRecordSize = 32
	wadNameSize   = 16
)

// ParseWAD parses a WAD2 or WAD3 texture wad.
//
// Entries are named by their lump name without any type extension, so a lump
// "X" is opened as "X" relative to wherever the wad is mounted.
func ParseWAD(path string, data []byte) (*Archive, error) {
	size := int64(len(data))
	if size < wadHeaderSize {
		return nil, formatError(path, nil, "file too short for a wad header")
	}
	h := header(data)
	if magic := string(data[:4]); magic != wad2Magic && magic != wad3Magic {
		return nil, formatError(path, nil, "bad magic %q", magic)
	}
	count := h.int32At(4)
	dirOff := h.int32At(8)
	if err := checkDirectory(path, dirOff, count, wadRecordSize, size); err != nil {
		return nil, err
	}

	a := newArchive(path, "wad")
	for i := int64(0); i < count; i++ {
		rec := header(data[dirOff+i*wadRecordSize : dirOff+(i+1)*wadRecordSize])
		off := rec.int32At(0)
		compSize := rec.int32At(4)
		fullSize := rec.int32At(8)
		name := cstring(rec[16 : 16+wadNameSize])

		if err := checkEntry(path, name, off, compSize, size); err != nil {
			return nil, err
		}
		if fullSize < 0 {
			return nil, formatError(path, map[string]interface{}{"entry": name}, "entry %q has negative size", name)
		}
		p := vpath.Parse(name)
		if p.IsRoot() {
			continue
		}
		e := Entry{
			Name:       p,
			Offset:     off,
			Length:     compSize,
			Size:       fullSize,
			Compressed: rec[13] != 0,
			Type:       rec[12],
		}
		if err := a.add(e, compSize, slice(data, off, compSize)); err != nil {
			return nil, err
		}
	}
	return a, nil
}
