package archive

import (
	"github.com/dendrascience/assetvfs/vpath"
)

const (
	pakMagic = "PACK"
	sinMagic = "SPAK"

	pakHeaderSize = 12
	pakNameSize   = 56

	idPakRecordSize  = 64
	dkPakRecordSize  = 72
	sinPakRecordSize = 128
	sinPakNameSize   = 120
)

// pakLayout describes one member of the PAK family. All of them share the
// header {magic, directory offset, directory size in bytes}.
type pakLayout struct {
	format     string
	magic      string
	recordSize int64
	nameSize   int
	// dk records carry a compressed length and flag after offset and length.
	dk bool
}

var (
	idPak  = pakLayout{format: "idpak", magic: pakMagic, recordSize: idPakRecordSize, nameSize: pakNameSize}
	dkPak  = pakLayout{format: "dkpak", magic: pakMagic, recordSize: dkPakRecordSize, nameSize: pakNameSize, dk: true}
	sinPak = pakLayout{format: "sinpak", magic: sinMagic, recordSize: sinPakRecordSize, nameSize: sinPakNameSize}
)

// ParseIDPak parses a Quake or Quake II pak file.
func ParseIDPak(path string, data []byte) (*Archive, error) {
	return parsePak(idPak, path, data)
}

// ParseDKPak parses a Daikatana pak file. Compressed entries are expanded
// when opened.
func ParseDKPak(path string, data []byte) (*Archive, error) {
	return parsePak(dkPak, path, data)
}

// ParseSinPak parses a SiN pak file.
func ParseSinPak(path string, data []byte) (*Archive, error) {
	return parsePak(sinPak, path, data)
}

func parsePak(layout pakLayout, path string, data []byte) (*Archive, error) {
	size := int64(len(data))
	if size < pakHeaderSize {
		return nil, formatError(path, nil, "file too short for a %s header", layout.format)
	}
	if magic := string(data[:4]); magic != layout.magic {
		return nil, formatError(path, nil, "bad magic %q", magic)
	}
	h := header(data)
	dirOff := h.int32At(4)
	dirSize := h.int32At(8)
	if dirSize%layout.recordSize != 0 {
		return nil, formatError(path, map[string]interface{}{"length": dirSize},
			"directory size %d is not a multiple of %d", dirSize, layout.recordSize)
	}
	count := dirSize / layout.recordSize
	if err := checkDirectory(path, dirOff, count, layout.recordSize, size); err != nil {
		return nil, err
	}

	a := newArchive(path, layout.format)
	for i := int64(0); i < count; i++ {
		rec := header(data[dirOff+i*layout.recordSize : dirOff+(i+1)*layout.recordSize])
		name := cstring(rec[:layout.nameSize])
		off := rec.int32At(layout.nameSize)
		length := rec.int32At(layout.nameSize + 4)

		e := Entry{Offset: off, Length: length, Size: length}
		if layout.dk && rec.int32At(layout.nameSize+12) != 0 {
			// length is the expanded size; the stored bytes are compLen long.
			e.Compressed = true
			e.Length = rec.int32At(layout.nameSize + 8)
		}
		if err := checkEntry(path, name, e.Offset, e.Length, size); err != nil {
			return nil, err
		}
		if e.Size < 0 {
			return nil, formatError(path, map[string]interface{}{"entry": name}, "entry %q has negative size", name)
		}

		e.Name = vpath.Parse(name)
		if e.Name.IsRoot() {
			continue
		}
		open := slice(data, e.Offset, e.Length)
		if e.Compressed {
			open = expandOpener(path, name, data[e.Offset:e.Offset+e.Length], e.Size)
		}
		if err := a.add(e, e.Size, open); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// isDKPak reports whether a PACK file has a Daikatana directory. The two
// layouts share their magic; only a directory size that fits 72-byte but not
// 64-byte records tells them apart.
func isDKPak(data []byte) bool {
	if len(data) < pakHeaderSize {
		return false
	}
	dirSize := header(data).int32At(8)
	return dirSize%dkPakRecordSize == 0 && dirSize%idPakRecordSize != 0
}
