package archive

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dendrascience/assetvfs/vfs"
	"github.com/dendrascience/assetvfs/vpath"
)

// Entry is one named byte range in an archive directory.
type Entry struct {
	Name vpath.Path
	// Offset and Length locate the stored bytes in the archive.
	Offset int64
	Length int64
	// Size is the length recorded for the decompressed data.
	Size       int64
	Compressed bool
	// Type is the WAD lump type; zero for other formats.
	Type byte
}

// Archive is a parsed archive. It serves its entries through the embedded
// tree and keeps the raw archive bytes alive for as long as it is mounted.
type Archive struct {
	*vfs.Tree
	path    string
	format  string
	entries []Entry
}

var (
	_ vfs.Backend        = (*Archive)(nil)
	_ vfs.AbsolutePather = (*Archive)(nil)
)

func newArchive(path, format string) *Archive {
	return &Archive{
		Tree:   vfs.NewTree(fmt.Sprintf("%s (%s)", path, format)),
		path:   path,
		format: format,
	}
}

// add registers e and serves size bytes for it through open.
func (a *Archive) add(e Entry, size int64, open vfs.Opener) error {
	if err := a.AddFile(e.Name, size, open); err != nil {
		return formatError(a.path, map[string]interface{}{"entry": e.Name.String()},
			"entry %q: %v", e.Name, err)
	}
	a.entries = append(a.entries, e)
	return nil
}

// Path returns the host path the archive was read from.
func (a *Archive) Path() string {
	return a.path
}

// Format returns the format tag the archive was parsed with.
func (a *Archive) Format() string {
	return a.format
}

// Entries returns the directory in archive order.
func (a *Archive) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Absolute implements vfs.AbsolutePather.
func (a *Archive) Absolute(p vpath.Path) string {
	if p.IsRoot() {
		return a.path
	}
	return a.path + "/" + p.String()
}

// slice returns an Opener copying data[off:off+n]. Bounds must already have
// been validated.
func slice(data []byte, off, n int64) vfs.Opener {
	return func() ([]byte, error) {
		out := make([]byte, n)
		copy(out, data[off:off+n])
		return out, nil
	}
}

// Parser parses the archive bytes read from path.
type Parser func(path string, data []byte) (*Archive, error)

var parsers = map[string]Parser{
	"wad2":   ParseWAD,
	"wad3":   ParseWAD,
	"wad":    ParseWAD,
	"idpak":  ParseIDPak,
	"dkpak":  ParseDKPak,
	"sinpak": ParseSinPak,
	"zip":    ParseZip,
}

// Lookup returns the parser registered for a package format tag.
func Lookup(format string) (Parser, error) {
	p, ok := parsers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return p, nil
}

// Formats lists the known format tags.
func Formats() []string {
	out := make([]string, 0, len(parsers))
	for tag := range parsers {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Detect picks a parser from the leading magic bytes, falling back to the
// file extension for formats whose magic is shared.
func Detect(path string, data []byte) (Parser, string, error) {
	if len(data) >= 4 {
		switch string(data[:4]) {
		case wad2Magic, wad3Magic:
			return ParseWAD, "wad", nil
		case sinMagic:
			return ParseSinPak, "sinpak", nil
		case "PK\x03\x04", "PK\x05\x06":
			return ParseZip, "zip", nil
		case pakMagic:
			if isDKPak(data) {
				return ParseDKPak, "dkpak", nil
			}
			return ParseIDPak, "idpak", nil
		}
	}
	return nil, "", formatError(path, nil, "unrecognised magic")
}
