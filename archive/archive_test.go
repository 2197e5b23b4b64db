package archive

import (
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/assetvfs/archive/fixture"
	"github.com/dendrascience/assetvfs/vfs"
	"github.com/dendrascience/assetvfs/vpath"
)

func sampleFiles() []fixture.File {
	return []fixture.File{
		{Name: "WALL1", Data: []byte("stone wall"), Type: 0x44},
		{Name: "sky", Data: []byte{0, 0, 0, 1, 2, 3}},
		{Name: "+0button", Data: []byte("button frame zero")},
	}
}

func open(t *testing.T, a *Archive, name string) []byte {
	t.Helper()
	f, err := a.OpenFile(vpath.Parse(name))
	require.NoError(t, err)
	return f.Bytes()
}

func TestWADRoundTrip(t *testing.T) {
	files := sampleFiles()
	for _, magic := range []string{"WAD2", "WAD3"} {
		t.Run(magic, func(t *testing.T) {
			data, layout := fixture.WADLayout(magic, files...)
			a, err := ParseWAD("textures.wad", data)
			require.NoError(t, err)

			entries := a.Entries()
			require.Len(t, entries, len(files))
			for i, f := range files {
				assert.Equal(t, f.Name, entries[i].Name.String())
				assert.Equal(t, int64(layout.Offsets[i]), entries[i].Offset)
				assert.Equal(t, int64(len(f.Data)), entries[i].Length)
				assert.Equal(t, f.Type, entries[i].Type)
				assert.Equal(t, f.Data, open(t, a, f.Name))
			}
		})
	}
}

func TestWADNamesAreCaseInsensitive(t *testing.T) {
	a, err := ParseWAD("textures.wad", fixture.WAD(sampleFiles()...))
	require.NoError(t, err)

	assert.Equal(t, vfs.File, a.PathInfo(vpath.Parse("wall1")))
	assert.Equal(t, []byte("stone wall"), open(t, a, "Wall1"))
	assert.Equal(t, vfs.Unknown, a.PathInfo(vpath.Parse("wall2")))

	// A full 16-byte name has no terminator.
	a, err = ParseWAD("long.wad", fixture.WAD(fixture.File{Name: "ABCDEFGHIJKLMNOP", Data: []byte("x")}))
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGHIJKLMNOP", a.Entries()[0].Name.String())
}

func TestWADRejectsMalformed(t *testing.T) {
	valid, layout := fixture.WADLayout("WAD2", sampleFiles()...)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   string
	}{
		{
			name:   "bad magic",
			mutate: func(b []byte) []byte { copy(b, "WAD9"); return b },
			want:   "bad magic",
		},
		{
			name:   "truncated header",
			mutate: func(b []byte) []byte { return b[:8] },
			want:   "too short",
		},
		{
			name: "directory past end",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[8:], uint32(len(b)))
				return b
			},
			want: "exceeds archive size",
		},
		{
			name: "too many entries",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[4:], 100)
				return b
			},
			want: "exceeds archive size",
		},
		{
			name: "negative count",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[4:], 0xffffffff)
				return b
			},
			want: "negative entry count",
		},
		{
			name: "entry past end",
			mutate: func(b []byte) []byte {
				rec := layout.DirectoryOffset + wadRecordSize
				binary.LittleEndian.PutUint32(b[rec+4:], uint32(len(b)))
				return b
			},
			want: "exceeds archive size",
		},
		{
			name: "negative entry offset",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[layout.DirectoryOffset:], 0xfffffff0)
				return b
			},
			want: "negative offset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte(nil), valid...))
			a, err := ParseWAD("bad.wad", data)
			require.Error(t, err)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, ErrFormat)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "bad.wad")
		})
	}
}

func TestPakFamily(t *testing.T) {
	files := []fixture.File{
		{Name: "maps/e1m1.bsp", Data: []byte("bsp data")},
		{Name: "progs/player.mdl", Data: []byte(strings.Repeat("\x00", 40) + "model")},
		{Name: "gfx/palette.lmp", Data: []byte("aaaaaaaaaabbbbbbbbbbcdefg")},
	}

	stored := func(b []byte) []byte { return b }

	tests := []struct {
		name   string
		data   []byte
		parse  Parser
		format string
		// stored maps file contents to the bytes the pak keeps for them.
		stored     func([]byte) []byte
		compressed bool
	}{
		{name: "id", data: fixture.IDPak(files...), parse: ParseIDPak, format: "idpak", stored: stored},
		{name: "daikatana", data: fixture.DKPak(files...), parse: ParseDKPak, format: "dkpak", stored: fixture.Compress, compressed: true},
		{name: "sin", data: fixture.SinPak(files...), parse: ParseSinPak, format: "sinpak", stored: stored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.parse("pak0.pak", tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.format, a.Format())
			entries := a.Entries()
			require.Len(t, entries, len(files))

			// Entry data follows the 12-byte header in directory order.
			off := int64(12)
			for i, f := range files {
				n := int64(len(tt.stored(f.Data)))
				assert.Equal(t, f.Name, entries[i].Name.String())
				assert.Equal(t, off, entries[i].Offset, f.Name)
				assert.Equal(t, n, entries[i].Length, f.Name)
				assert.Equal(t, int64(len(f.Data)), entries[i].Size, f.Name)
				assert.Equal(t, tt.compressed, entries[i].Compressed, f.Name)
				assert.Equal(t, f.Data, open(t, a, strings.ToUpper(f.Name)), f.Name)
				off += n
			}

			found, err := a.Find(vpath.Root, vfs.Flat, nil)
			require.NoError(t, err)
			assert.Equal(t, []string{"gfx", "maps", "progs"}, pathStrings(found))

			assert.Equal(t, "pak0.pak/maps/e1m1.bsp", a.Absolute(vpath.Parse("maps/e1m1.bsp")))
		})
	}

	t.Run("layout", func(t *testing.T) {
		data, layout := fixture.PakLayout(files...)
		a, err := ParseIDPak("pak0.pak", data)
		require.NoError(t, err)
		for i, e := range a.Entries() {
			assert.Equal(t, int64(layout.Offsets[i]), e.Offset)
			assert.Equal(t, int64(len(files[i].Data)), e.Length)
		}
	})
}

func TestPakRejectsMalformed(t *testing.T) {
	files := []fixture.File{{Name: "a.txt", Data: []byte("hello")}}

	t.Run("wrong magic for sin", func(t *testing.T) {
		_, err := ParseSinPak("x.pak", fixture.IDPak(files...))
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("ragged directory", func(t *testing.T) {
		data := fixture.IDPak(files...)
		binary.LittleEndian.PutUint32(data[8:], 63)
		_, err := ParseIDPak("x.pak", data)
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("entry past end", func(t *testing.T) {
		data, layout := fixture.PakLayout(files...)
		binary.LittleEndian.PutUint32(data[layout.DirectoryOffset+60:], 1000)
		_, err := ParseIDPak("x.pak", data)
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("directory past end", func(t *testing.T) {
		data := fixture.IDPak(files...)
		binary.LittleEndian.PutUint32(data[4:], uint32(len(data)-10))
		_, err := ParseIDPak("x.pak", data)
		assert.ErrorIs(t, err, ErrFormat)
	})
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		size int64
		want []byte
	}{
		{name: "literal", src: []byte{2, 'a', 'b', 'c', 255}, size: 3, want: []byte("abc")},
		{name: "zeros", src: []byte{64, 255}, size: 2, want: []byte{0, 0}},
		{name: "repeat", src: []byte{129, 'z', 255}, size: 3, want: []byte("zzz")},
		{
			name: "overlapping back reference",
			src:  []byte{1, 'a', 'b', 194, 0, 255},
			size: 6,
			want: []byte("ababab"),
		},
		{name: "empty", src: []byte{255}, size: 0, want: []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.src, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Expand([]byte{5, 'a'}, 6)
	assert.Error(t, err)
	_, err = Expand([]byte{192, 5, 255}, 2)
	assert.Error(t, err)
	_, err = Expand([]byte{2, 'a', 'b', 'c', 255}, 4)
	assert.Error(t, err)
	_, err = Expand([]byte{254, 255}, 0)
	assert.Error(t, err)
}

func TestCompressRoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("a"),
		[]byte(strings.Repeat("x", 200)),
		make([]byte, 130),
		[]byte(strings.Repeat("abcdefgh", 20) + strings.Repeat("\x00", 3) + "tail"),
	}
	for i, in := range inputs {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			got, err := Expand(fixture.Compress(in), int64(len(in)))
			require.NoError(t, err)
			assert.Equal(t, len(in), len(got))
			if len(in) > 0 {
				assert.Equal(t, in, got)
			}
		})
	}
}

func TestZip(t *testing.T) {
	data, err := fixture.Zip(
		fixture.File{Name: "textures/base/wall.tga", Data: []byte("targa")},
		fixture.File{Name: "scripts/shaders.shader", Data: []byte(strings.Repeat("textures/base/wall\n", 30))},
		fixture.File{Name: "empty/", Data: nil},
	)
	require.NoError(t, err)

	a, err := ParseZip("pak0.pk3", data)
	require.NoError(t, err)
	assert.Len(t, a.Entries(), 2)
	assert.Equal(t, []byte("targa"), open(t, a, "Textures/Base/Wall.TGA"))
	assert.Equal(t, vfs.Directory, a.PathInfo(vpath.Parse("empty")))

	size, ok := a.Size(vpath.Parse("scripts/shaders.shader"))
	require.True(t, ok)
	assert.Equal(t, int64(30*len("textures/base/wall\n")), size)

	_, err = ParseZip("broken.pk3", data[:len(data)/2])
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLookupAndDetect(t *testing.T) {
	for _, tag := range []string{"idpak", "DKPAK", "sinpak", "zip", "wad2"} {
		_, err := Lookup(tag)
		assert.NoError(t, err, tag)
	}
	_, err := Lookup("grp")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, Formats(), "idpak")

	zipData, err := fixture.Zip(fixture.File{Name: "a", Data: []byte("a")})
	require.NoError(t, err)
	files := []fixture.File{{Name: "a", Data: []byte("a")}}

	cases := map[string][]byte{
		"wad":    fixture.WAD(files...),
		"idpak":  fixture.IDPak(files...),
		"dkpak":  fixture.DKPak(files...),
		"sinpak": fixture.SinPak(files...),
		"zip":    zipData,
	}
	for want, data := range cases {
		parse, format, err := Detect("x", data)
		require.NoError(t, err, want)
		assert.Equal(t, want, format)
		_, err = parse("x", data)
		assert.NoError(t, err, want)
	}

	_, _, err = Detect("x", []byte("GRP!"))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestFingerprint(t *testing.T) {
	files := sampleFiles()
	a, err := ParseWAD("a.wad", fixture.WAD(files...))
	require.NoError(t, err)

	reversed := []fixture.File{files[2], files[1], files[0]}
	reversed[0].Name = strings.ToUpper(reversed[0].Name)
	b, err := ParseWAD("b.wad", fixture.WAD(reversed...))
	require.NoError(t, err)

	fa := Fingerprint(a)
	assert.Equal(t, fa, Fingerprint(b))
	assert.Regexp(t, `^\d{3}-[0-9a-f]{64}$`, fa)

	c, err := ParseWAD("c.wad", fixture.WAD(files[:2]...))
	require.NoError(t, err)
	assert.NotEqual(t, fa, Fingerprint(c))
}

func pathStrings(ps []vpath.Path) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}
