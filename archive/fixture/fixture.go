// Package fixture builds small, well-formed archives in memory. Tests use it
// to exercise the parsers and the seed command uses it to write sample
// packages to disk.
package fixture

import (
	"bytes"
	"encoding/binary"

	"github.com/klauspost/compress/zip"
)

// File is one entry to put into an archive.
type File struct {
	Name string
	Data []byte
	// Type is the WAD lump type. Ignored by other formats.
	Type byte
}

// Layout records where each entry ended up.
type Layout struct {
	DirectoryOffset int
	Offsets         []int
}

func putName(buf []byte, name string) {
	copy(buf, name)
}

func le32(b []byte, v int) {
	binary.LittleEndian.PutUint32(b, uint32(int32(v)))
}

// WAD builds a WAD2 file.
func WAD(files ...File) []byte {
	data, _ := WADLayout("WAD2", files...)
	return data
}

// WADLayout builds a wad with the given magic and reports its layout.
func WADLayout(magic string, files ...File) ([]byte, Layout) {
	var body bytes.Buffer
	body.Write(make([]byte, 12))
	layout := Layout{}
	for _, f := range files {
		layout.Offsets = append(layout.Offsets, body.Len())
		body.Write(f.Data)
	}
	layout.DirectoryOffset = body.Len()
	for i, f := range files {
		rec := make([]byte, 32)
		le32(rec[0:], layout.Offsets[i])
		le32(rec[4:], len(f.Data))
		le32(rec[8:], len(f.Data))
		rec[12] = f.Type
		putName(rec[16:32], f.Name)
		body.Write(rec)
	}
	out := body.Bytes()
	copy(out, magic)
	le32(out[4:], len(files))
	le32(out[8:], layout.DirectoryOffset)
	return out, layout
}

// IDPak builds a Quake pak file.
func IDPak(files ...File) []byte {
	data, _ := pak("PACK", 64, 56, files, func(rec []byte, i, off int, f File) {
		le32(rec[56:], off)
		le32(rec[60:], len(f.Data))
	})
	return data
}

// SinPak builds a SiN pak file.
func SinPak(files ...File) []byte {
	data, _ := pak("SPAK", 128, 120, files, func(rec []byte, i, off int, f File) {
		le32(rec[120:], off)
		le32(rec[124:], len(f.Data))
	})
	return data
}

// DKPak builds a Daikatana pak file. Every entry is stored compressed.
func DKPak(files ...File) []byte {
	stored := make([]File, len(files))
	for i, f := range files {
		stored[i] = File{Name: f.Name, Data: Compress(f.Data)}
	}
	data, _ := pak("PACK", 72, 56, stored, func(rec []byte, i, off int, f File) {
		le32(rec[56:], off)
		le32(rec[60:], len(files[i].Data))
		le32(rec[64:], len(f.Data))
		le32(rec[68:], 1)
	})
	return data
}

// PakLayout builds an id pak file and reports its layout.
func PakLayout(files ...File) ([]byte, Layout) {
	return pak("PACK", 64, 56, files, func(rec []byte, i, off int, f File) {
		le32(rec[56:], off)
		le32(rec[60:], len(f.Data))
	})
}

func pak(magic string, recordSize, nameSize int, files []File, record func(rec []byte, i, off int, f File)) ([]byte, Layout) {
	var body bytes.Buffer
	body.Write(make([]byte, 12))
	layout := Layout{}
	for _, f := range files {
		layout.Offsets = append(layout.Offsets, body.Len())
		body.Write(f.Data)
	}
	layout.DirectoryOffset = body.Len()
	for i, f := range files {
		rec := make([]byte, recordSize)
		putName(rec[:nameSize], f.Name)
		record(rec, i, layout.Offsets[i], f)
		body.Write(rec)
	}
	out := body.Bytes()
	copy(out, magic)
	le32(out[4:], layout.DirectoryOffset)
	le32(out[8:], len(files)*recordSize)
	return out, layout
}

// Compress encodes data with the Daikatana scheme using runs of zeros,
// repeated bytes and literals. It never emits back references.
func Compress(data []byte) []byte {
	var out bytes.Buffer
	var lit []byte
	flush := func() {
		for len(lit) > 0 {
			n := min(len(lit), 64)
			out.WriteByte(byte(n - 1))
			out.Write(lit[:n])
			lit = lit[n:]
		}
	}
	for i := 0; i < len(data); {
		run := 1
		for i+run < len(data) && data[i+run] == data[i] && run < 65 {
			run++
		}
		switch {
		case data[i] == 0 && run >= 2:
			flush()
			out.WriteByte(byte(62 + run))
			i += run
		case run >= 3 && run <= 65:
			flush()
			out.WriteByte(byte(126 + run))
			out.WriteByte(data[i])
			i += run
		default:
			lit = append(lit, data[i])
			i++
		}
	}
	flush()
	out.WriteByte(255)
	return out.Bytes()
}

// Zip builds a zip package. Entries are deflated.
func Zip(files ...File) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.Create(f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(f.Data); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
