package archive

import (
	"github.com/dendrascience/assetvfs/vfs"
)

// Daikatana compression opcodes. Each block starts with one control byte x:
//
//	x < 64          copy the next x+1 bytes
//	64 <= x < 128   write x-62 zero bytes
//	128 <= x < 192  repeat the next byte x-126 times
//	192 <= x < 254  copy x-190 bytes from next byte + 2 bytes back
//	x == 255        end of stream
const (
	dkLiteral  = 64
	dkZeros    = 128
	dkRepeat   = 192
	dkBackRef  = 254
	dkTerminal = 255
)

func expandOpener(path, name string, src []byte, size int64) vfs.Opener {
	return func() ([]byte, error) {
		out, err := Expand(src, size)
		if err != nil {
			return nil, formatError(path, map[string]interface{}{"entry": name}, "entry %q: %v", name, err)
		}
		return out, nil
	}
}

// Expand decompresses a Daikatana compressed pak entry. size is the expected
// length of the output; the stream must produce exactly that many bytes.
func Expand(src []byte, size int64) ([]byte, error) {
	out := make([]byte, 0, size)
	i := 0
	next := func() (byte, error) {
		if i >= len(src) {
			return 0, errTruncated
		}
		b := src[i]
		i++
		return b, nil
	}

	for {
		x, err := next()
		if err != nil {
			return nil, err
		}
		switch {
		case x < dkLiteral:
			n := int(x) + 1
			if i+n > len(src) {
				return nil, errTruncated
			}
			out = append(out, src[i:i+n]...)
			i += n
		case x < dkZeros:
			for n := int(x) - 62; n > 0; n-- {
				out = append(out, 0)
			}
		case x < dkRepeat:
			b, err := next()
			if err != nil {
				return nil, err
			}
			for n := int(x) - 126; n > 0; n-- {
				out = append(out, b)
			}
		case x < dkBackRef:
			b, err := next()
			if err != nil {
				return nil, err
			}
			back := int(b) + 2
			if back > len(out) {
				return nil, errBadBackRef
			}
			// Byte by byte, the reference may overlap the output it produces.
			start := len(out) - back
			for n := 0; n < int(x)-190; n++ {
				out = append(out, out[start+n])
			}
		case x == dkTerminal:
			if int64(len(out)) != size {
				return nil, errSizeMismatch
			}
			return out, nil
		default:
			return nil, errBadOpcode
		}
		if int64(len(out)) > size {
			return nil, errSizeMismatch
		}
	}
}
