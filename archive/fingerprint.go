package archive

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/taigrr/colorhash"

	"github.com/dendrascience/assetvfs/vpath"
)

// Fingerprint identifies the directory of an archive independently of entry
// order and name casing. The result has the form "<bucket>-<sha256>", where
// the bucket is a color hash of the digest mod 1000, so listings of many
// archives group visually.
func Fingerprint(a *Archive) string {
	entries := a.Entries()
	sort.Slice(entries, func(i, j int) bool { return vpath.Less(entries[i].Name, entries[j].Name) })

	h := sha256.New()
	var buf [8]byte
	for _, e := range entries {
		h.Write([]byte(e.Name.Key()))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], uint64(e.Size))
		h.Write(buf[:])
	}
	sum := hex.EncodeToString(h.Sum(nil))
	bucket := colorhash.HashString(sum) % 1000
	if bucket < 0 {
		bucket = -bucket
	}
	return fmt.Sprintf("%03d-%s", bucket, sum)
}
