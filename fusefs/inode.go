package fusefs

import (
	"sync"

	"github.com/dendrascience/assetvfs/vpath"
)

// inodeTable hands out one inode per folded path. The root is always 1.
type inodeTable struct {
	mu     sync.Mutex
	last   uint64
	byPath map[string]uint64
}

func newInodeTable() *inodeTable {
	return &inodeTable{
		last:   1,
		byPath: map[string]uint64{vpath.Root.Key(): 1},
	}
}

func (t *inodeTable) get(p vpath.Path) uint64 {
	key := p.Key()
	t.mu.Lock()
	defer t.mu.Unlock()
	if ino, ok := t.byPath[key]; ok {
		return ino
	}
	t.last++
	t.byPath[key] = t.last
	return t.last
}

func (t *inodeTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byPath)
}
