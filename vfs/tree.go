package vfs

import (
	"fmt"
	"sort"

	"github.com/dendrascience/assetvfs/vpath"
)

// Opener produces the bytes of a file stored in a Tree.
type Opener func() ([]byte, error)

// Bytes returns an Opener for a fixed buffer.
func Bytes(data []byte) Opener {
	return func() ([]byte, error) { return data, nil }
}

type treeNode struct {
	name     string
	dir      bool
	size     int64
	open     Opener
	children map[string]*treeNode
}

func newDirNode(name string) *treeNode {
	return &treeNode{name: name, dir: true, children: make(map[string]*treeNode)}
}

// Tree is an in-memory directory tree implementing Backend. Archive backends
// build one from their entry table; tests use it as a scripted layer.
type Tree struct {
	root *treeNode
	desc string
}

// NewTree returns an empty tree. desc is reported by String.
func NewTree(desc string) *Tree {
	return &Tree{root: newDirNode(""), desc: desc}
}

// String describes the tree.
func (t *Tree) String() string {
	return t.desc
}

// AddFile adds a file at p, creating parent directories as needed. Adding a
// file twice replaces the earlier entry.
func (t *Tree) AddFile(p vpath.Path, size int64, open Opener) error {
	if p.IsRoot() {
		return fmt.Errorf("cannot add file at root: %w", ErrConflict)
	}
	parent, err := t.mkdirAll(p.Parent())
	if err != nil {
		return err
	}
	key := vpath.Fold(p.Base())
	if existing, ok := parent.children[key]; ok && existing.dir {
		return fmt.Errorf("file %q shadows directory: %w", p, ErrConflict)
	}
	parent.children[key] = &treeNode{name: p.Base(), size: size, open: open}
	return nil
}

// AddDirectory adds an (empty) directory at p.
func (t *Tree) AddDirectory(p vpath.Path) error {
	_, err := t.mkdirAll(p)
	return err
}

func (t *Tree) mkdirAll(p vpath.Path) (*treeNode, error) {
	node := t.root
	for i := 0; i < p.Len(); i++ {
		name := p.Component(i)
		key := vpath.Fold(name)
		child, ok := node.children[key]
		if !ok {
			child = newDirNode(name)
			node.children[key] = child
		} else if !child.dir {
			return nil, fmt.Errorf("directory %q shadows file: %w", p.Prefix(i+1), ErrConflict)
		}
		node = child
	}
	return node, nil
}

func (t *Tree) lookup(p vpath.Path) *treeNode {
	node := t.root
	for i := 0; i < p.Len(); i++ {
		if !node.dir {
			return nil
		}
		child, ok := node.children[vpath.Fold(p.Component(i))]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// PathInfo implements Backend.
func (t *Tree) PathInfo(p vpath.Path) PathInfo {
	node := t.lookup(p)
	switch {
	case node == nil:
		return Unknown
	case node.dir:
		return Directory
	default:
		return File
	}
}

// Size returns the recorded size of the file at p.
func (t *Tree) Size(p vpath.Path) (int64, bool) {
	node := t.lookup(p)
	if node == nil || node.dir {
		return 0, false
	}
	return node.size, true
}

// OpenFile implements Backend.
func (t *Tree) OpenFile(p vpath.Path) (*FileData, error) {
	node := t.lookup(p)
	if node == nil || node.dir {
		return nil, NotFound(p)
	}
	data, err := node.open()
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", p, err)
	}
	return NewFileData(t.canonical(p), data), nil
}

// Find implements Backend.
func (t *Tree) Find(p vpath.Path, mode TraversalMode, match Matcher) ([]vpath.Path, error) {
	node := t.lookup(p)
	if node == nil || !node.dir {
		return nil, NotDirectory(p)
	}
	var out []vpath.Path
	t.walk(node, t.canonical(p), 1, mode, match, &out)
	return out, nil
}

func (t *Tree) walk(node *treeNode, at vpath.Path, level int, mode TraversalMode, match Matcher, out *[]vpath.Path) {
	if !mode.Allows(level) {
		return
	}
	for _, child := range sortedChildren(node) {
		p := at.Append(child.name)
		info := File
		if child.dir {
			info = Directory
		}
		if match == nil || match(p, info) {
			*out = append(*out, p)
		}
		if child.dir {
			t.walk(child, p, level+1, mode, match, out)
		}
	}
}

// canonical respells p with the stored casing.
func (t *Tree) canonical(p vpath.Path) vpath.Path {
	node := t.root
	out := vpath.Root
	for i := 0; i < p.Len(); i++ {
		child, ok := node.children[vpath.Fold(p.Component(i))]
		if !ok {
			return p
		}
		out = out.Append(child.name)
		node = child
	}
	return out
}

func sortedChildren(node *treeNode) []*treeNode {
	keys := make([]string, 0, len(node.children))
	for k := range node.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*treeNode, len(keys))
	for i, k := range keys {
		out[i] = node.children[k]
	}
	return out
}
