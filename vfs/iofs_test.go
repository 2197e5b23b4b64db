package vfs

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/assetvfs/vpath"
)

func TestTreeConflicts(t *testing.T) {
	tree := NewTree("t")
	require.NoError(t, tree.AddFile(vpath.Parse("maps/e1m1.bsp"), 3, Bytes([]byte("bsp"))))

	assert.ErrorIs(t, tree.AddFile(vpath.Root, 0, Bytes(nil)), ErrConflict)
	assert.ErrorIs(t, tree.AddFile(vpath.Parse("MAPS"), 0, Bytes(nil)), ErrConflict)
	assert.ErrorIs(t, tree.AddFile(vpath.Parse("maps/e1m1.bsp/x"), 0, Bytes(nil)), ErrConflict)

	// Re-adding a file replaces it.
	require.NoError(t, tree.AddFile(vpath.Parse("Maps/E1M1.BSP"), 4, Bytes([]byte("bsp2"))))
	size, ok := tree.Size(vpath.Parse("maps/e1m1.bsp"))
	require.True(t, ok)
	assert.Equal(t, int64(4), size)
}

func TestTreeDoesNotExpandSharpS(t *testing.T) {
	tree := NewTree("t")
	require.NoError(t, tree.AddFile(vpath.Parse("straße.txt"), 1, Bytes([]byte("1"))))
	require.NoError(t, tree.AddFile(vpath.Parse("strasse.txt"), 1, Bytes([]byte("2"))))

	found, err := tree.Find(vpath.Root, Flat, nil)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	f, err := tree.OpenFile(vpath.Parse("STRAẞE.TXT"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(f.Bytes()))
	f, err = tree.OpenFile(vpath.Parse("STRASSE.TXT"))
	require.NoError(t, err)
	assert.Equal(t, "2", string(f.Bytes()))
}

func TestIOFS(t *testing.T) {
	v := New()
	v.Mount(vpath.Root, buildTree(t, "base", map[string]string{
		"gfx/palette.lmp": "palette",
		"maps/e1m1.bsp":   "old",
	}))
	v.Mount(vpath.Parse("maps"), buildTree(t, "mod", map[string]string{
		"e1m1.bsp": "new",
		"e1m2.bsp": "second",
	}))

	fsys := FS(v)
	require.NoError(t, fstest.TestFS(fsys, "gfx/palette.lmp", "maps/e1m1.bsp", "maps/e1m2.bsp"))

	data, err := fs.ReadFile(fsys, "maps/e1m1.bsp")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	_, err = fs.ReadFile(fsys, "maps/e1m3.bsp")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = fsys.Open("../outside")
	assert.ErrorIs(t, err, fs.ErrInvalid)

	// Backslashes are not separators in io/fs names.
	_, err = fs.ReadFile(fsys, "maps\\e1m1.bsp")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = fs.Stat(fsys, "gfx\\palette.lmp")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	matches, err := fs.Glob(fsys, "maps/*.bsp")
	require.NoError(t, err)
	assert.Equal(t, []string{"maps/e1m1.bsp", "maps/e1m2.bsp"}, matches)
}
