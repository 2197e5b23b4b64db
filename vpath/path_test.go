package vpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty is root", input: "", expected: ""},
		{name: "slash is root", input: "/", expected: ""},
		{name: "simple", input: "textures/x.png", expected: "textures/x.png"},
		{name: "leading slash dropped", input: "/maps/e1m1.bsp", expected: "maps/e1m1.bsp"},
		{name: "backslashes", input: "gfx\\env\\sky.tga", expected: "gfx/env/sky.tga"},
		{name: "dot components", input: "./a/./b", expected: "a/b"},
		{name: "dotdot", input: "a/b/../c", expected: "a/c"},
		{name: "dotdot above root", input: "../../a", expected: "a"},
		{name: "double slashes", input: "a//b///c", expected: "a/b/c"},
		{name: "case preserved", input: "Textures/Base/WALL.wal", expected: "Textures/Base/WALL.wal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input).String())
		})
	}
}

func TestEqualIgnoresCase(t *testing.T) {
	assert.True(t, Parse("Bar").Equal(Parse("bar")))
	assert.True(t, Parse("BAR/baz").Equal(Parse("bar/BAZ")))
	assert.False(t, Parse("bar").Equal(Parse("bar/baz")))
	assert.False(t, Parse("bar").Equal(Parse("baz")))
	assert.Equal(t, Parse("Textures/X").Key(), Parse("textures/x").Key())
}

func TestHasPrefixAndTrim(t *testing.T) {
	p := Parse("Textures/Base/wall.wal")

	assert.True(t, p.HasPrefix(Root))
	assert.True(t, p.HasPrefix(Parse("textures")))
	assert.True(t, p.HasPrefix(Parse("TEXTURES/base")))
	assert.True(t, p.HasPrefix(p))
	assert.False(t, p.HasPrefix(Parse("tex")))
	assert.False(t, Parse("textures").HasPrefix(p))

	rest, ok := p.TrimPrefix(Parse("textures"))
	require.True(t, ok)
	assert.Equal(t, "Base/wall.wal", rest.String())

	rest, ok = p.TrimPrefix(Parse("textures/base/WALL.WAL"))
	require.True(t, ok)
	assert.True(t, rest.IsRoot())

	_, ok = p.TrimPrefix(Parse("maps"))
	assert.False(t, ok)
}

func TestComponentsHelpers(t *testing.T) {
	p := Parse("a/b/c.D")

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "c.D", p.Base())
	assert.Equal(t, ".D", p.Ext())
	assert.Equal(t, "a/b", p.Parent().String())
	assert.Equal(t, "a", p.Prefix(1).String())
	assert.True(t, Root.Parent().IsRoot())
	assert.Equal(t, "", Parse(".hidden").Ext())
	assert.Equal(t, "a/b/c.D/e", p.Append("e").String())
	assert.Equal(t, "x/a/b/c.D", Parse("x").Join(p).String())
	assert.Equal(t, p.String(), Root.Join(p).String())

	comps := p.Components()
	comps[0] = "mutated"
	assert.Equal(t, "a", p.Component(0))
}

func TestLessIsTotal(t *testing.T) {
	assert.True(t, Less(Parse("a.pak"), Parse("B.pak")))
	assert.True(t, Less(Parse("B.pak"), Parse("c.pak")))
	assert.True(t, Less(Parse("A.pak"), Parse("a.pak")))
	assert.False(t, Less(Parse("a.pak"), Parse("A.pak")))
}

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		equal bool
	}{
		{name: "ascii", a: "Textures/WALL.tga", b: "textures/wall.TGA", equal: true},
		{name: "latin", a: "ÉCLAIR.wav", b: "éclair.WAV", equal: true},
		{name: "greek final sigma", a: "ΟΔΟΣ", b: "οδοσ", equal: true},
		{name: "sharp s does not expand", a: "straße", b: "strasse", equal: false},
		{name: "capital sharp s", a: "STRAẞE", b: "straße", equal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, Fold(tt.a) == Fold(tt.b))
			assert.Equal(t, tt.equal, EqualFold(tt.a, tt.b))
		})
	}
}

func TestFoldIsSafeForConcurrentUse(t *testing.T) {
	done := make(chan string, 8)
	for range 8 {
		go func() { done <- Fold("Straße/ÉCLAIR") }()
	}
	for range 8 {
		assert.Equal(t, "straße/éclair", <-done)
	}
}
