package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		path1    string
		path2    string
		expected bool
	}{
		{name: "identical paths", path1: "/games/quake", path2: "/games/quake", expected: true},
		{name: "mountpoint inside game", path1: "/games/quake", path2: "/games/quake/mnt", expected: true},
		{name: "game inside mountpoint", path1: "/games/quake", path2: "/games", expected: true},
		{name: "separate paths", path1: "/games/quake", path2: "/mnt/quake", expected: false},
		{name: "sibling with common prefix", path1: "/games/quake", path2: "/games/quake2", expected: false},
		{name: "relative overlapping", path1: "quake", path2: "quake/mnt", expected: true},
		{name: "relative separate", path1: "quake", path2: "mnt", expected: false},
		{name: "unclean path", path1: "/games/quake/../quake", path2: "/games/quake/", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pathsOverlap(tt.path1, tt.path2))
		})
	}
}
