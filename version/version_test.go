package version

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stub(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	old := buildInfo
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	buildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() {
		buildInfo = old
		Version, Commit, Date = oldVersion, oldCommit, oldDate
	})
}

func TestBuildInfoFallback(t *testing.T) {
	stub(t, &debug.BuildInfo{
		Main: debug.Module{Path: "example.com/fork", Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2024-05-01T10:00:00Z"},
		},
	})

	assert.Equal(t, "v0.3.1", GetVersion())
	assert.Equal(t, "v0.3.1 (0123456, built 2024-05-01T10:00:00Z)", GetFullVersion())
	assert.Equal(t, "example.com/fork", GetInfo().Module)
}

func TestLinkedValuesWin(t *testing.T) {
	stub(t, &debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}})
	Version, Commit = "v1.0.0", "fedcba9876543210"

	assert.Equal(t, "v1.0.0 (fedcba9)", GetFullVersion())
}

func TestDevelopmentBuild(t *testing.T) {
	stub(t, nil)

	assert.Equal(t, "dev", GetFullVersion())
	assert.Equal(t, "github.com/dendrascience/assetvfs", GetInfo().Module)

	var buf bytes.Buffer
	Fprint(&buf, "assetvfs")
	assert.Contains(t, buf.String(), "assetvfs version dev\n")
	assert.Contains(t, buf.String(), "Commit: unknown\n")
}
