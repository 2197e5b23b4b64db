package version

import (
	"fmt"
	"io"
	"runtime/debug"
)

var (
	// Set with -ldflags "-X"; empty or default values fall back to build info.
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info contains version information.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Module  string `json:"module"`
}

// buildInfo is swapped out in tests.
var buildInfo = debug.ReadBuildInfo

// GetVersion returns the release version, preferring the linked-in value over
// the main module version recorded by the Go toolchain.
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if info, ok := buildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// GetCommit returns the VCS revision the binary was built from.
func GetCommit() string {
	return linkedOrSetting(Commit, "vcs.revision")
}

// GetBuildDate returns the commit time of the revision.
func GetBuildDate() string {
	return linkedOrSetting(Date, "vcs.time")
}

func linkedOrSetting(linked, key string) string {
	if linked != "unknown" && linked != "" {
		return linked
	}
	if info, ok := buildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == key {
				return s.Value
			}
		}
	}
	return "unknown"
}

// GetInfo returns complete version information.
func GetInfo() Info {
	module := "github.com/dendrascience/assetvfs"
	if info, ok := buildInfo(); ok && info.Main.Path != "" {
		module = info.Main.Path
	}
	return Info{
		Version: GetVersion(),
		Commit:  GetCommit(),
		Date:    GetBuildDate(),
		Module:  module,
	}
}

// GetFullVersion returns the version with the short commit and build date
// when they are known, e.g. "v1.2.0 (3f2a9c1, built 2024-05-01T10:00:00Z)".
func GetFullVersion() string {
	info := GetInfo()
	if info.Commit == "unknown" || len(info.Commit) <= 7 {
		return info.Version
	}
	short := info.Commit[:7]
	if info.Date == "unknown" {
		return fmt.Sprintf("%s (%s)", info.Version, short)
	}
	return fmt.Sprintf("%s (%s, built %s)", info.Version, short, info.Date)
}

// Fprint writes human-readable version information to w.
func Fprint(w io.Writer, appName string) {
	info := GetInfo()
	fmt.Fprintf(w, "%s version %s\n", appName, GetFullVersion())
	fmt.Fprintf(w, "Module: %s\n", info.Module)
	fmt.Fprintf(w, "Commit: %s\n", info.Commit)
	fmt.Fprintf(w, "Build Date: %s\n", info.Date)
}
