// Package version reports the version of the assetvfs binary.
//
// Values linked in at build time take precedence:
//
//	go build -ldflags "-X github.com/dendrascience/assetvfs/version.Version=v1.0.0 \
//	  -X github.com/dendrascience/assetvfs/version.Commit=$(git rev-parse HEAD)"
//
// Otherwise the module version and VCS stamps recorded by the Go toolchain
// are used, and development builds report "dev".
package version
