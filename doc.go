// Package main provides the assetvfs command-line interface.
//
// assetvfs merges the asset folders, packages and texture wads of a game into
// one case-insensitive virtual tree. Packages in the Quake, Daikatana and SiN
// pak formats, zip packages and WAD2/WAD3 texture wads are supported.
//
// The binary supports multiple subcommands:
//   - ls, cat, which, layers, count: inspect the merged tree
//   - mount: serve the merged tree read-only with FUSE
//   - validate: check package and wad archives
//   - seed: generate a sample game installation
package main
