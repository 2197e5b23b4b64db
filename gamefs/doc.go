// Package gamefs composes the layers of a game's asset file system.
//
// A GameFileSystem owns one vfs.VFS and fills it in a fixed order, lowest
// precedence first:
//
//  1. the configured default asset directories, then the game's own assets
//     folder next to its configuration file
//  2. the game search path inside the game directory, then every additional
//     search path (mods), each followed by the packages found directly inside
//     it, in case-insensitive name order
//
// Texture wads are mounted on top by ReloadWads and can be swapped at any time
// without touching the layers below them.
package gamefs
