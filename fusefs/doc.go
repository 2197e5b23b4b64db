// Package fusefs exposes a vfs.VFS as a read-only FUSE file system.
//
// Every node is a view onto a virtual path; nothing is cached beyond the
// contents of an open file, so layers mounted or unmounted through Update
// become visible on the next lookup. Inode numbers are assigned per folded
// path and stay stable for the lifetime of the FS.
package fusefs
