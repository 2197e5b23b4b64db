// Package archive parses the directory tables of game archive containers and
// exposes each parsed archive as a read-only vfs.Backend.
//
// Supported formats:
//   - WAD2 and WAD3 texture wads
//   - id PAK (Quake, Quake II)
//   - Daikatana PAK, including its compressed entries
//   - SiN PAK
//   - zip family (pk3, pk4, zip)
//
// An archive is validated completely before anything is returned: bad magic,
// a directory outside the archive or an entry whose bytes lie outside the
// archive reject the whole file with an error wrapping ErrFormat.
package archive
