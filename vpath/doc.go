// Package vpath provides case-insensitive virtual paths.
//
// Game content is authored on case-insensitive platforms, so a texture referenced
// as "Textures/Wall" must resolve to a file stored as "textures/wall". Every
// comparison in this package folds both sides with golang.org/x/text/cases.Fold
// before comparing, but a Path always keeps the spelling it was built from so
// that listings show names the way the content author wrote them.
package vpath
