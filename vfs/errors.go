package vfs

import (
	"errors"
	"fmt"

	perrors "github.com/jmgilman/go/errors"

	"github.com/dendrascience/assetvfs/vpath"
)

// Sentinel errors for package vfs.
// These errors can be checked with errors.Is() for specific error handling.
var (
	ErrNotFound     = errors.New("path not found")
	ErrNotDirectory = errors.New("path does not denote a directory")
	ErrNotMounted   = errors.New("no layer with this mount id")
	ErrConflict     = errors.New("path conflicts with an existing entry")
)

// NotFound returns the error reported when p is absent from every layer.
func NotFound(p vpath.Path) error {
	return perrors.WrapWithContext(ErrNotFound, perrors.CodeNotFound,
		fmt.Sprintf("%q not found", p.String()),
		map[string]interface{}{"path": p.String()})
}

// NotDirectory returns the error reported when a directory operation is
// applied to a path that is not a directory.
func NotDirectory(p vpath.Path) error {
	return perrors.WrapWithContext(ErrNotDirectory, perrors.CodeInvalidInput,
		fmt.Sprintf("%q does not denote a directory", p.String()),
		map[string]interface{}{"path": p.String()})
}

func notMounted(id MountID) error {
	return perrors.WrapWithContext(ErrNotMounted, perrors.CodeNotFound,
		fmt.Sprintf("mount id %d is not mounted", id),
		map[string]interface{}{"id": uint64(id)})
}
