package archive

import (
	"errors"
	"fmt"

	perrors "github.com/jmgilman/go/errors"
)

// Sentinel errors for package archive.
var (
	ErrFormat        = errors.New("malformed archive")
	ErrUnknownFormat = errors.New("unknown archive format")

	errTruncated    = errors.New("compressed stream is truncated")
	errBadBackRef   = errors.New("back reference before start of output")
	errBadOpcode    = errors.New("invalid compression opcode")
	errSizeMismatch = errors.New("decompressed size does not match directory")
)

// formatError reports a structural problem in the archive at path.
func formatError(path string, ctx map[string]interface{}, format string, args ...interface{}) error {
	if ctx == nil {
		ctx = map[string]interface{}{}
	}
	ctx["archive"] = path
	return perrors.WrapWithContext(ErrFormat, perrors.CodeInvalidInput,
		fmt.Sprintf("%s: %s", path, fmt.Sprintf(format, args...)), ctx)
}
