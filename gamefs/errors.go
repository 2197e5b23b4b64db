package gamefs

import (
	"errors"
	"fmt"

	perrors "github.com/jmgilman/go/errors"
)

// Sentinel errors for package gamefs.
var (
	ErrConfiguration  = errors.New("invalid game configuration")
	ErrIO             = errors.New("i/o failure")
	ErrUninitialized  = errors.New("game file system is not initialized")
	ErrWadNotFound    = errors.New("wad not found in any search path")
	ErrMissingSetting = errors.New("required setting is missing")
)

func configError(err error, msg string, ctx map[string]interface{}) error {
	if !errors.Is(err, ErrConfiguration) {
		err = fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return perrors.WrapWithContext(err, perrors.CodeInvalidConfig, msg, ctx)
}

func ioError(err error, path string) error {
	return perrors.WrapWithContext(fmt.Errorf("%w: %w", ErrIO, err), perrors.CodeInternal,
		"cannot read "+path, map[string]interface{}{"path": path})
}
