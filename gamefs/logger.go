package gamefs

import (
	"io"

	"github.com/charmbracelet/log"
)

// Logger receives diagnostics while layers are mounted. *log.Logger from
// github.com/charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

var _ Logger = (*log.Logger)(nil)

// NewLogger returns a logger writing to w with the "assetvfs" prefix.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{Prefix: "assetvfs"})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return log.New(io.Discard)
}
