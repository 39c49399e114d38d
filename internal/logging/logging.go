// Package logging provides the default core.Logger implementation,
// backed by log/slog. Kept out of pkg/ since nothing in pkg/ imports it
// directly; every package depends only on the narrow core.Logger
// interface.
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/df07/spectral-tracer/pkg/core"
)

// Slog adapts a *slog.Logger to core.Logger.
type Slog struct {
	logger *slog.Logger
}

// New builds a Slog logger writing leveled, structured text to w at the
// given level (slog.LevelInfo, slog.LevelDebug, ...).
func New(w *os.File, level slog.Level) *Slog {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Slog{logger: slog.New(h)}
}

// Printf implements core.Logger by formatting args and emitting them as
// a single Info-level slog message.
func (s *Slog) Printf(format string, args ...interface{}) {
	s.logger.Info(fmt.Sprintf(format, args...))
}

var _ core.Logger = (*Slog)(nil)
