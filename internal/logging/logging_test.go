package logging

import (
	"log/slog"
	"os"
	"testing"
)

func TestNew_ImplementsLoggerAndDoesNotPanic(t *testing.T) {
	l := New(os.Stderr, slog.LevelInfo)
	l.Printf("rendering block %d of %d (%.1f%%)", 3, 10, 30.0)
}
