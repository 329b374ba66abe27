package app

import (
	"io"
	"log/slog"
)

// logLevels maps the level names NewConfig accepts onto slog levels. The
// map's zero value for an unknown name is slog.LevelInfo.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the App's private logger from already-validated config
// values. It never touches the process-wide slog default; each App owns its
// own output stream.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevels[levelStr]}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
