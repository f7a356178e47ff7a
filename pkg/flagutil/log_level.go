package flagutil

import (
	"io"
	"log/slog"
	"strings"

	"github.com/jessevdk/go-flags"
)

// LogLevel is a slog.Level named the way slog prints it ("debug", "warn+2").
// "trace" and "warning" are accepted too.
type LogLevel struct {
	slog.Level
}

var _ flags.Unmarshaler = (*LogLevel)(nil)

var levelAliases = map[string]slog.Level{
	"trace":   slog.LevelDebug - 4,
	"warning": slog.LevelWarn,
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	if lvl, ok := levelAliases[strings.ToLower(string(text))]; ok {
		l.Level = lvl
		return nil
	}
	return l.Level.UnmarshalText(text)
}

func (l *LogLevel) UnmarshalFlag(value string) error {
	return l.UnmarshalText([]byte(value))
}

// Logger returns a JSON logger writing records at or above l to w.
func (l LogLevel) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: l.Level,
	}))
}
