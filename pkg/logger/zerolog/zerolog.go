package zerolog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Config controls how the console logger is built.
type Config struct {
	Level      string    // Level name understood by zerolog (debug, info, ...)
	TimeFormat string    // TimeFormat used for the timestamp column
	Colored    bool      // Colored enables ANSI colors in console mode
	JSON       bool      // JSON disables the console writer
	Out        io.Writer // Out defaults to os.Stderr
}

// New creates a zerolog logger. Console mode pads and colors the columns,
// JSON mode writes one object per line.
func New(cfg Config) (*zerolog.Logger, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	if cfg.JSON {
		l := zerolog.New(out).Level(level).With().Timestamp().Logger()
		return &l, nil
	}

	console := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !cfg.Colored,
		TimeFormat: cfg.TimeFormat,
	}
	if cfg.Colored {
		console.FormatLevel = formatLevel
		console.FormatMessage = formatMessage
		console.FormatCaller = formatCaller
		console.FormatTimestamp = func(i interface{}) string {
			return formatTimestamp(i, cfg.TimeFormat)
		}
	}

	l := zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return &l, nil
}

func formatLevel(i interface{}) string {
	level, ok := i.(string)
	if !ok {
		return "UNKNOWN"
	}

	switch level {
	case zerolog.LevelTraceValue:
		return term.Cyanf("[TRC]")
	case zerolog.LevelDebugValue:
		return term.Cyanf("[DBG]")
	case zerolog.LevelInfoValue:
		return term.Greenf("[INF]")
	case zerolog.LevelWarnValue:
		return term.Yellowf("[WAR]")
	case zerolog.LevelFatalValue:
		return term.Redf("[FTL]")
	case zerolog.LevelErrorValue:
		return term.Redf("[ERR]")
	default:
		return term.Whitef("[UNK]")
	}
}

func formatMessage(i interface{}) string {
	const width = 60

	msg, ok := i.(string)
	if !ok || len(msg) == 0 {
		return ">"
	}
	if len(msg) < width {
		msg += strings.Repeat(" ", width-len(msg))
	}

	return term.Whitef("> %s", msg)
}

func formatCaller(i interface{}) string {
	const fileWidth = 16

	fname, ok := i.(string)
	if !ok || len(fname) == 0 {
		return ""
	}

	file, line, found := strings.Cut(filepath.Base(fname), ":")
	if !found {
		return term.Yellowf("[%s]", file)
	}
	if len(file) > fileWidth {
		file = file[:fileWidth]
	}

	return term.Yellowf("[%-*s:%4s]", fileWidth, file, line)
}

func formatTimestamp(i interface{}, layout string) string {
	raw, ok := i.(string)
	if !ok {
		return term.Cyanf("[%v]", i)
	}

	if ts, err := time.ParseInLocation(time.RFC3339, raw, time.Local); err == nil {
		raw = ts.In(time.Local).Format(layout)
	}

	return term.Cyanf("[%s]", raw)
}
