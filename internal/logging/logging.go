package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelNone
)

var levelNames = []string{"debug", "info", "warning", "error", "none"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelNone {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel maps a level name (case insensitive) to a Level.
// Unknown names are reported as an error.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warn" {
		return LevelWarning, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelNone, fmt.Errorf("unknown log level %q", s)
}

var (
	debug   *log.Logger
	info    *log.Logger
	warning *log.Logger
	errlog  *log.Logger

	output io.Writer = os.Stderr
	level  Level
)

func init() {
	flags := log.Ldate | log.Ltime | log.LUTC
	debug = log.New(io.Discard, "D ", flags)
	info = log.New(io.Discard, "I ", flags)
	warning = log.New(io.Discard, "W ", flags)
	errlog = log.New(io.Discard, "E ", flags)

	SetLevel(LevelWarning)
}

// SetLevel enables all loggers at or above the given level.
func SetLevel(l Level) {
	level = l
	for i, logger := range []*log.Logger{debug, info, warning, errlog} {
		if Level(i) >= l {
			logger.SetOutput(output)
		} else {
			logger.SetOutput(io.Discard)
		}
	}
}

// SetOutput redirects all enabled loggers to w.
func SetOutput(w io.Writer) {
	output = w
	SetLevel(level)
}

// CurrentLevel returns the active level.
func CurrentLevel() Level {
	return level
}

func Debug(msg string, v ...interface{}) {
	debug.Printf(msg, v...)
}

func Info(msg string, v ...interface{}) {
	info.Printf(msg, v...)
}

func Warning(msg string, v ...interface{}) {
	warning.Printf(msg, v...)
}

func Error(msg string, v ...interface{}) {
	errlog.Printf(msg, v...)
}
