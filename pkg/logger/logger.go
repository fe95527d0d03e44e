package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	log     zerolog.Logger
	ready   bool
	logFile *os.File
)

// InitLogger sends output to the console and appends it to filename.
// An empty filename logs to the console only.
func InitLogger(filename string, level string) error {
	mu.Lock()
	defer mu.Unlock()

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = consoleWriter(os.Stdout)
	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		logFile = f
		out = zerolog.MultiLevelWriter(out, f)
	}

	log = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	ready = true
	return nil
}

// SetOutput replaces the destination with a plain JSON writer. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).With().Timestamp().Logger()
	ready = true
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: "2006/01/02 15:04:05"}
}

func get() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		log = zerolog.New(consoleWriter(os.Stdout)).With().Timestamp().Logger()
		ready = true
	}
	return &log
}

// With returns a child logger carrying the given field, for per-run context.
func With(key string, val interface{}) zerolog.Logger {
	return get().With().Interface(key, val).Logger()
}

func Info(format string, v ...interface{}) {
	get().Info().Msg(fmt.Sprintf(format, v...))
}

func Infof(format string, v ...interface{}) {
	Info(format, v...)
}

func Error(format string, v ...interface{}) {
	get().Error().Msg(fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...interface{}) {
	Error(format, v...)
}

func Warn(format string, v ...interface{}) {
	get().Warn().Msg(fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...interface{}) {
	Warn(format, v...)
}
