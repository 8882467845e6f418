package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// Format used for file sinks; color escapes are omitted.
var fileFormat = logging.MustStringFormatter(
	`[%{time:2006-01-02 15:04:05.000}] [%{module}] [%{level}] %{message}`,
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// The currently active level.
var curLevel = logging.NOTICE

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(curLevel, "")
	logging.SetBackend(leveledBackend)
}

// Tee log output to a size-rotated file in addition to the console sink.
func SetFileSink(console io.Writer, path string, maxSizeMB, maxBackups int) io.Closer {
	fileWriter := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		LocalTime:  true,
	}

	consoleBackend := logging.NewBackendFormatter(logging.NewLogBackend(console, "", 0), format)
	fileBackend := logging.NewBackendFormatter(logging.NewLogBackend(fileWriter, "", 0), fileFormat)
	leveledBackend = logging.MultiLogger(consoleBackend, fileBackend)
	leveledBackend.SetLevel(curLevel, "")
	logging.SetBackend(leveledBackend)

	return fileWriter
}

// Set logger verbosity.
func SetLevel(level Level) {
	switch level {
	case Debug:
		curLevel = logging.DEBUG
	case Info:
		curLevel = logging.INFO
	case Notice:
		curLevel = logging.NOTICE
	case Warning:
		curLevel = logging.WARNING
	case Error:
		curLevel = logging.ERROR
	}

	leveledBackend.SetLevel(curLevel, "")
}

// Parse a level name as it appears in configuration files. Unknown names
// map to Notice.
func ParseLevel(name string) Level {
	switch name {
	case "debug":
		return Debug
	case "info":
		return Info
	case "warning", "warn":
		return Warning
	case "error":
		return Error
	default:
		return Notice
	}
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
