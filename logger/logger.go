package logger

import (
	"fmt"
	"log"
	"os"
	"path"
	"regexp"
	"runtime"

	"github.com/fatih/color"
)

const (
	callerTmpl  = "%s:%d"
	knownFrames = 2
)

var modulePathRegex = regexp.MustCompile("responder/.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

func NewLogLevel(val string) LogLevel {
	switch val {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelDebug:
		return "[DEBUG]"
	case LogLevelInfo:
		return "[INFO]"
	case LogLevelWarn:
		return "[WARN]"
	case LogLevelError:
		return "[ERROR]"
	case LogLevelFatal:
		return "[FATAL]"
	default:
		return "[UNK]"
	}
}

// StdLogger implements Logger using log.
type StdLogger struct {
	skip int
	env  string
	l    *log.Logger
	ll   LogLevel
}

// New constructs a Logger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The default environment is DEVELOPMENT.
// The default log level is INFO.
//
// When the SENTRY_DSN environment variable is set,
// New returns a *SentryLogger wrapping the *StdLogger.
func New(opts ...LoggerOptFn) Logger {
	l := &StdLogger{
		env: getEnvOrString("ENVIRONMENT", "DEVELOPMENT"),
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		l.Info("SENTRY_DSN set, configuring SentryLogger", nil)
		return NewSentryLogger(l, dsn)
	}

	return l
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *StdLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *StdLogger) Debug(msg string, ctx *LogContext) {
	if l.ll > LogLevelDebug {
		return
	}

	l.log(color.WhiteString, LogLevelDebug, msg, ctx)
}

// Error writes an error log.
func (l *StdLogger) Error(msg string, ctx *LogContext) {
	if l.ll > LogLevelError {
		return
	}

	l.log(color.RedString, LogLevelError, msg, ctx)
}

// Fatal writes a fatal log.
func (l *StdLogger) Fatal(msg string, ctx *LogContext) {
	if l.ll > LogLevelFatal {
		return
	}

	l.log(color.MagentaString, LogLevelFatal, msg, ctx)
}

// Info writes an info log.
func (l *StdLogger) Info(msg string, ctx *LogContext) {
	if l.ll > LogLevelInfo {
		return
	}

	l.log(color.BlueString, LogLevelInfo, msg, ctx)
}

// Warn writes a warning log.
func (l *StdLogger) Warn(msg string, ctx *LogContext) {
	if l.ll > LogLevelWarn {
		return
	}

	l.log(color.YellowString, LogLevelWarn, msg, ctx)
}

// LogLevel returns the LogLevel set for the StdLogger.
func (l *StdLogger) LogLevel() LogLevel { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *StdLogger) Skip() int { return l.skip }

// log executes printing the log message,
// including any context if available.
func (l *StdLogger) log(colorizer func(string, ...any) string, level LogLevel, msg string, ctx *LogContext) {
	var caller string
	if ctx != nil && ctx.Caller != "" {
		caller = ctx.Caller
	} else {
		// NOTE: skip the frames the StdLogger itself adds
		// and however many the StdLogger is configured with
		_, file, line, _ := runtime.Caller(knownFrames + l.skip)
		caller = fmt.Sprintf(callerTmpl, immediateFilepath(file), line)
	}

	msg = colorizer("%s %s '%s'", level, caller, msg)
	if ctx == nil {
		l.l.Println(msg)
		return
	}

	l.l.Println(msg, "log_context:", ctx)
}

// immediateFilepath trims file down to the path within this module or,
// outside of it, to the file and the directory it is in.
//
// e.g.,:
// /home/dlk/my-project/main.go => my-project/main.go
// /home/dlk/my-project/internal/internal.go => internal/internal.go
func immediateFilepath(file string) string {
	if match := modulePathRegex.FindString(file); match != "" {
		return match
	}

	dir, name := path.Split(file)
	return path.Join(path.Base(dir), name)
}

func getEnvOrString(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}
