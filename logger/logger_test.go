package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responder/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/logger_test\.go:\d+`)
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"INFO", logger.LogLevelInfo},
		{"WARN", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"debug", logger.LogLevelUnk},
		{"", logger.LogLevelUnk},
	} {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.input))
		})
	}

	require.Equal(t, "[UNK]", logger.LogLevelUnk.String())
	require.Equal(t, "[WARN]", logger.LogLevelWarn.String())
}

func TestStdLogger(t *testing.T) {
	for _, tc := range []struct {
		name  string
		level logger.LogLevel
		call  func(l logger.Logger, msg string)
	}{
		{"Debug", logger.LogLevelDebug, func(l logger.Logger, msg string) { l.Debug(msg, nil) }},
		{"Info", logger.LogLevelInfo, func(l logger.Logger, msg string) { l.Info(msg, nil) }},
		{"Warn", logger.LogLevelWarn, func(l logger.Logger, msg string) { l.Warn(msg, nil) }},
		{"Error", logger.LogLevelError, func(l logger.Logger, msg string) { l.Error(msg, nil) }},
		{"Fatal", logger.LogLevelFatal, func(l logger.Logger, msg string) { l.Fatal(msg, nil) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(logger.LogLevelDebug))
			msg := "responding is fun"

			// Act
			tc.call(l, msg)

			// Assert
			actual := b.String()
			require.Regexp(t, logLevelRegexp, actual)
			require.Contains(t, actual, tc.level.String())
			require.Regexp(t, fpRegexp, actual)
			require.Contains(t, actual, "'"+msg+"'")
			require.NotContains(t, actual, "log_context")
		})
	}
}

func TestStdLoggerLevelFilter(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(logger.LogLevelWarn))

	// Act
	l.Debug("quiet", nil)
	l.Info("quiet", nil)

	// Assert
	require.Empty(t, b.String())
	require.Equal(t, logger.LogLevelWarn, l.LogLevel())

	// Act
	l.Warn("loud", nil)

	// Assert
	require.Contains(t, b.String(), "[WARN]")
}

func TestStdLoggerLogContext(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b)))

	// Act
	l.Info("with context", &logger.LogContext{Caller: "somewhere/else.go:1", Error: errors.New("oops")})

	// Assert
	actual := b.String()
	require.Contains(t, actual, "somewhere/else.go:1")
	require.NotRegexp(t, fpRegexp, actual)
	require.Contains(t, actual, `log_context: {"error":"oops"}`)
}

func TestStdLoggerSkip(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l, ok := logger.New(logger.WithLogger(newTestLogger(b))).(logger.SkipLogger)
	require.True(t, ok)

	// Act
	skipped := l.AddSkip(1)

	// Assert
	require.Equal(t, 0, l.Skip())
	require.Equal(t, 1, skipped.Skip())

	// Act
	func() { skipped.Info("from the caller", nil) }()

	// Assert
	require.Regexp(t, fpRegexp, b.String())
}
