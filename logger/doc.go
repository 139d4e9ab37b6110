/*
Package logger provides logging functionality by defining the required behavior in [Logger]
and providing an implementation of it with [StdLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
[StdLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*StdLogger.Warn], [*StdLogger.Error], and [*StdLogger.Fatal] produce messages.

Log messages emitted by [StdLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2026/04/28 15:55:21 [DEBUG] http/resp/responder.go:43 'template not found' log_context: {"error":"..."}

The log context is a JSON-encoded [LogContext].

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] sets the number of frames to skip back in order to reach the desired caller.

# Sentry

When SENTRY_DSN is set, [New] returns a [SentryLogger],
which additionally ships [LogContext.Error] to Sentry for WARN, ERROR and FATAL messages.
*/
package logger
