package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/responder"
)

// ReportPanic encloses the env and returns a function that when called,
// wraps the passed in http.Handler in sentryhttp.Handle
// in order to recover and report panics.
//
// Environments that do not report panics get the handler back as is.
func ReportPanic(env responder.Environment) Adapter {
	if !env.ReportsPanics() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(handler http.Handler) http.Handler {
		return sh.Handle(handler)
	}
}
