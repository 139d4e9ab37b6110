/*
Package ranger initializes and manages an app serving responses with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New].
A [Ranger] is both the [*resp.Responder] handlers build responses with
and the [*router.Router] routes are registered on.

[*Ranger.Guide] begins the app's web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000),
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the web server.

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown],
call the context.CancelFunc returned by [*Ranger.Cancel],
or send a signal [*Ranger.Guide] listens for.

Every request passes through these middlewares, in order:
  - [middleware.RequestID]
  - [middleware.InjectIPAddress]
  - [middleware.RecordMetrics], whose collectors are exposed at [MetricsPath]
  - [middleware.ForceHTTPS]
  - [middleware.RateLimit]
  - [middleware.InjectResponder]
  - [middleware.CORS], when CORS_ORIGINS is set

# Configuration

A developer configures an app through environment variables and [RangerOption].
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONTACT_US_EMAIL: the email address listed on the maintenance page; default: hello@example.com
  - CORS_ORIGINS: a comma-separated list of origins allowed to make cross-origin requests
  - ENVIRONMENT: the environment the application is running in; cf. [responder.Environment]
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAINTENANCE_MODE: whether to respond to every request with [MaintModeHandler]; default: false
  - METRICS_NAMESPACE: the namespace of the Prometheus metrics; default: responder
  - PORT: the port the application should listen on; default: :3000
  - SENTRY_DSN: the DSN errors are reported to outside of development and testing
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
*/
package ranger
