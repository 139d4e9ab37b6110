package ranger

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/responder"
	"github.com/xy-planning-network/responder/http/middleware"
	"github.com/xy-planning-network/responder/http/resp"
	"github.com/xy-planning-network/responder/http/router"
	"github.com/xy-planning-network/responder/http/template"
	"github.com/xy-planning-network/responder/logger"
	"github.com/xy-planning-network/responder/serializer"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// App metadata
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultContactUs = "hello@example.com"

	// CORS defaults
	corsOriginsEnvVar = "CORS_ORIGINS"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	sentryDsnEnvVar = "SENTRY_DSN"

	// Metrics defaults
	MetricsPath     = "/metrics"
	metricsNSEnvVar = "METRICS_NAMESPACE"
	defaultNS       = "responder"

	// Web server defaults
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	// Static asset defaults
	staticPrefix = "/" + template.AssetsBase + "/"
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// defaultOpts sets up every component of a *Ranger from the environment.
// Options passed to New run after these and replace what they set.
func defaultOpts() []RangerOption {
	return []RangerOption{
		func(r *Ranger) (OptFollowup, error) {
			r.ctx, r.cancel = context.WithCancel(context.Background())
			r.env = responder.EnvVarOrEnv(environmentEnvVar, responder.Development)
			r.url = responder.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL)
			r.l = defaultLogger(r.env)
			r.serializer = serializer.New()
			r.srv = defaultServer()
			r.static = os.DirFS(template.AssetsBase)

			return r.defaultFollowup, nil
		},
	}
}

// defaultFollowup builds the components depending on those options configured,
// unless options have set them already.
func (r *Ranger) defaultFollowup() error {
	if r.metrics == nil {
		m, err := newMetrics(responder.EnvVarOrString(metricsNSEnvVar, defaultNS))
		if err != nil {
			return err
		}

		r.metrics = m
	}

	if r.srv.BaseContext == nil {
		ctx := r.ctx
		r.srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	if r.Router == nil {
		r.Router = router.New(r.env, r.url, middleware.LogRequest(r.l))
	}

	if r.engine == nil {
		r.engine = defaultEngine(r.env, r.url, r.Router, r.engineOpts)
	}

	if r.Responder == nil {
		r.Responder = resp.NewResponder(
			resp.WithLogger(r.l),
			resp.WithSerializer(r.serializer),
			resp.WithTemplateEngine(r.engine),
			resp.WithUrlGenerator(r.Router),
		)
	}

	r.Router.OnEveryRequest(defaultMiddlewares(r)...)
	r.Router.Static(staticPrefix, r.static)
	r.Router.Handle(router.Route{
		Name:    "metrics",
		Path:    MetricsPath,
		Method:  http.MethodGet,
		Handler: r.metrics.handler().ServeHTTP,
	})
	r.Router.HandleNotFound(defaultNotFound(r.Responder))
	if responder.EnvVarOrBool(maintenanceEnvVar, false) {
		r.l.Warn("maintenance mode on", nil)
		r.Router.CatchAll(MaintModeHandler(r.Responder, responder.EnvVarOrString(ContactUsEnvVar, defaultContactUs)))
	}

	r.srv.Handler = r.Router

	return nil
}

// defaultLogger constructs a logger.Logger configured for use in the application.
//
// When SENTRY_DSN is set and env reports panics,
// errors and warnings are also shipped to Sentry.
func defaultLogger(env responder.Environment) logger.Logger {
	l := logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(responder.EnvVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo)),
	)
	l.Debug("setting up app logger", nil)

	dsn := responder.EnvVarOrString(sentryDsnEnvVar, "")
	sl, ok := l.(*logger.StdLogger)
	if dsn == "" || !ok || !env.ReportsPanics() {
		return l
	}

	return logger.NewSentryLogger(sl, dsn)
}

// defaultEngine constructs a *template.Engine to be used
// when responding to HTTP requests with [*resp.Responder.Render].
//
// defaultEngine makes available these functions in an HTML template:
//
//   - "asset"
//   - "env"
//   - "isDevelopment"
//   - "isProduction"
//   - "nonce"
//   - "path"
//   - "rootUrl"
//   - "url"
func defaultEngine(env responder.Environment, u *url.URL, urls resp.UrlGenerator, opts []template.EngineOptFn) *template.Engine {
	args := []template.EngineOptFn{
		template.WithFn(template.Env(env)),
		template.WithFn("isDevelopment", env.IsDevelopment),
		template.WithFn("isProduction", env.IsProduction),
		template.WithFn(template.Nonce()),
		template.WithFn(template.RootUrl(u)),
		template.WithFn("asset", template.AssetURI(env, nil)),
		template.WithFns(template.Urls(urls)),
	}

	return template.New(append(args, opts...)...)
}

// defaultMiddlewares lists the middlewares applied to every request.
func defaultMiddlewares(r *Ranger) []middleware.Adapter {
	mws := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.RecordMetrics(r.metrics.Metrics),
		middleware.ForceHTTPS(r.Responder, r.env),
		middleware.RateLimit(r.Responder, middleware.NewVisitors(0, 0)),
		middleware.InjectResponder(r.Responder),
	}

	if origins := responder.EnvVarOrString(corsOriginsEnvVar, ""); origins != "" {
		mws = append(mws, middleware.CORS(strings.Split(origins, ",")...))
	}

	return mws
}

// defaultNotFound redirects browsers to the root of the app
// and responds to everything else with 404.
func defaultNotFound(rp *resp.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := rp.Empty(resp.Code(http.StatusNotFound))
		if strings.Contains(r.Header.Get("Accept"), "text/html") && r.URL.Path != "/" {
			res, err = rp.Redirect("/")
		}

		if err != nil {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		res.ServeHTTP(w, r)
	}
}

// defaultServer constructs a default [*http.Server].
func defaultServer() *http.Server {
	port := responder.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	return &http.Server{
		Addr:         port,
		IdleTimeout:  responder.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  responder.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: responder.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}
