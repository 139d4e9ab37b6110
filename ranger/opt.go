package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/responder"
	"github.com/xy-planning-network/responder/http/router"
	"github.com/xy-planning-network/responder/http/template"
	"github.com/xy-planning-network/responder/logger"
	"github.com/xy-planning-network/responder/serializer"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithEnv is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRoutes is an example of the second.
// Routes can be registered only once the router and its middlewares are set up.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithBaseURL parses raw into the URL the app runs on,
// which absolute URLs are generated with.
func WithBaseURL(raw string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, err
		}

		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("%w: base URL %q needs a scheme and host", responder.ErrNotValid, raw)
		}

		rng.url = u
		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the app.
// Cancelling ctx stops [*Ranger.Guide].
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if ctx == nil {
			return nil, fmt.Errorf("%w: nil context", responder.ErrMissingData)
		}

		rng.ctx, rng.cancel = context.WithCancel(ctx)
		rng.l.Debug(fmt.Sprintf("using context %T", ctx), nil)

		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		e := responder.Environment(envVar)
		if err := e.Valid(); err != nil {
			e = responder.EnvVarOrEnv(environmentEnvVar, responder.Development)
		}

		rng.env = e
		rng.l.Debug(fmt.Sprintf("using env %s", e), nil)

		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if l == nil {
			return nil, fmt.Errorf("%w: nil logger", responder.ErrMissingData)
		}

		rng.l = l
		rng.l.Debug(fmt.Sprintf("using logger %T", l), nil)

		return nil, nil
	}
}

// WithRoutes constructs a followup option that, when called,
// registers the routes on the app's router.
func WithRoutes(routes ...router.Route) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.HandleRoutes(routes)
			return nil
		}, nil
	}
}

// WithSerializer exposes the provided *serializer.Serializer to the app.
func WithSerializer(s *serializer.Serializer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.serializer = s
		return nil, nil
	}
}

// WithServer exposes the *http.Server to the app.
// The handler of s is replaced by the app's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if s == nil {
			return nil, fmt.Errorf("%w: nil server", responder.ErrMissingData)
		}

		rng.srv = s
		return nil, nil
	}
}

// WithStaticFS serves the files in filesys under /static/.
func WithStaticFS(filesys fs.FS) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.static = filesys
		return nil, nil
	}
}

// WithTemplateOpts passes opts to the template engine the app renders HTML with,
// after the default functions.
func WithTemplateOpts(opts ...template.EngineOptFn) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.engineOpts = append(rng.engineOpts, opts...)
		return nil, nil
	}
}
