package ranger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/responder"
	"github.com/xy-planning-network/responder/http/resp"
	"github.com/xy-planning-network/responder/http/router"
	"github.com/xy-planning-network/responder/http/template"
	"github.com/xy-planning-network/responder/logger"
	"github.com/xy-planning-network/responder/serializer"
)

// shutdownTimeout bounds how long Shutdown waits on open connections.
const shutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of an app serving responses to one another.
//
// A *Ranger is a *resp.Responder and a *router.Router:
// handlers build responses with it and routes are registered on it.
type Ranger struct {
	*resp.Responder
	*router.Router

	ctx        context.Context
	cancel     context.CancelFunc
	env        responder.Environment
	engine     *template.Engine
	engineOpts []template.EngineOptFn
	l          logger.Logger
	metrics    *metrics
	serializer *serializer.Serializer
	srv        *http.Server
	static     fs.FS
	url        *url.URL
}

// New constructs a Ranger from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): calling an option configures the *Ranger under construction.
	// Some options require data from other options.
	// They return an OptFollowup to be called after the initial set of options are run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", responder.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %w", responder.ErrBadConfig, err)
		}
	}

	return r, nil
}

// Cancel returns the context.CancelFunc stopping [*Ranger.Guide].
func (r *Ranger) Cancel() context.CancelFunc { return r.cancel }

func (r *Ranger) EmitEnv() responder.Environment         { return r.env }
func (r *Ranger) EmitLogger() logger.Logger              { return r.l }
func (r *Ranger) EmitServer() *http.Server               { return r.srv }
func (r *Ranger) EmitSerializer() *serializer.Serializer { return r.serializer }
func (r *Ranger) EmitTemplateEngine() *template.Engine   { return r.engine }
func (r *Ranger) EmitURL() *url.URL                      { return r.url }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
// - cancelling the context.Context set by WithContext
func (r *Ranger) Guide() error {
	ctx, stop := signal.NotifyContext(
		r.ctx,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case err := <-errs:
		r.l.Error(err.Error(), nil)
		return err
	case <-ctx.Done():
		r.l.Info("received shutdown signal", nil)
	}

	return r.Shutdown()
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	if err := r.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	if r.cancel != nil {
		r.cancel()
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
