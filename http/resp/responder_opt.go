package resp

import "github.com/xy-planning-network/responder/logger"

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithSerializer sets the Serializer Json encodes data with.
func WithSerializer(s Serializer) ResponderOptFn {
	return func(d *Responder) {
		d.serializer = s
	}
}

// WithTemplateEngine sets the TemplateEngine Render renders templates with.
func WithTemplateEngine(e TemplateEngine) ResponderOptFn {
	return func(d *Responder) {
		d.engine = e
	}
}

// WithUrlGenerator sets the UrlGenerator Route and Url generate URLs with.
func WithUrlGenerator(g UrlGenerator) ResponderOptFn {
	return func(d *Responder) {
		d.urls = g
	}
}
