package interchange

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/xy-planning-network/responder"
	"github.com/xy-planning-network/responder/http/resp"
)

// HTTPFactory converts a *resp.Response into a *http.Response,
// as a client of an http.RoundTripper would receive it.
//
// The body of a file response is opened when converting.
type HTTPFactory struct{}

// CreateResponse converts r into a *http.Response.
// The calling code must close the Body.
func (HTTPFactory) CreateResponse(r *resp.Response) (*http.Response, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil *resp.Response", responder.ErrMissingData)
	}

	body, err := r.Body()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", responder.ErrNotExist, err)
	}

	return &http.Response{
		Status:        strconv.Itoa(r.Code()) + " " + http.StatusText(r.Code()),
		StatusCode:    r.Code(),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        r.Header(),
		Body:          body,
		ContentLength: r.ContentLength(),
	}, nil
}

// NewHTTPResponder constructs a *Responder producing *http.Response values.
func NewHTTPResponder(r *resp.Responder) *Responder[*http.Response] {
	return New[*http.Response](r, HTTPFactory{})
}
