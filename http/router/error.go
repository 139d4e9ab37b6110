package router

import "errors"

var (
	ErrMissingParams = errors.New("missing route parameters")
	ErrRouteNotFound = errors.New("route not found")
)
