package resp

import "github.com/xy-planning-network/responder"

var (
	ErrBadConfig   = responder.ErrBadConfig
	ErrMissingData = responder.ErrMissingData
	ErrNotExist    = responder.ErrNotExist
	ErrNotValid    = responder.ErrNotValid
)
