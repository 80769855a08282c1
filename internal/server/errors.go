package server

import "errors"

// Sentinel errors for server operations.
var (
	ErrTemplate   = errors.New("page template error")
	ErrListen     = errors.New("cannot listen")
	ErrNoData     = errors.New("no data source")
	ErrNoRenderer = errors.New("no markdown renderer")
)
