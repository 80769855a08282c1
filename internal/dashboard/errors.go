package dashboard

import "errors"

// Sentinel errors for dataset operations.
var (
	ErrInvalidData        = errors.New("invalid dashboard data")
	ErrMissingData        = errors.New("required data file missing")
	ErrExplainerNotFound  = errors.New("explainer not found")
	ErrWatchUnavailable   = errors.New("watching requires a data directory")
	ErrInvalidExplainerID = errors.New("invalid explainer id")
)
