package utils

import "errors"

var (
	// ErrUnsupportedMode is returned when an execution mode cannot run in this build or configuration
	ErrUnsupportedMode = errors.New("unsupported execution mode")
	// ErrUnsupportedReduction is returned by reductions that have no implementation for a mode
	ErrUnsupportedReduction = errors.New("reduction not supported in this execution mode")
)
