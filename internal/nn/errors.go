package nn

import "errors"

var (
	// ErrNoLayers is returned when a network is constructed without layers.
	ErrNoLayers = errors.New("network needs at least one layer")

	// ErrNegativeRegularization is returned when a regularization rate
	// below zero is configured.
	ErrNegativeRegularization = errors.New("regularization rate must not be negative")

	// ErrEmptyBatch is returned when a loss is requested over zero samples.
	ErrEmptyBatch = errors.New("batch needs at least one sample")

	// ErrBundleMismatch is returned when a parameter bundle does not line
	// up with the network it is applied to.
	ErrBundleMismatch = errors.New("parameter bundle does not match network")
)
