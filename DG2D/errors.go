package DG2D

import "errors"

var (
	ErrInvalidOrder   = errors.New("polynomial order must be between 1 and 5")
	ErrInvalidMesh    = errors.New("invalid mesh")
	ErrPatchSize      = errors.New("buffer size does not match patch")
	ErrAliasedBuffers = errors.New("read and write buffers overlap")
)
