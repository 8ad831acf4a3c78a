package Euler2D

import "errors"

// ErrOutsideDomain is returned when a point lies outside the mesh
var ErrOutsideDomain = errors.New("point outside domain")

// ErrNonSquareZones is returned by operations whose update assumes dx = dy
var ErrNonSquareZones = errors.New("zones must be square")

// ErrNoExactSolution is returned for setups without an analytic solution
var ErrNoExactSolution = errors.New("no exact solution for setup")
