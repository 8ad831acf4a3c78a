package utils

import (
	"runtime"

	"github.com/exascience/pargo/parallel"
)

type Dim3 struct {
	X, Y, Z int
}

func (d Dim3) Size() int {
	z := d.Z
	if z == 0 {
		z = 1
	}
	return d.X * d.Y * z
}

// BlockKernel runs every thread of one block
type BlockKernel func(blockIdx, blockDim Dim3)

// Device launches a grid of thread blocks. Launch must not return until every
// block has completed, so writes made during a launch are visible afterwards.
type Device interface {
	Name() string
	Available() bool
	Launch(grid, block Dim3, newKernel func() BlockKernel) error
}

// HostDevice schedules thread blocks onto the host cores
type HostDevice struct {
	Workers int
}

func NewHostDevice() *HostDevice {
	return &HostDevice{Workers: runtime.NumCPU()}
}

func (hd *HostDevice) Name() string { return "host" }

func (hd *HostDevice) Available() bool { return hd != nil && hd.Workers > 0 }

func (hd *HostDevice) Launch(grid, block Dim3, newKernel func() BlockKernel) (err error) {
	var (
		nBlocks = grid.X * grid.Y
	)
	if !hd.Available() {
		return ErrUnsupportedMode
	}
	if nBlocks == 0 {
		return
	}
	parallel.Range(0, nBlocks, hd.Workers, func(low, high int) {
		kernel := newKernel()
		for b := low; b < high; b++ {
			kernel(Dim3{X: b % grid.X, Y: b / grid.X}, block)
		}
	})
	return
}
