package utils

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/notargets/eulerdg/types"
)

// BlockSize is the edge length of an accelerator thread block
const BlockSize = 16

// ZoneRange is the half open index space [I0,I1) x [J0,J1)
type ZoneRange struct {
	I0, I1, J0, J1 int
}

func NewZoneRange(ni, nj int) ZoneRange {
	return ZoneRange{0, ni, 0, nj}
}

func (r ZoneRange) Count() (ni, nj int) {
	ni, nj = r.I1-r.I0, r.J1-r.J0
	if ni < 0 {
		ni = 0
	}
	if nj < 0 {
		nj = 0
	}
	return
}

// ZoneKernel does the work for one zone. Kernels are produced per worker by a
// factory so each worker owns its scratch space.
type ZoneKernel func(i, j int)

type Executor interface {
	Mode() types.ExecutionMode
	ForEachZone(r ZoneRange, newKernel func() ZoneKernel) error
}

type executorConfig struct {
	parallelDegree int
	device         Device
}

type ExecutorOption func(*executorConfig)

func WithParallelDegree(np int) ExecutorOption {
	return func(ec *executorConfig) {
		ec.parallelDegree = np
	}
}

func WithDevice(d Device) ExecutorOption {
	return func(ec *executorConfig) {
		ec.device = d
	}
}

// NewExecutor checks that the mode can run before returning, there are no
// failures part way through a traversal.
func NewExecutor(mode types.ExecutionMode, opts ...ExecutorOption) (ex Executor, err error) {
	ec := &executorConfig{}
	for _, opt := range opts {
		opt(ec)
	}
	switch mode {
	case types.Sequential:
		ex = SequentialExecutor{}
	case types.Parallel:
		np := ec.parallelDegree
		if np <= 0 {
			np = runtime.NumCPU()
		}
		ex = &ParallelExecutor{ParallelDegree: np}
	case types.Accelerator:
		if ec.device == nil || !ec.device.Available() {
			err = fmt.Errorf("%s: no accelerator device configured: %w", mode, ErrUnsupportedMode)
			return
		}
		ex = &AcceleratorExecutor{Device: ec.device}
	default:
		err = fmt.Errorf("%s: %w", mode, ErrUnsupportedMode)
	}
	return
}

type SequentialExecutor struct{}

func (SequentialExecutor) Mode() types.ExecutionMode { return types.Sequential }

func (SequentialExecutor) ForEachZone(r ZoneRange, newKernel func() ZoneKernel) error {
	kernel := newKernel()
	for i := r.I0; i < r.I1; i++ {
		for j := r.J0; j < r.J1; j++ {
			kernel(i, j)
		}
	}
	return nil
}

// ParallelExecutor splits the outer axis into ParallelDegree buckets, one goroutine each
type ParallelExecutor struct {
	ParallelDegree int
}

func (pe *ParallelExecutor) Mode() types.ExecutionMode { return types.Parallel }

func (pe *ParallelExecutor) ForEachZone(r ZoneRange, newKernel func() ZoneKernel) error {
	var (
		ni, _ = r.Count()
		np    = pe.ParallelDegree
		wg    = sync.WaitGroup{}
	)
	if ni == 0 {
		return nil
	}
	if np > ni {
		np = ni
	}
	pm := NewPartitionMap(np, ni)
	for n := 0; n < np; n++ {
		iMin, iMax := pm.GetBucketRange(n)
		wg.Add(1)
		go func(iMin, iMax int) {
			defer wg.Done()
			kernel := newKernel()
			for i := r.I0 + iMin; i < r.I0+iMax; i++ {
				for j := r.J0; j < r.J1; j++ {
					kernel(i, j)
				}
			}
		}(iMin, iMax)
	}
	wg.Wait()
	return nil
}

// AcceleratorExecutor maps zones onto a grid of BlockSize x BlockSize thread
// blocks, thread x running along j and thread y along i.
type AcceleratorExecutor struct {
	Device Device
}

func (ae *AcceleratorExecutor) Mode() types.ExecutionMode { return types.Accelerator }

func (ae *AcceleratorExecutor) ForEachZone(r ZoneRange, newKernel func() ZoneKernel) error {
	var (
		ni, nj = r.Count()
		block  = Dim3{X: BlockSize, Y: BlockSize, Z: 1}
		grid   = Dim3{X: (nj + BlockSize - 1) / BlockSize, Y: (ni + BlockSize - 1) / BlockSize, Z: 1}
	)
	if ni == 0 || nj == 0 {
		return nil
	}
	return ae.Device.Launch(grid, block, func() BlockKernel {
		kernel := newKernel()
		return func(blockIdx, blockDim Dim3) {
			for ty := 0; ty < blockDim.Y; ty++ {
				i := r.I0 + ty + blockIdx.Y*blockDim.Y
				if i >= r.I1 {
					break
				}
				for tx := 0; tx < blockDim.X; tx++ {
					j := r.J0 + tx + blockIdx.X*blockDim.X
					if j >= r.J1 {
						break
					}
					kernel(i, j)
				}
			}
		}
	})
}
