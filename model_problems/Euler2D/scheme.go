package Euler2D

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/notargets/eulerdg/DG2D"
	"github.com/notargets/eulerdg/types"
	"github.com/notargets/eulerdg/utils"
)

// NumGuard is the ghost zone margin read by the residual and limiter kernels
const NumGuard = 1

// Scheme binds a basis and a mesh to the kernels of the DG discretization.
// Every operation validates its buffers and execution mode before any zone is
// touched, then runs one kernel per zone under the requested mode.
type Scheme struct {
	Cell           *DG2D.Cell
	Mesh           DG2D.Mesh
	Riemann        RiemannSolver
	Device         utils.Device
	ParallelDegree int
	Log            logr.Logger
}

type SchemeOption func(*Scheme)

func WithRiemannSolver(rs RiemannSolver) SchemeOption {
	return func(s *Scheme) { s.Riemann = rs }
}

func WithDevice(d utils.Device) SchemeOption {
	return func(s *Scheme) { s.Device = d }
}

func WithParallelDegree(np int) SchemeOption {
	return func(s *Scheme) { s.ParallelDegree = np }
}

func WithLogger(log logr.Logger) SchemeOption {
	return func(s *Scheme) { s.Log = log }
}

func NewScheme(cell *DG2D.Cell, mesh DG2D.Mesh, opts ...SchemeOption) (s *Scheme, err error) {
	if cell == nil {
		err = fmt.Errorf("nil basis: %w", DG2D.ErrInvalidOrder)
		return
	}
	if mesh.NI < 1 || mesh.NJ < 1 {
		err = fmt.Errorf("%w: %d x %d zones", DG2D.ErrInvalidMesh, mesh.NI, mesh.NJ)
		return
	}
	s = &Scheme{
		Cell:    cell,
		Mesh:    mesh,
		Riemann: RiemannHLLE,
		Log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Log.V(utils.DEBUG).Info("scheme initialized", "order", cell.Order, "nPoly", cell.NPoly,
		"mesh", mesh.Print())
	return
}

// NumFields is the number of values per zone in a weights buffer
func (s *Scheme) NumFields() int { return NCONS * s.Cell.NPoly }

// WeightsSize is the length of a weights buffer including ghost zones
func (s *Scheme) WeightsSize() int { return DG2D.PatchSize(s.Mesh, s.NumFields(), NumGuard) }

// PrimitiveSize is the length of a buffer of primitive quadrature samples
func (s *Scheme) PrimitiveSize() int { return DG2D.PatchSize(s.Mesh, NCONS*s.Cell.NQuad, 0) }

func (s *Scheme) executor(mode types.ExecutionMode) (utils.Executor, error) {
	var opts []utils.ExecutorOption
	if s.ParallelDegree > 0 {
		opts = append(opts, utils.WithParallelDegree(s.ParallelDegree))
	}
	if s.Device != nil {
		opts = append(opts, utils.WithDevice(s.Device))
	}
	return utils.NewExecutor(mode, opts...)
}

func (s *Scheme) weightsPair(rd, wr []float64) (wp DG2D.WeightsPair, err error) {
	var (
		read, write DG2D.Patch
		nf          = s.NumFields()
	)
	if read, err = DG2D.NewPatch(s.Mesh, nf, NumGuard, rd); err != nil {
		return
	}
	if write, err = DG2D.NewPatch(s.Mesh, nf, NumGuard, wr); err != nil {
		return
	}
	return DG2D.NewWeightsPair(read, write)
}

// AdvanceRungeKuttaStage writes w + 0.5*dt/dx*L(w) into the interior zones of
// wr. Ghost zones of rd must be filled, ghost zones of wr are not written.
func (s *Scheme) AdvanceRungeKuttaStage(rd, wr []float64, dt float64, mode types.ExecutionMode) (err error) {
	var (
		wp DG2D.WeightsPair
		ex utils.Executor
	)
	if !s.Mesh.IsSquare() {
		return fmt.Errorf("dx = %g, dy = %g: %w", s.Mesh.DX, s.Mesh.DY, ErrNonSquareZones)
	}
	if wp, err = s.weightsPair(rd, wr); err != nil {
		return
	}
	if ex, err = s.executor(mode); err != nil {
		return
	}
	dtOverDx := dt / s.Mesh.DX
	return ex.ForEachZone(wp.Read.InteriorRange(NumGuard), func() utils.ZoneKernel {
		ws := newResidualWorkspace(s.Cell, s.Riemann)
		return func(i, j int) {
			ws.advanceZone(wp, dtOverDx, i, j)
		}
	})
}

// LimitSlopes applies a slope limiter to the interior zones, reading rd and
// writing wr. LimiterNone copies rd into wr.
func (s *Scheme) LimitSlopes(kind LimiterType, rd, wr []float64, mode types.ExecutionMode) (err error) {
	var (
		wp     DG2D.WeightsPair
		ex     utils.Executor
		nPoly  = s.Cell.NPoly
		mesh   = s.Mesh
		kernel func(nPoly int, mesh DG2D.Mesh, wp DG2D.WeightsPair, i, j int)
	)
	switch kind {
	case LimiterNone:
	case LimiterConservedTVB:
		kernel = limitConservedZone
	case LimiterCharacteristic:
		kernel = limitCharacteristicZone
	default:
		return fmt.Errorf("limiter %d is not defined", kind)
	}
	if wp, err = s.weightsPair(rd, wr); err != nil {
		return
	}
	if ex, err = s.executor(mode); err != nil {
		return
	}
	if kernel == nil {
		copy(wr, rd)
		return
	}
	return ex.ForEachZone(wp.Read.InteriorRange(NumGuard), func() utils.ZoneKernel {
		return func(i, j int) {
			kernel(nPoly, mesh, wp, i, j)
		}
	})
}

func (s *Scheme) LimitConservedSlopes(rd, wr []float64, mode types.ExecutionMode) error {
	return s.LimitSlopes(LimiterConservedTVB, rd, wr, mode)
}

func (s *Scheme) LimitCharacteristicSlopes(rd, wr []float64, mode types.ExecutionMode) error {
	return s.LimitSlopes(LimiterCharacteristic, rd, wr, mode)
}

// ComputeWavespeed writes the maximum signal speed of each interior zone.
// weights carries the ghost margin, wavespeed holds one value per interior zone.
func (s *Scheme) ComputeWavespeed(weights, wavespeed []float64, mode types.ExecutionMode) (err error) {
	var (
		wp, ap DG2D.Patch
		ex     utils.Executor
		nPoly  = s.Cell.NPoly
	)
	if wp, err = DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, weights); err != nil {
		return
	}
	if ap, err = DG2D.NewPatch(s.Mesh, 1, 0, wavespeed); err != nil {
		return
	}
	if wp.Overlaps(ap) {
		return fmt.Errorf("wavespeed: %w", DG2D.ErrAliasedBuffers)
	}
	if ex, err = s.executor(mode); err != nil {
		return
	}
	return ex.ForEachZone(ap.InteriorRange(0), func() utils.ZoneKernel {
		return func(i, j int) {
			wavespeedZone(nPoly, wp, ap, i, j)
		}
	})
}

// ReduceMaximum is not available in accelerator mode, an accelerator caller
// must reduce on the device.
func (s *Scheme) ReduceMaximum(data []float64, mode types.ExecutionMode) (float64, error) {
	return utils.ReduceMax(data, mode)
}

// ProjectPrimitiveToWeights projects primitive samples at the interior
// quadrature points into weights. Neither buffer has a ghost margin.
func (s *Scheme) ProjectPrimitiveToWeights(primitive, weights []float64, mode types.ExecutionMode) (err error) {
	var (
		pp, wp DG2D.Patch
		ex     utils.Executor
		cell   = s.Cell
	)
	if pp, err = DG2D.NewPatch(s.Mesh, NCONS*cell.NQuad, 0, primitive); err != nil {
		return
	}
	if wp, err = DG2D.NewPatch(s.Mesh, s.NumFields(), 0, weights); err != nil {
		return
	}
	if pp.Overlaps(wp) {
		return fmt.Errorf("projection: %w", DG2D.ErrAliasedBuffers)
	}
	if ex, err = s.executor(mode); err != nil {
		return
	}
	return ex.ForEachZone(wp.InteriorRange(0), func() utils.ZoneKernel {
		return func(i, j int) {
			projectZone(cell, pp, wp, i, j)
		}
	})
}
