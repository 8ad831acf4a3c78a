package Euler2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/eulerdg/DG2D"
	"github.com/notargets/eulerdg/types"
	"github.com/notargets/eulerdg/utils"
)

var allModes = []types.ExecutionMode{types.Sequential, types.Parallel, types.Accelerator}

// projectWithGhosts projects ic onto mesh including one ghost zone on every
// side. A mesh grown by one zone per side and shifted by one zone has a
// margin free layout identical to the guarded layout of mesh.
func projectWithGhosts(t *testing.T, cell *DG2D.Cell, mesh DG2D.Mesh, ic InitialCondition) (w []float64) {
	ext := DG2D.Mesh{
		NI: mesh.NI + 2, NJ: mesh.NJ + 2,
		X0: mesh.X0 - mesh.DX, Y0: mesh.Y0 - mesh.DY,
		DX: mesh.DX, DY: mesh.DY,
	}
	s, err := NewScheme(cell, ext)
	require.NoError(t, err)
	w = make([]float64, DG2D.PatchSize(ext, s.NumFields(), 0))
	require.NoError(t, s.ProjectPrimitiveToWeights(SamplePrimitive(cell, ext, ic), w, types.Sequential))
	require.Equal(t, DG2D.PatchSize(mesh, s.NumFields(), NumGuard), len(w))
	return
}

func newTestScheme(t *testing.T, order, ni, nj int, opts ...SchemeOption) *Scheme {
	cell, err := DG2D.NewCell(order)
	require.NoError(t, err)
	mesh, err := DG2D.NewMesh(ni, nj, 0, 1, 0, float64(nj)/float64(ni))
	require.NoError(t, err)
	s, err := NewScheme(cell, mesh, append([]SchemeOption{WithDevice(utils.NewHostDevice())}, opts...)...)
	require.NoError(t, err)
	return s
}

func uniformIC(p Primitive) InitialCondition {
	return func(x, y float64) Primitive { return p }
}

func blastIC(x, y float64) Primitive {
	r := math.Hypot(x-0.45, y-0.55)
	if r < 0.2 {
		return Primitive{1, 0.1, -0.3, 1}
	}
	return Primitive{0.125 + 0.1*x*y, 0.2, 0.1, 0.1 + 0.05*y}
}

func TestAdvanceUniform(t *testing.T) {
	{ // Test a first order uniform state is exactly stationary
		s := newTestScheme(t, 1, 8, 8)
		rd := projectWithGhosts(t, s.Cell, s.Mesh, uniformIC(Primitive{1, 0, 0, 1}))
		wr := make([]float64, len(rd))
		require.NoError(t, s.AdvanceRungeKuttaStage(rd, wr, 0.01, types.Sequential))
		wp, _ := DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, wr)
		rp, _ := DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, rd)
		for i := 0; i < s.Mesh.NI; i++ {
			for j := 0; j < s.Mesh.NJ; j++ {
				assert.Equal(t, rp.Get(i, j), wp.Get(i, j))
			}
		}
		ws := make([]float64, s.Mesh.NumTotalZones())
		require.NoError(t, s.ComputeWavespeed(rd, ws, types.Sequential))
		for _, v := range ws {
			assert.True(t, near(v, math.Sqrt(5./3.), 1.e-14))
		}
		vmax, err := s.ReduceMaximum(ws, types.Sequential)
		assert.NoError(t, err)
		assert.True(t, near(vmax, math.Sqrt(5./3.), 1.e-14))
	}
	{ // Test a moving uniform state is preserved at every order and by both solvers
		for order := 1; order <= DG2D.MaxOrder; order++ {
			for _, rs := range []RiemannSolver{RiemannHLLE, RiemannHLLC} {
				s := newTestScheme(t, order, 6, 6, WithRiemannSolver(rs))
				rd := projectWithGhosts(t, s.Cell, s.Mesh, uniformIC(Primitive{1.2, 0.3, -0.2, 0.8}))
				wr := make([]float64, len(rd))
				require.NoError(t, s.AdvanceRungeKuttaStage(rd, wr, 0.02, types.Parallel))
				wp, _ := DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, wr)
				rp, _ := DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, rd)
				for i := 0; i < s.Mesh.NI; i++ {
					for j := 0; j < s.Mesh.NJ; j++ {
						a, b := rp.Get(i, j), wp.Get(i, j)
						for n := range a {
							assert.InDelta(t, a[n], b[n], 1.e-12, "order %d zone (%d,%d) weight %d", order, i, j, n)
						}
					}
				}
			}
		}
	}
}

func TestExecutionModesAgree(t *testing.T) {
	s := newTestScheme(t, 3, 20, 20, WithRiemannSolver(RiemannHLLC), WithParallelDegree(3))
	rd := projectWithGhosts(t, s.Cell, s.Mesh, blastIC)
	var (
		advanced = make(map[types.ExecutionMode][]float64)
		limited  = make(map[types.ExecutionMode][]float64)
		speeds   = make(map[types.ExecutionMode][]float64)
	)
	for _, mode := range allModes {
		wr := make([]float64, len(rd))
		require.NoError(t, s.AdvanceRungeKuttaStage(rd, wr, 0.001, mode))
		advanced[mode] = wr
		for _, kind := range []LimiterType{LimiterConservedTVB, LimiterCharacteristic} {
			wl := make([]float64, len(rd))
			require.NoError(t, s.LimitSlopes(kind, rd, wl, mode))
			limited[mode] = append(limited[mode], wl...)
		}
		ws := make([]float64, s.Mesh.NumTotalZones())
		require.NoError(t, s.ComputeWavespeed(rd, ws, mode))
		speeds[mode] = ws
	}
	for _, mode := range allModes[1:] {
		assert.Equal(t, advanced[types.Sequential], advanced[mode], "advance in %s", mode)
		assert.Equal(t, limited[types.Sequential], limited[mode], "limiters in %s", mode)
		assert.Equal(t, speeds[types.Sequential], speeds[mode], "wavespeed in %s", mode)
	}
	m1, err := s.ReduceMaximum(speeds[types.Sequential], types.Sequential)
	require.NoError(t, err)
	m2, err := s.ReduceMaximum(speeds[types.Sequential], types.Parallel)
	require.NoError(t, err)
	assert.Equal(t, m1, m2)
	assert.True(t, m1 > 0)
	{ // Test projection agrees across modes
		samples := SamplePrimitive(s.Cell, s.Mesh, blastIC)
		var first []float64
		for _, mode := range allModes {
			w := make([]float64, DG2D.PatchSize(s.Mesh, s.NumFields(), 0))
			require.NoError(t, s.ProjectPrimitiveToWeights(samples, w, mode))
			if first == nil {
				first = w
				continue
			}
			assert.Equal(t, first, w, "projection in %s", mode)
		}
	}
}

func TestConservation(t *testing.T) {
	s := newTestScheme(t, 2, 16, 16, WithRiemannSolver(RiemannHLLC))
	gf, err := NewGhostFiller(s.Cell, s.Mesh, [4]types.BCFLAG{
		types.BC_Periodic, types.BC_Periodic, types.BC_Periodic, types.BC_Periodic})
	require.NoError(t, err)
	rd := make([]float64, s.WeightsSize())
	interior := make([]float64, DG2D.PatchSize(s.Mesh, s.NumFields(), 0))
	require.NoError(t, s.ProjectPrimitiveToWeights(SamplePrimitive(s.Cell, s.Mesh, blastIC), interior, types.Sequential))
	src, _ := DG2D.NewPatch(s.Mesh, s.NumFields(), 0, interior)
	dst, _ := DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, rd)
	DG2D.CopyZones(dst, src)
	require.NoError(t, gf.Fill(rd))
	wr := make([]float64, len(rd))
	require.NoError(t, s.AdvanceRungeKuttaStage(rd, wr, 0.002, types.Sequential))
	total := func(w []float64) (sum Conserved) {
		p, _ := DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, w)
		for i := 0; i < s.Mesh.NI; i++ {
			for j := 0; j < s.Mesh.NJ; j++ {
				z := p.Get(i, j)
				for q := 0; q < NCONS; q++ {
					sum[q] += z[q*s.Cell.NPoly]
				}
			}
		}
		return
	}
	before, after := total(rd), total(wr)
	for q := 0; q < NCONS; q++ {
		assert.InDelta(t, before[q], after[q], 1.e-12, "field %d", q)
	}
	assert.NotEqual(t, rd, wr)
}

func TestProjection(t *testing.T) {
	var (
		order = 3
		ic    = func(x, y float64) Primitive {
			return Primitive{1 + 0.1*x*x + 0.2*x*y, 0, 0, 1 + 0.3*y}
		}
	)
	s := newTestScheme(t, order, 4, 4)
	w := make([]float64, DG2D.PatchSize(s.Mesh, s.NumFields(), 0))
	require.NoError(t, s.ProjectPrimitiveToWeights(SamplePrimitive(s.Cell, s.Mesh, ic), w, types.Sequential))
	p, _ := DG2D.NewPatch(s.Mesh, s.NumFields(), 0, w)
	for i := 0; i < s.Mesh.NI; i++ {
		for j := 0; j < s.Mesh.NJ; j++ {
			for _, ref := range [][2]float64{{-1, -1}, {0.3, -0.8}, {0, 0}, {0.9, 0.4}} {
				var (
					x, y = s.Mesh.Coordinates(i, j, ref[0], ref[1])
					u    = reconstruct(p.Get(i, j), s.Cell.Evaluate(ref[0], ref[1]), s.Cell.NPoly)
					ue   = ToConserved(ic(x, y))
				)
				assert.True(t, nearVec(ue[:], u[:], 1.e-12), "zone (%d,%d) at %v", i, j, ref)
			}
		}
	}
}

func TestSchemeErrors(t *testing.T) {
	{ // Test a nil basis
		mesh, _ := DG2D.NewMesh(4, 4, 0, 1, 0, 1)
		_, err := NewScheme(nil, mesh)
		assert.ErrorIs(t, err, DG2D.ErrInvalidOrder)
	}
	cell, err := DG2D.NewCell(2)
	require.NoError(t, err)
	mesh, err := DG2D.NewMesh(4, 4, 0, 1, 0, 1)
	require.NoError(t, err)
	s, err := NewScheme(cell, mesh)
	require.NoError(t, err)
	rd := projectWithGhosts(t, cell, mesh, blastIC)
	{ // Test accelerator mode without a device leaves the output untouched
		wr := make([]float64, len(rd))
		for n := range wr {
			wr[n] = -7
		}
		err = s.AdvanceRungeKuttaStage(rd, wr, 0.01, types.Accelerator)
		assert.ErrorIs(t, err, utils.ErrUnsupportedMode)
		for _, v := range wr {
			assert.Equal(t, -7., v)
		}
		err = s.LimitSlopes(LimiterCharacteristic, rd, wr, types.Accelerator)
		assert.ErrorIs(t, err, utils.ErrUnsupportedMode)
		err = s.LimitSlopes(LimiterNone, rd, wr, types.Accelerator)
		assert.ErrorIs(t, err, utils.ErrUnsupportedMode)
		assert.Equal(t, -7., wr[0])
		_, err = s.ReduceMaximum([]float64{1, 2}, types.Accelerator)
		assert.ErrorIs(t, err, utils.ErrUnsupportedReduction)
	}
	{ // Test aliased and mis-sized buffers
		err = s.AdvanceRungeKuttaStage(rd, rd, 0.01, types.Sequential)
		assert.ErrorIs(t, err, DG2D.ErrAliasedBuffers)
		err = s.LimitConservedSlopes(rd, rd, types.Sequential)
		assert.ErrorIs(t, err, DG2D.ErrAliasedBuffers)
		err = s.ComputeWavespeed(rd, rd[:mesh.NumTotalZones()], types.Sequential)
		assert.ErrorIs(t, err, DG2D.ErrAliasedBuffers)
		err = s.AdvanceRungeKuttaStage(rd, make([]float64, len(rd)-1), 0.01, types.Sequential)
		assert.ErrorIs(t, err, DG2D.ErrPatchSize)
		err = s.ComputeWavespeed(rd, make([]float64, 3), types.Sequential)
		assert.ErrorIs(t, err, DG2D.ErrPatchSize)
		err = s.ProjectPrimitiveToWeights(make([]float64, s.PrimitiveSize()), make([]float64, s.WeightsSize()), types.Sequential)
		assert.ErrorIs(t, err, DG2D.ErrPatchSize)
	}
	{ // Test zones that are not square
		rect, err := DG2D.NewMesh(4, 4, 0, 1, 0, 2)
		require.NoError(t, err)
		sr, err := NewScheme(cell, rect)
		require.NoError(t, err)
		err = sr.AdvanceRungeKuttaStage(make([]float64, sr.WeightsSize()), make([]float64, sr.WeightsSize()), 0.01, types.Sequential)
		assert.ErrorIs(t, err, ErrNonSquareZones)
	}
	{ // Test an undefined limiter
		err = s.LimitSlopes(LimiterType(9), rd, make([]float64, len(rd)), types.Sequential)
		assert.Error(t, err)
	}
}
