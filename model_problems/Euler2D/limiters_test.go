package Euler2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/eulerdg/DG2D"
	"github.com/notargets/eulerdg/types"
)

func TestMinmod(t *testing.T) {
	{ // Test slopes under the TVB threshold pass through
		assert.Equal(t, 0.01, MinmodTVB(0.01, 5, 0, -5, 0.1))
		assert.Equal(t, 0.005, MinmodB(0.005, -3, 3, 0.1))
	}
	{ // Test slopes bounded by both neighbor differences pass through exactly
		w1 := 0.3
		assert.Equal(t, w1, MinmodTVB(w1, 0, 1, 2, 0.01))
		assert.Equal(t, -0.4, MinmodB(-0.4, -0.5, -1, 0.01))
	}
	{ // Test steep slopes are clipped to the smallest difference
		a := 2.
		assert.True(t, near(MinmodTVB(a/sqrt3, 0, 0.5, 1.5, 0.01), 0.5/sqrt3, 1.e-14))
		assert.True(t, near(MinmodTVB(-a/sqrt3, 1.5, 1, 0, 0.01), -0.5/sqrt3, 1.e-14))
		assert.Equal(t, 0.5, MinmodB(a, 0.5, 1, 0.01))
		assert.Equal(t, -0.25, MinmodB(-a, -1, -0.25, 0.01))
	}
	{ // Test extrema flatten the slope
		assert.Equal(t, 0., MinmodTVB(1, 0, 1, 0, 0.01))
		assert.Equal(t, 0., MinmodB(1, -0.5, 0.5, 0.01))
		assert.Equal(t, 0., MinmodB(-1, 0.5, 0.5, 0.01))
	}
	{ // Test the limiter is odd
		for _, v := range [][3]float64{{1, 0.3, 0.7}, {0.2, 0.5, 0.1}, {2, -1, 1}} {
			assert.Equal(t, -MinmodB(v[0], v[1], v[2], 0.01), MinmodB(-v[0], -v[1], -v[2], 0.01))
		}
	}
	{ // Test limiter names
		lt, err := NewLimiterType("characteristic")
		assert.NoError(t, err)
		assert.Equal(t, LimiterCharacteristic, lt)
		lt, err = NewLimiterType("")
		assert.NoError(t, err)
		assert.Equal(t, LimiterNone, lt)
		_, err = NewLimiterType("superbee")
		assert.Error(t, err)
	}
}

func jumpIC(x0 float64) InitialCondition {
	return func(x, y float64) Primitive {
		if x < x0 {
			return Primitive{1, 0, 0, 1}
		}
		return Primitive{0.125, 0, 0, 1}
	}
}

func TestLimitersOnLinearData(t *testing.T) {
	linear := func(x, y float64) Primitive {
		return Primitive{1 + 5*x + 3*y, 0, 0, 1}
	}
	for _, order := range []int{2, 3, 4} {
		s := newTestScheme(t, order, 10, 10)
		rd := projectWithGhosts(t, s.Cell, s.Mesh, linear)
		for _, kind := range []LimiterType{LimiterNone, LimiterConservedTVB, LimiterCharacteristic} {
			wr := append([]float64(nil), rd...)
			require.NoError(t, s.LimitSlopes(kind, rd, wr, types.Sequential))
			assert.Equal(t, rd, wr, "order %d limiter %s", order, kind.Print())
		}
	}
}

func TestConservedLimiter(t *testing.T) {
	{ // Test a density jump inside zone 5 at second order
		s := newTestScheme(t, 2, 10, 1)
		rd := projectWithGhosts(t, s.Cell, s.Mesh, jumpIC(0.55))
		orig := append([]float64(nil), rd...)
		wr := make([]float64, len(rd))
		require.NoError(t, s.LimitConservedSlopes(rd, wr, types.Sequential))
		assert.Equal(t, orig, rd)
		var (
			rp, _ = DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, rd)
			wp, _ = DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, wr)
			nPoly = s.Cell.NPoly
		)
		assert.True(t, near(rp.Get(5, 0)[2], -0.4375, 1.e-14))
		assert.True(t, near(wp.Get(5, 0)[2], -0.4375/sqrt3, 1.e-14))
		for i := 0; i < s.Mesh.NI; i++ {
			for n := 0; n < s.NumFields(); n++ {
				if i == 5 && n == 2 {
					continue
				}
				assert.Equal(t, rp.Get(i, 0)[n], wp.Get(i, 0)[n], "zone %d weight %d", i, n)
			}
			// energy and momentum are uniform
			for q := 1; q < NCONS; q++ {
				assert.InDelta(t, 0, wp.Get(i, 0)[q*nPoly+2], 1.e-14)
			}
		}
	}
	{ // Test higher modes of a limited field are dropped
		s := newTestScheme(t, 3, 10, 1)
		rd := projectWithGhosts(t, s.Cell, s.Mesh, jumpIC(0.55))
		wr := make([]float64, len(rd))
		require.NoError(t, s.LimitConservedSlopes(rd, wr, types.Parallel))
		var (
			rp, _ = DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, rd)
			wp, _ = DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, wr)
			r5    = rp.Get(5, 0)
			w5    = wp.Get(5, 0)
			dx    = s.Mesh.DX
		)
		assert.NotEqual(t, 0., r5[3]+r5[4]+r5[5])
		assert.Equal(t, MinmodTVB(r5[2], rp.Get(4, 0)[0], r5[0], rp.Get(6, 0)[0], dx), w5[2])
		assert.NotEqual(t, r5[2], w5[2])
		assert.Equal(t, r5[0], w5[0])
		for l := 3; l < s.Cell.NPoly; l++ {
			assert.Equal(t, 0., w5[l])
		}
		// the energy field was not limited and keeps its modes
		m0 := 3 * s.Cell.NPoly
		assert.Equal(t, r5[m0:], w5[m0:])
	}
}

func TestCharacteristicLimiter(t *testing.T) {
	s := newTestScheme(t, 3, 10, 10)
	ic := func(x, y float64) Primitive {
		if x+0.5*y < 0.6 {
			return Primitive{1, 0.75, 0, 1}
		}
		return Primitive{0.125, 0, 0, 0.1}
	}
	rd := projectWithGhosts(t, s.Cell, s.Mesh, ic)
	orig := append([]float64(nil), rd...)
	wr := make([]float64, len(rd))
	require.NoError(t, s.LimitCharacteristicSlopes(rd, wr, types.Sequential))
	assert.Equal(t, orig, rd)
	var (
		rp, _   = DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, rd)
		wp, _   = DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, wr)
		nPoly   = s.Cell.NPoly
		limited int
	)
	for i := 0; i < s.Mesh.NI; i++ {
		for j := 0; j < s.Mesh.NJ; j++ {
			rz, wz := rp.Get(i, j), wp.Get(i, j)
			for q := 0; q < NCONS; q++ {
				assert.Equal(t, rz[q*nPoly], wz[q*nPoly], "means are never limited")
			}
			changed := false
			for n := range rz {
				if rz[n] != wz[n] {
					changed = true
				}
			}
			if !changed {
				continue
			}
			limited++
			// every field of a limited zone is linear afterwards
			for q := 0; q < NCONS; q++ {
				for l := 3; l < nPoly; l++ {
					assert.Equal(t, 0., wz[q*nPoly+l])
				}
			}
			for _, v := range wz {
				assert.False(t, math.IsNaN(v))
			}
		}
	}
	assert.True(t, limited > 0)
	{ // Test zones away from the discontinuity are copied
		far := [][2]int{{0, 0}, {9, 9}, {9, 0}}
		for _, z := range far {
			assert.Equal(t, rp.Get(z[0], z[1]), wp.Get(z[0], z[1]))
		}
	}
}
