package sod_shock_tube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func near(a, b float64, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSOD(t *testing.T) {
	{ // Test the classic gamma = 1.4 values
		sp, err := NewSod(1.4)
		require.NoError(t, err)
		assert.True(t, near(sp.PStar, 0.30313, 1.e-5))
		assert.True(t, near(sp.UStar, 0.92745, 1.e-5))
		assert.True(t, near(sp.ShockPosition(0.1), 0.6752, 1.e-4))
		assert.True(t, near(sp.ShockPosition(0.2), 0.8504, 1.e-4))
		s := sp.Sample(0.6, 0.1) // between contact and shock
		assert.True(t, near(s.Rho, 0.26557, 1.e-5))
		s = sp.Sample(0.55, 0.1) // between rarefaction tail and contact
		assert.True(t, near(s.Rho, 0.42632, 1.e-5))
		assert.Equal(t, State{1, 0, 1}, sp.Sample(0.2, 0.1))
		assert.Equal(t, State{0.125, 0, 0.1}, sp.Sample(0.9, 0.1))
		assert.Equal(t, State{1, 0, 1}, sp.Sample(0.4, 0))
	}
	{ // Test the rarefaction fan is continuous at its head and tail
		sp, _ := NewSod(1.4)
		X, Rho, _, _, _ := sp.SOD_calc(0.1, 0, 1, 2001)
		for i := 1; i < len(X); i++ {
			if X[i] > sp.ShockPosition(0.1)-0.01 {
				break
			}
			if X[i] < 0.58 { // smooth region left of the contact
				assert.True(t, math.Abs(Rho[i]-Rho[i-1]) < 0.01, "x = %g", X[i])
			}
		}
	}
	{ // Test gamma = 5/3 and symmetric double rarefaction
		sp, err := NewSod(5. / 3.)
		require.NoError(t, err)
		assert.True(t, sp.PStar > 0.1 && sp.PStar < 1)
		dr, err := NewSodProblem(1.4, State{1, -2, 0.4}, State{1, 2, 0.4}, 0.5)
		require.NoError(t, err)
		assert.True(t, near(dr.PStar, 0.00189, 1.e-5))
		assert.True(t, near(dr.UStar, 0, 1.e-10))
		assert.True(t, math.IsNaN(dr.ShockPosition(0.1)))
		_, err = NewSodProblem(1.4, State{1, -20, 0.4}, State{1, 20, 0.4}, 0.5)
		assert.Error(t, err)
	}
}
