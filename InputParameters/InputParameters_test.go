package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParameters(t *testing.T) {
	{ // Test parsing a complete file
		data := []byte(`
Title: "Sod Shock Tube"
CFL: 0.2
FluxType: hllc
InitType: sod
Limiter: characteristic
PolynomialOrder: 3
RKOrder: 3
FinalTime: 0.1
NI: 100
NJ: 4
XMin: 0
XMax: 1
YMin: 0
YMax: 0.04
BCs:
  xmin: outflow
  xmax: outflow
ExecutionMode: parallel
ParallelDegree: 4
Fold: 5
CheckpointInterval: 0.05
OutputDir: /tmp/sod
CheckNaN: true
`)
		var ip InputParameters2D
		require.NoError(t, ip.Parse(data))
		assert.Equal(t, "Sod Shock Tube", ip.Title)
		assert.Equal(t, 0.2, ip.CFL)
		assert.Equal(t, "hllc", ip.FluxType)
		assert.Equal(t, 3, ip.PolynomialOrder)
		assert.Equal(t, 3, ip.RKOrder)
		assert.Equal(t, 100, ip.NI)
		assert.Equal(t, 0.04, ip.YMax)
		assert.Equal(t, "outflow", ip.BC("xmin"))
		assert.Equal(t, "outflow", ip.BC("XMAX"))
		assert.Equal(t, "periodic", ip.BC("ymin"))
		assert.Equal(t, "parallel", ip.ExecutionMode)
		assert.Equal(t, 4, ip.ParallelDegree)
		assert.True(t, ip.CheckNaN)
	}
	{ // Test defaults
		var ip InputParameters2D
		require.NoError(t, ip.Parse([]byte("NI: 8\nNJ: 8\nFinalTime: 1\n")))
		assert.Equal(t, 0.1, ip.CFL)
		assert.Equal(t, 2, ip.PolynomialOrder)
		assert.Equal(t, 2, ip.RKOrder)
		assert.Equal(t, 10, ip.Fold)
		assert.Equal(t, 1., ip.XMax)
		assert.Equal(t, "sequential", ip.ExecutionMode)
	}
	{ // Test rejected values
		var ip InputParameters2D
		assert.Error(t, ip.Parse([]byte("NI: 8\nNJ: 8\nFinalTime: 1\nPolynomialOrder: 6\n")))
		ip = InputParameters2D{}
		assert.Error(t, ip.Parse([]byte("NI: 8\nNJ: 8\nFinalTime: 1\nRKOrder: 4\n")))
		ip = InputParameters2D{}
		assert.Error(t, ip.Parse([]byte("NI: 8\nFinalTime: 1\n")))
		ip = InputParameters2D{}
		assert.Error(t, ip.Parse([]byte("NI: 8\nNJ: 8\n")))
		ip = InputParameters2D{}
		assert.Error(t, ip.Parse([]byte("NI: [8\n")))
	}
}
