package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/eulerdg/model_problems/Euler2D"
	"github.com/notargets/eulerdg/types"
)

func TestRun2D(t *testing.T) {
	var (
		err error
		dir = t.TempDir()
	)
	fileInput := []byte(`
Title: Test Case
CFL: 0.1
InitType: explosion
FluxType: hllc
Limiter: tvb
PolynomialOrder: 2
MaxIterations: 4
Fold: 2
NI: 12
NJ: 12
XMin: -0.5
XMax: 0.5
YMin: -0.5
YMax: 0.5
BCs:
  xmin: outflow
  xmax: outflow
  ymin: wall
  ymax: wall
`)
	icFile := filepath.Join(dir, "explosion.yaml")
	require.NoError(t, os.WriteFile(icFile, fileInput, 0o644))
	{ // Test a missing input file is reported
		_, err = processInput(&Model2D{})
		assert.Error(t, err)
		_, err = processInput(&Model2D{ICFile: filepath.Join(dir, "missing.yaml")})
		assert.Error(t, err)
	}
	{ // Test overrides from flags and config
		viper.Set("mode", "parallel")
		viper.Set("threads", 3)
		ip, err := processInput(&Model2D{ICFile: icFile, OutputDir: dir, Checkpoint: 0.01})
		viper.Set("mode", "")
		viper.Set("threads", 0)
		require.NoError(t, err)
		assert.Equal(t, "parallel", ip.ExecutionMode)
		assert.Equal(t, 3, ip.ParallelDegree)
		assert.Equal(t, dir, ip.OutputDir)
		assert.Equal(t, 0.01, ip.CheckpointInterval)
		assert.Equal(t, "wall", ip.BC("ymax"))
	}
	{ // Test a short run and a restart from its last checkpoint
		m2d := &Model2D{ICFile: icFile, OutputDir: dir, Checkpoint: 1}
		ip, err := processInput(m2d)
		require.NoError(t, err)
		require.NoError(t, Run2D(context.Background(), m2d, ip, logr.Discard()))
		last := Euler2D.CheckpointPath(dir, 1)
		cp, err := Euler2D.ReadCheckpoint(last)
		require.NoError(t, err)
		assert.Equal(t, 4, cp.Iteration)

		m2d.Restart = last
		ip.MaxIterations = 6
		ip.ExecutionMode = "accelerator"
		require.NoError(t, Run2D(context.Background(), m2d, ip, logr.Discard()))
		cp, err = Euler2D.ReadCheckpoint(Euler2D.CheckpointPath(dir, 2))
		require.NoError(t, err)
		assert.Equal(t, 6, cp.Iteration)
	}
}

func TestValidateShockTube(t *testing.T) {
	var (
		dir = t.TempDir()
	)
	fileInput := []byte(`
Title: Sod
CFL: 0.1
InitType: sod
FluxType: hllc
Limiter: characteristic
PolynomialOrder: 2
RKOrder: 2
FinalTime: 0.1
NI: 50
NJ: 2
XMin: 0
XMax: 1
YMin: 0
YMax: 0.04
BCs:
  xmin: outflow
  xmax: outflow
  ymin: periodic
  ymax: periodic
`)
	icFile := filepath.Join(dir, "sod.yaml")
	require.NoError(t, os.WriteFile(icFile, fileInput, 0o644))
	m2d := &Model2D{ICFile: icFile, OutputDir: dir, Validate: true}
	ip, err := processInput(m2d)
	require.NoError(t, err)
	c, err := Euler2D.NewEuler(ip, logr.Discard())
	require.NoError(t, err)
	{ // Test the initial projection matches the exact solution away from the jump
		l1, ok, err := ValidateShockTube(c)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Less(t, l1[0], 0.02)
		assert.Equal(t, 0., l1[1])
	}
	{ // Test the solved state stays close to the exact solution
		require.NoError(t, c.Solve(context.Background()))
		l1, ok, err := ValidateShockTube(c)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Greater(t, l1[0], 0.)
		assert.Less(t, l1[0], 0.03)
		assert.Less(t, l1[2], 0.1)
	}
	{ // Test the command path logs the errors without failing
		require.NoError(t, Run2D(context.Background(), m2d, ip, logr.Discard()))
	}
	{ // Test a flow function line after the run, and an unknown name failing before it
		m2d.Line = "mach"
		require.NoError(t, Run2D(context.Background(), m2d, ip, logr.Discard()))
		m2d.Line = "vorticity"
		assert.Error(t, Run2D(context.Background(), m2d, ip, logr.Discard()))
		m2d.Line = ""
		pf, err := Euler2D.NewFlowFunction("entropy")
		require.NoError(t, err)
		assert.NoError(t, PrintLine(c, pf, 10))
	}
	{ // Test setups without a Riemann solution are skipped
		ip.InitType = "explosion"
		require.NoError(t, ip.Validate())
		c, err := Euler2D.NewEuler(ip, logr.Discard())
		require.NoError(t, err)
		_, ok, err := ValidateShockTube(c)
		assert.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestBenchmark(t *testing.T) {
	{ // Test every mode produces a rate
		for _, mode := range []types.ExecutionMode{types.Sequential, types.Parallel, types.Accelerator} {
			b := &Bench{NI: 16, Order: 2, Steps: 3, Mode: mode, Limiter: Euler2D.LimiterCharacteristic}
			res, err := RunBenchmark(b, logr.Discard())
			require.NoError(t, err)
			assert.Equal(t, 256, res.Zones)
			assert.Equal(t, 3, res.Steps)
			assert.True(t, res.Mzps > 0)
		}
	}
	{ // Test bad settings
		_, err := RunBenchmark(&Bench{NI: 16, Order: 7, Steps: 1}, logr.Discard())
		assert.Error(t, err)
		_, err = RunBenchmark(&Bench{NI: 16, Order: 2, Steps: 1, Profile: "gpu"}, logr.Discard())
		assert.Error(t, err)
	}
}
