/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/eulerdg/InputParameters"
	"github.com/notargets/eulerdg/model_problems/Euler2D"
	"github.com/notargets/eulerdg/model_problems/Euler2D/sod_shock_tube"
	exact "github.com/notargets/eulerdg/sod_shock_tube"
	"github.com/notargets/eulerdg/types"
	"github.com/notargets/eulerdg/utils"
)

type Model2D struct {
	ICFile     string
	OutputDir  string
	Restart    string
	Checkpoint float64
	Validate   bool
	Line       string // flow function sampled along the mid line after the run
}

const exampleInputFile = `
########################################
Title: "Sod Shock Tube"
CFL: 0.1
FluxType: hllc         # or hlle
InitType: sod          # explosion, density-wave, lax, double-rarefaction, cylinder-in-wind, uniform
Limiter: characteristic # none, tvb
PolynomialOrder: 2
RKOrder: 2
FinalTime: 0.2
NI: 200
NJ: 4
XMin: 0
XMax: 1
YMin: 0
YMax: 0.02
BCs:
  xmin: outflow
  xmax: outflow
  ymin: periodic
  ymax: periodic
CheckpointInterval: 0.05
########################################
`

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional Euler solver on a uniform rectangular mesh",
	Long: `
Runs a two dimensional Euler problem described by a YAML input file, writing
checkpoints of the solution as it goes.

eulerdg 2D -I explosion.yaml -m parallel`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip  *InputParameters.InputParameters2D
			log logr.Logger
		)
		m2d := &Model2D{}
		if m2d.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		m2d.OutputDir, _ = cmd.Flags().GetString("outputDir")
		m2d.Restart, _ = cmd.Flags().GetString("restart")
		m2d.Checkpoint, _ = cmd.Flags().GetFloat64("checkpointInterval")
		m2d.Validate, _ = cmd.Flags().GetBool("validate")
		m2d.Line, _ = cmd.Flags().GetString("line")
		if ip, err = processInput(m2d); err != nil {
			return
		}
		if log, err = newLogger(); err != nil {
			return
		}
		return Run2D(cmd.Context(), m2d, ip, log)
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- CFL\n\t- InitType\n\t- PolynomialOrder")
	TwoDCmd.Flags().StringP("outputDir", "o", "", "directory for checkpoint files, overrides OutputDir")
	TwoDCmd.Flags().StringP("restart", "r", "", "checkpoint file to resume from")
	TwoDCmd.Flags().Float64P("checkpointInterval", "c", 0, "simulation time between checkpoints, overrides CheckpointInterval")
	TwoDCmd.Flags().String("line", "", "print a flow function along the mid line after the run: density, mach, pressure, entropy, ...")
	TwoDCmd.Flags().Bool("validate", false, "compare shock tube setups with the exact Riemann solution after the run")
}

// processInput reads the input file and applies command line and config overrides
func processInput(m2d *Model2D) (ip *InputParameters.InputParameters2D, err error) {
	var data []byte
	if len(m2d.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleInputFile)
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		return
	}
	if data, err = os.ReadFile(m2d.ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParameters2D{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", m2d.ICFile, err)
	}
	if mode := viper.GetString("mode"); len(mode) != 0 {
		ip.ExecutionMode = mode
	}
	if np := viper.GetInt("threads"); np > 0 {
		ip.ParallelDegree = np
	}
	if len(m2d.OutputDir) != 0 {
		ip.OutputDir = m2d.OutputDir
	}
	if m2d.Checkpoint > 0 {
		ip.CheckpointInterval = m2d.Checkpoint
	}
	return
}

func Run2D(ctx context.Context, m2d *Model2D, ip *InputParameters.InputParameters2D, log logr.Logger) (err error) {
	var (
		c    *Euler2D.Euler
		mode types.ExecutionMode
		opts []Euler2D.SchemeOption
		pf   Euler2D.FlowFunction
	)
	if mode, err = types.NewExecutionMode(ip.ExecutionMode); err != nil {
		return
	}
	if len(m2d.Line) != 0 {
		if pf, err = Euler2D.NewFlowFunction(m2d.Line); err != nil {
			return
		}
	}
	if mode == types.Accelerator {
		opts = append(opts, Euler2D.WithDevice(utils.NewHostDevice()))
	}
	ip.Print()
	if c, err = Euler2D.NewEuler(ip, log, opts...); err != nil {
		return
	}
	if len(m2d.Restart) != 0 {
		var cp *Euler2D.Checkpoint
		if cp, err = Euler2D.ReadCheckpoint(m2d.Restart); err != nil {
			return
		}
		if err = c.Restart(cp); err != nil {
			return
		}
		log.Info("restarted", "checkpoint", m2d.Restart, "time", c.Time, "iteration", c.Iteration)
	}
	if err = c.Solve(ctx); err != nil {
		return
	}
	if len(m2d.Line) != 0 {
		if err = PrintLine(c, pf, 2*c.Scheme.Mesh.NI); err != nil {
			return
		}
	}
	if !m2d.Validate {
		return
	}
	var (
		l1 [3]float64
		ok bool
	)
	if l1, ok, err = ValidateShockTube(c); err != nil || !ok {
		return
	}
	log.Info("shock tube L1 error", "time", c.Time, "rho", l1[0], "rhoU", l1[1], "E", l1[2])
	return
}

// PrintLine writes x and a flow function at n points along the middle of the domain
func PrintLine(c *Euler2D.Euler, pf Euler2D.FlowFunction, n int) (err error) {
	var (
		mesh = c.Scheme.Mesh
		x, f []float64
	)
	if x, f, err = c.LineProfile(pf, n, mesh.Y0+0.5*float64(mesh.NJ)*mesh.DY); err != nil {
		return
	}
	fmt.Printf("# x, %s at t = %g\n", pf, c.Time)
	for k := range x {
		fmt.Printf("%12.6f %14.6e\n", x[k], f[k])
	}
	return
}

// ValidateShockTube samples the solution along the middle of the domain and
// returns the mean absolute error of density, x momentum and energy against
// the exact Riemann solution. ok is false for setups other than a shock tube.
func ValidateShockTube(c *Euler2D.Euler) (l1 [3]float64, ok bool, err error) {
	var (
		left, right Euler2D.Primitive
		x0          float64
		problem     *exact.SodProblem
		mesh        = c.Scheme.Mesh
	)
	if left, right, x0, ok = c.Case.RiemannStates(); !ok {
		return
	}
	if problem, err = exact.NewSodProblem(Euler2D.Gamma,
		exact.State{Rho: left[0], U: left[1], P: left[3]},
		exact.State{Rho: right[0], U: right[1], P: right[3]}, x0); err != nil {
		return
	}
	st := sod_shock_tube.NewSODShockTube(4*mesh.NI, mesh.X0, mesh.X0+float64(mesh.NI)*mesh.DX,
		mesh.Y0+0.5*float64(mesh.NJ)*mesh.DY, problem)
	if err = st.Interpolate(func(x, y float64) (rho, rhoU, E float64, err error) {
		var u Euler2D.Conserved
		u, err = c.Evaluate(x, y)
		return Euler2D.GetFlowFunction(u, Euler2D.Density), Euler2D.GetFlowFunction(u, Euler2D.XMomentum),
			Euler2D.GetFlowFunction(u, Euler2D.Energy), err
	}); err != nil {
		return
	}
	l1[0], l1[1], l1[2] = st.L1Errors(c.Time)
	return
}
