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
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/eulerdg/DG2D"
	"github.com/notargets/eulerdg/model_problems/Euler2D"
	"github.com/notargets/eulerdg/types"
	"github.com/notargets/eulerdg/utils"
)

var errNoPerfCounters = errors.New("hardware performance counters are not available on this platform")

// Bench times repeated Runge-Kutta stages on a cylindrical explosion
type Bench struct {
	NI, Order, Steps int
	Mode             types.ExecutionMode
	ParallelDegree   int
	Flux             Euler2D.FluxType
	Limiter          Euler2D.LimiterType
	Profile          string // cpu, mem or empty
	ProfileDir       string
}

type BenchResult struct {
	Zones, Steps int
	Elapsed      time.Duration
	Mzps         float64
	Instructions uint64 // zero when counters are unavailable
}

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure the zone update rate of the DG kernels",
	Long: `
Advances a cylindrical explosion on an NI x NI mesh for a number of stages and
reports millions of zone updates per second, optionally under the CPU or memory
profiler. On Linux the retired instruction count is reported when the kernel
allows access to performance counters.

eulerdg bench --ni 512 --order 3 -m parallel`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			b   = &Bench{}
			log logr.Logger
			res BenchResult
		)
		b.NI, _ = cmd.Flags().GetInt("ni")
		b.Order, _ = cmd.Flags().GetInt("order")
		b.Steps, _ = cmd.Flags().GetInt("steps")
		b.Profile, _ = cmd.Flags().GetString("profile")
		b.ProfileDir, _ = cmd.Flags().GetString("profileDir")
		b.ParallelDegree = viper.GetInt("threads")
		flux, _ := cmd.Flags().GetString("flux")
		if b.Flux, err = Euler2D.NewFluxType(flux); err != nil {
			return
		}
		limiter, _ := cmd.Flags().GetString("limiter")
		if b.Limiter, err = Euler2D.NewLimiterType(limiter); err != nil {
			return
		}
		mode := viper.GetString("mode")
		if len(mode) == 0 {
			mode = "sequential"
		}
		if b.Mode, err = types.NewExecutionMode(mode); err != nil {
			return
		}
		if log, err = newLogger(); err != nil {
			return
		}
		if res, err = RunBenchmark(b, log); err != nil {
			return
		}
		fmt.Printf("%d zones x %d stages in %v, Mzps = %.3f\n", res.Zones, res.Steps, res.Elapsed, res.Mzps)
		if res.Instructions != 0 {
			fmt.Printf("%.1f instructions per zone update\n",
				float64(res.Instructions)/float64(res.Zones*res.Steps))
		}
		fmt.Printf("%s\n", utils.GetMemUsage())
		return
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().Int("ni", 256, "zones along each side of the mesh")
	BenchCmd.Flags().IntP("order", "n", 2, "polynomial order, 1 to 5")
	BenchCmd.Flags().IntP("steps", "s", 10, "number of Runge-Kutta stages to time")
	BenchCmd.Flags().String("flux", "hlle", "Riemann solver: hlle or hllc")
	BenchCmd.Flags().String("limiter", "none", "slope limiter: none, tvb or characteristic")
	BenchCmd.Flags().String("profile", "", "profile the run: cpu or mem")
	BenchCmd.Flags().String("profileDir", ".", "directory for profile output")
}

func RunBenchmark(b *Bench, log logr.Logger) (res BenchResult, err error) {
	var (
		mesh   DG2D.Mesh
		cell   *DG2D.Cell
		s      *Euler2D.Scheme
		ghosts *Euler2D.GhostFiller
		opts   = []Euler2D.SchemeOption{
			Euler2D.WithRiemannSolver(b.Flux.Solver()),
			Euler2D.WithParallelDegree(b.ParallelDegree),
			Euler2D.WithLogger(log),
		}
	)
	if b.Mode == types.Accelerator {
		opts = append(opts, Euler2D.WithDevice(utils.NewHostDevice()))
	}
	if mesh, err = DG2D.NewMesh(b.NI, b.NI, -0.5, 0.5, -0.5, 0.5); err != nil {
		return
	}
	if cell, err = DG2D.NewCell(b.Order); err != nil {
		return
	}
	if s, err = Euler2D.NewScheme(cell, mesh, opts...); err != nil {
		return
	}
	if ghosts, err = Euler2D.NewGhostFiller(cell, mesh,
		[4]types.BCFLAG{types.BC_Out, types.BC_Out, types.BC_Out, types.BC_Out}); err != nil {
		return
	}
	var (
		w, wr    = make([]float64, s.WeightsSize()), make([]float64, s.WeightsSize())
		interior = make([]float64, DG2D.PatchSize(mesh, s.NumFields(), 0))
		ws       = make([]float64, mesh.NumTotalZones())
		samples  = Euler2D.SamplePrimitive(cell, mesh, Euler2D.EXPLOSION.InitialCondition())
		src, dst DG2D.Patch
		vmax     float64
	)
	if err = s.ProjectPrimitiveToWeights(samples, interior, b.Mode); err != nil {
		return
	}
	src, _ = DG2D.NewPatch(mesh, s.NumFields(), 0, interior)
	dst, _ = DG2D.NewPatch(mesh, s.NumFields(), Euler2D.NumGuard, w)
	DG2D.CopyZones(dst, src)
	if err = s.ComputeWavespeed(w, ws, b.Mode); err != nil {
		return
	}
	if vmax, err = s.ReduceMaximum(ws, types.Sequential); err != nil {
		return
	}
	dt := 0.1 * mesh.DX / vmax

	loop := func() (err error) {
		start := time.Now()
		for n := 0; n < b.Steps; n++ {
			if err = ghosts.Fill(w); err != nil {
				return
			}
			if err = s.AdvanceRungeKuttaStage(w, wr, dt, b.Mode); err != nil {
				return
			}
			if b.Limiter != Euler2D.LimiterNone {
				if err = ghosts.Fill(wr); err != nil {
					return
				}
				if err = s.LimitSlopes(b.Limiter, wr, w, b.Mode); err != nil {
					return
				}
				continue
			}
			w, wr = wr, w
		}
		res.Elapsed = time.Since(start)
		return
	}

	switch b.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(b.ProfileDir), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(b.ProfileDir), profile.Quiet).Stop()
	case "":
	default:
		err = fmt.Errorf("unknown profile %q, must be cpu or mem", b.Profile)
		return
	}

	var ran bool
	run := func() error {
		ran = true
		return loop()
	}
	if res.Instructions, err = countInstructions(run); err != nil {
		if ran {
			return
		}
		log.V(utils.DEBUG).Info("instruction counting unavailable", "reason", err.Error())
		if err = run(); err != nil {
			return
		}
	}
	res.Zones, res.Steps = mesh.NumTotalZones(), b.Steps
	if secs := res.Elapsed.Seconds(); secs > 0 {
		res.Mzps = float64(res.Zones*res.Steps) / 1e6 / secs
	}
	log.V(utils.DEBUG).Info("benchmark finished", "mode", b.Mode.String(), "order", b.Order,
		"zones", res.Zones, "mzps", res.Mzps)
	return
}
