package Euler2D

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/eulerdg/DG2D"
	"github.com/notargets/eulerdg/InputParameters"
	"github.com/notargets/eulerdg/types"
	"github.com/notargets/eulerdg/utils"
)

// Blend coefficient of the step start state in each SSP Runge-Kutta stage,
// stage n computes a*w0 + (1-a)*E(w) with E a forward Euler update.
var rkStageWeights = map[int][]float64{
	1: {0},
	2: {0, 1. / 2.},
	3: {0, 3. / 4., 1. / 3.},
}

type Euler struct {
	// Input parameters
	Title          string
	CFL, FinalTime float64
	MaxIterations  int
	RKOrder        int
	Fold           int
	OutputDir      string
	CheckNaN       bool
	Mode           types.ExecutionMode
	FluxCalcAlgo   FluxType
	LimiterAlgo    LimiterType
	Case           InitType
	Scheme         *Scheme
	Ghosts         *GhostFiller
	Log            logr.Logger

	Time      float64
	Iteration int
	W         []float64 // Solution weights including ghost zones
	w0, w1    []float64 // Step start state and stage output
	wavespeed []float64
	chkpt     RecurringTask
}

func NewEuler(ip *InputParameters.InputParameters2D, log logr.Logger, opts ...SchemeOption) (c *Euler, err error) {
	var (
		mesh DG2D.Mesh
		cell *DG2D.Cell
		bcs  [4]types.BCFLAG
	)
	c = &Euler{
		Title:         ip.Title,
		CFL:           ip.CFL,
		FinalTime:     ip.FinalTime,
		MaxIterations: ip.MaxIterations,
		RKOrder:       ip.RKOrder,
		Fold:          ip.Fold,
		OutputDir:     ip.OutputDir,
		CheckNaN:      ip.CheckNaN,
		Log:           log,
		chkpt:         RecurringTask{Interval: ip.CheckpointInterval},
	}
	if _, ok := rkStageWeights[c.RKOrder]; !ok {
		return nil, fmt.Errorf("Runge Kutta order %d is not available", c.RKOrder)
	}
	if c.Fold < 1 {
		c.Fold = 1
	}
	if c.FluxCalcAlgo, err = NewFluxType(ip.FluxType); err != nil {
		return nil, err
	}
	if c.LimiterAlgo, err = NewLimiterType(ip.Limiter); err != nil {
		return nil, err
	}
	if c.Case, err = NewInitType(ip.InitType); err != nil {
		return nil, err
	}
	if c.Mode, err = types.NewExecutionMode(ip.ExecutionMode); err != nil {
		return nil, err
	}
	for side := types.SideXMin; side <= types.SideYMax; side++ {
		if bcs[side], err = types.NewBCFLAG(ip.BC(side.String())); err != nil {
			return nil, err
		}
	}
	if mesh, err = DG2D.NewMesh(ip.NI, ip.NJ, ip.XMin, ip.XMax, ip.YMin, ip.YMax); err != nil {
		return nil, err
	}
	if cell, err = DG2D.NewCell(ip.PolynomialOrder); err != nil {
		return nil, err
	}
	opts = append([]SchemeOption{
		WithRiemannSolver(c.FluxCalcAlgo.Solver()),
		WithParallelDegree(ip.ParallelDegree),
		WithLogger(log),
	}, opts...)
	if c.Scheme, err = NewScheme(cell, mesh, opts...); err != nil {
		return nil, err
	}
	if c.Ghosts, err = NewGhostFiller(cell, mesh, bcs); err != nil {
		return nil, err
	}
	size := c.Scheme.WeightsSize()
	c.W = make([]float64, size)
	c.w0 = make([]float64, size)
	c.w1 = make([]float64, size)
	c.wavespeed = make([]float64, mesh.NumTotalZones())
	if err = c.InitializeSolution(c.Case.InitialCondition()); err != nil {
		return nil, err
	}
	return
}

// InitializeSolution projects ic into the solution weights and fills the ghost zones
func (c *Euler) InitializeSolution(ic InitialCondition) (err error) {
	var (
		s        = c.Scheme
		samples  = SamplePrimitive(s.Cell, s.Mesh, ic)
		interior = make([]float64, DG2D.PatchSize(s.Mesh, s.NumFields(), 0))
		src, dst DG2D.Patch
	)
	if err = s.ProjectPrimitiveToWeights(samples, interior, c.Mode); err != nil {
		return
	}
	if src, err = DG2D.NewPatch(s.Mesh, s.NumFields(), 0, interior); err != nil {
		return
	}
	if dst, err = DG2D.NewPatch(s.Mesh, s.NumFields(), NumGuard, c.W); err != nil {
		return
	}
	DG2D.CopyZones(dst, src)
	c.Time, c.Iteration = 0, 0
	return c.Ghosts.Fill(c.W)
}

// Timestep is the CFL limited step, clipped to land on FinalTime
func (c *Euler) Timestep() (dt float64, err error) {
	var (
		vmax float64
		mesh = c.Scheme.Mesh
		rm   = c.Mode
	)
	if err = c.Scheme.ComputeWavespeed(c.W, c.wavespeed, c.Mode); err != nil {
		return
	}
	if rm == types.Accelerator {
		rm = types.Sequential
	}
	if vmax, err = c.Scheme.ReduceMaximum(c.wavespeed, rm); err != nil {
		return
	}
	if !(vmax > 0) || math.IsInf(vmax, 0) {
		err = fmt.Errorf("iteration %d: maximum wavespeed is %g", c.Iteration, vmax)
		return
	}
	dt = c.CFL * math.Min(mesh.DX, mesh.DY) / vmax
	if c.FinalTime > 0 && c.Time+dt > c.FinalTime {
		dt = c.FinalTime - c.Time
	}
	return
}

// Step advances the solution one SSP Runge-Kutta step
func (c *Euler) Step() (dt float64, err error) {
	if dt, err = c.Timestep(); err != nil {
		return
	}
	copy(c.w0, c.W)
	for _, a := range rkStageWeights[c.RKOrder] {
		if err = c.stage(a, dt); err != nil {
			return
		}
	}
	c.Iteration++
	c.Time += dt
	if c.FinalTime > 0 && math.Abs(c.FinalTime-c.Time) < 1.e-12*c.FinalTime {
		c.Time = c.FinalTime
	}
	if c.CheckNaN {
		if n := utils.FirstNan(c.W); n >= 0 {
			err = fmt.Errorf("iteration %d: NaN in weight %d of zone %d", c.Iteration,
				n%c.Scheme.NumFields(), n/c.Scheme.NumFields())
			c.Log.Error(err, "solution diverged", "time", c.Time)
		}
	}
	return
}

func (c *Euler) stage(a, dt float64) (err error) {
	s := c.Scheme
	if err = c.Ghosts.Fill(c.W); err != nil {
		return
	}
	if err = s.AdvanceRungeKuttaStage(c.W, c.w1, dt, c.Mode); err != nil {
		return
	}
	if a != 0 {
		floats.Scale(1-a, c.w1)
		floats.AddScaled(c.w1, a, c.w0)
	}
	if c.LimiterAlgo == LimiterNone {
		c.W, c.w1 = c.w1, c.W
		return
	}
	if err = c.Ghosts.Fill(c.w1); err != nil {
		return
	}
	return s.LimitSlopes(c.LimiterAlgo, c.w1, c.W, c.Mode)
}

func (c *Euler) CheckIfFinished() bool {
	return (c.FinalTime > 0 && c.Time >= c.FinalTime) ||
		(c.MaxIterations > 0 && c.Iteration >= c.MaxIterations)
}

// Solve steps until FinalTime or MaxIterations, printing a status line every
// Fold steps. Cancellation of ctx is checked between steps.
func (c *Euler) Solve(ctx context.Context) (err error) {
	var (
		elapsed time.Duration
		steps   int
		dt      float64
		nZones  = c.Scheme.Mesh.NumTotalZones()
	)
	c.PrintInitialization()
	for !c.CheckIfFinished() {
		if c.chkpt.Due(c.Time) {
			if err = c.WriteCheckpoint(); err != nil {
				return
			}
		}
		var foldSteps int
		start := time.Now()
		for n := 0; n < c.Fold && !c.CheckIfFinished(); n++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if dt, err = c.Step(); err != nil {
				return
			}
			foldSteps++
		}
		foldTime := time.Since(start)
		elapsed += foldTime
		steps += foldSteps
		c.PrintUpdate(dt, float64(nZones*foldSteps)/1e6/foldTime.Seconds())
	}
	if c.chkpt.Interval > 0 {
		if err = c.WriteCheckpoint(); err != nil {
			return
		}
	}
	c.PrintFinal(elapsed, steps)
	return
}

// CellAverage is the primitive state of the mean of zone (i,j)
func (c *Euler) CellAverage(i, j int) (p Primitive) {
	var (
		nPoly = c.Scheme.Cell.NPoly
		wp, _ = DG2D.NewPatch(c.Scheme.Mesh, c.Scheme.NumFields(), NumGuard, c.W)
		wij   = wp.Get(i, j)
		cons  Conserved
	)
	for q := 0; q < NCONS; q++ {
		cons[q] = wij[q*nPoly]
	}
	return ToPrimitive(cons)
}

// Evaluate reconstructs the conserved state at physical point (x,y)
func (c *Euler) Evaluate(x, y float64) (u Conserved, err error) {
	var (
		mesh  = c.Scheme.Mesh
		cell  = c.Scheme.Cell
		nPoly = cell.NPoly
		fi    = (x - mesh.X0) / mesh.DX
		fj    = (y - mesh.Y0) / mesh.DY
	)
	if !(fi >= 0 && fj >= 0 && fi <= float64(mesh.NI) && fj <= float64(mesh.NJ)) {
		err = fmt.Errorf("%w: [%g,%g]", ErrOutsideDomain, x, y)
		return
	}
	i, j := min(int(fi), mesh.NI-1), min(int(fj), mesh.NJ-1)
	xc, yc := mesh.ZoneCenter(i, j)
	phi := cell.Evaluate(2*(x-xc)/mesh.DX, 2*(y-yc)/mesh.DY)
	wp, _ := DG2D.NewPatch(mesh, c.Scheme.NumFields(), NumGuard, c.W)
	wij := wp.Get(i, j)
	for q := 0; q < NCONS; q++ {
		u[q] = floats.Dot(phi, wij[q*nPoly:(q+1)*nPoly])
	}
	return
}

// LineProfile samples a flow function at n points along y, centred in n
// equal intervals of the x extent
func (c *Euler) LineProfile(pf FlowFunction, n int, y float64) (x, f []float64, err error) {
	var (
		mesh = c.Scheme.Mesh
		dx   = float64(mesh.NI) * mesh.DX / float64(n)
		u    Conserved
	)
	x, f = make([]float64, n), make([]float64, n)
	for k := range x {
		x[k] = mesh.X0 + (float64(k)+0.5)*dx
		if u, err = c.Evaluate(x[k], y); err != nil {
			return nil, nil, err
		}
		f[k] = GetFlowFunction(u, pf)
	}
	return
}

// L1Error is the domain mean of |u - u_exact| for each conserved field at the
// current time. The rule has Order+2 points per direction, more than the
// projection samples.
func (c *Euler) L1Error() (l1 Conserved, err error) {
	var (
		mesh  = c.Scheme.Mesh
		cell  = c.Scheme.Cell
		nPoly = cell.NPoly
		sol   ExactSolution
		ok    bool
		wp    DG2D.Patch
		nodes = cell.NodesOfRule(cell.Order + 2)
	)
	if sol, ok = c.Case.ExactSolution(); !ok {
		err = fmt.Errorf("%w: %s", ErrNoExactSolution, c.Case.Print())
		return
	}
	if wp, err = DG2D.NewPatch(mesh, c.Scheme.NumFields(), NumGuard, c.W); err != nil {
		return
	}
	for i := 0; i < mesh.NI; i++ {
		for j := 0; j < mesh.NJ; j++ {
			wij := wp.Get(i, j)
			for _, node := range nodes {
				x, y := mesh.Coordinates(i, j, node.Xi, node.Eta)
				ue := ToConserved(sol(x, y, c.Time))
				for q := 0; q < NCONS; q++ {
					uh := floats.Dot(node.Phi, wij[q*nPoly:(q+1)*nPoly])
					l1[q] += 0.25 * node.Weight * math.Abs(uh-ue[q])
				}
			}
		}
	}
	for q := range l1 {
		l1[q] /= float64(mesh.NumTotalZones())
	}
	return
}

func (c *Euler) NewCheckpoint() (cp *Checkpoint) {
	var (
		mesh = c.Scheme.Mesh
	)
	cp = &Checkpoint{
		Title:     c.Title,
		Setup:     c.Case.Print(),
		Iteration: c.Iteration,
		Time:      c.Time,
		Number:    c.chkpt.Number,
		Order:     c.Scheme.Cell.Order,
		NI:        mesh.NI,
		NJ:        mesh.NJ,
		X0:        mesh.X0,
		Y0:        mesh.Y0,
		DX:        mesh.DX,
		DY:        mesh.DY,
		Primitive: make([][4]float64, 0, mesh.NumTotalZones()),
		Weights:   append([]float64(nil), c.W...),
	}
	for i := 0; i < mesh.NI; i++ {
		for j := 0; j < mesh.NJ; j++ {
			cp.Primitive = append(cp.Primitive, c.CellAverage(i, j))
		}
	}
	return
}

func (c *Euler) WriteCheckpoint() (err error) {
	path := CheckpointPath(c.OutputDir, c.chkpt.Number)
	if err = c.NewCheckpoint().Write(path); err != nil {
		return fmt.Errorf("checkpoint %d: %w", c.chkpt.Number, err)
	}
	c.Log.Info("wrote checkpoint", "path", path, "iteration", c.Iteration, "time", c.Time)
	c.chkpt.Next()
	return
}

// Restart resumes from a checkpoint taken on the same mesh and basis
func (c *Euler) Restart(cp *Checkpoint) (err error) {
	var (
		mesh = c.Scheme.Mesh
	)
	if cp.NI != mesh.NI || cp.NJ != mesh.NJ || cp.Order != c.Scheme.Cell.Order ||
		len(cp.Weights) != len(c.W) {
		return fmt.Errorf("checkpoint %d has %d x %d zones of order %d, run has %d x %d of order %d",
			cp.Number, cp.NI, cp.NJ, cp.Order, mesh.NI, mesh.NJ, c.Scheme.Cell.Order)
	}
	copy(c.W, cp.Weights)
	c.Time, c.Iteration = cp.Time, cp.Iteration
	c.chkpt.Number = cp.Number + 1
	c.chkpt.NextTime = cp.Time + c.chkpt.Interval
	return c.Ghosts.Fill(c.W)
}

func (c *Euler) PrintInitialization() {
	var (
		s = c.Scheme
	)
	fmt.Printf("Euler Equations in 2 Dimensions\n")
	fmt.Printf("Solving %s\n", c.Case.Print())
	fmt.Printf("Algorithm: %s, Limiter: %s, Execution: %s\n",
		c.FluxCalcAlgo.Print(), c.LimiterAlgo.Print(), c.Mode)
	fmt.Printf("CFL = %8.4f, Polynomial Order = %d (%d modes), RK Order = %d, Mesh: %s\n",
		c.CFL, s.Cell.Order, s.Cell.NPoly, c.RKOrder, s.Mesh.Print())
	if c.FinalTime > 0 {
		fmt.Printf("Solving until finaltime = %8.5f\n", c.FinalTime)
	} else {
		fmt.Printf("Solving until Max Iterations = %d\n", c.MaxIterations)
	}
}

func (c *Euler) PrintUpdate(dt, mzps float64) {
	fmt.Printf("[%d] t=%.3f dt=%.3e Mzps=%.3f\n", c.Iteration, c.Time, dt, mzps)
}

func (c *Euler) PrintFinal(elapsed time.Duration, steps int) {
	if steps == 0 {
		return
	}
	rate := float64(elapsed.Microseconds()) / float64(c.Scheme.Mesh.NumTotalZones()*steps)
	fmt.Printf("\nRate of execution = %8.5f us/(zone*iteration) over %d iterations\n", rate, steps)
}
