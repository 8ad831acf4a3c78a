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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/eulerdg/InputParameters"
	"github.com/notargets/eulerdg/model_problems/Euler2D"
	"github.com/notargets/eulerdg/utils"
)

// ConvergenceStudy holds the error of one setup over a sequence of meshes,
// each refining the last by a factor of two
type ConvergenceStudy struct {
	Title  string
	Order  int
	CFL    float64
	NI     []int
	L1     []Euler2D.Conserved
	Orders []Euler2D.Conserved // observed order against the previous level
}

func NewConvergenceStudy(title string, order int, CFL float64) *ConvergenceStudy {
	return &ConvergenceStudy{
		Title: title,
		Order: order,
		CFL:   CFL,
	}
}

func (cs *ConvergenceStudy) Add(ni int, l1 Euler2D.Conserved) {
	var rate Euler2D.Conserved
	if n := len(cs.NI); n > 0 {
		ratio := math.Log(float64(ni) / float64(cs.NI[n-1]))
		for q := range rate {
			rate[q] = math.Log(cs.L1[n-1][q]/l1[q]) / ratio
		}
	}
	cs.NI = append(cs.NI, ni)
	cs.L1 = append(cs.L1, l1)
	cs.Orders = append(cs.Orders, rate)
}

// WriteCSV writes one record per level with the density, momentum and energy errors
func (cs *ConvergenceStudy) WriteCSV(w io.Writer) (err error) {
	var (
		cw = csv.NewWriter(w)
		ff = func(f float64) string { return strconv.FormatFloat(f, 'g', 6, 64) }
	)
	if err = cw.Write([]string{"Title", "NI", "Order", "CFL",
		"rhoL1", "rhoUL1", "rhoVL1", "EL1", "rhoRate", "rhoURate", "rhoVRate", "ERate"}); err != nil {
		return
	}
	for i, ni := range cs.NI {
		rec := []string{cs.Title, strconv.Itoa(ni), strconv.Itoa(cs.Order), ff(cs.CFL)}
		for _, v := range cs.L1[i] {
			rec = append(rec, ff(v))
		}
		for _, v := range cs.Orders[i] {
			rec = append(rec, ff(v))
		}
		if err = cw.Write(rec); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

func (cs *ConvergenceStudy) Print() {
	fmt.Printf("Title = %s, Order = %d, CFL = %5.2f\n", cs.Title, cs.Order, cs.CFL)
	fmt.Printf("%6s %12s %6s %12s %6s\n", "NI", "rho L1", "rate", "E L1", "rate")
	for i, ni := range cs.NI {
		fmt.Printf("%6d %12.4e %6.2f %12.4e %6.2f\n",
			ni, cs.L1[i][0], cs.Orders[i][0], cs.L1[i][3], cs.Orders[i][3])
	}
}

// convergenceSetup is a smooth problem on a mesh of ni zones along x
func convergenceSetup(init string, ni int) (ip *InputParameters.InputParameters2D, err error) {
	ip = &InputParameters.InputParameters2D{
		Title:    init,
		InitType: init,
		FluxType: "hllc",
		RKOrder:  3,
	}
	switch init {
	case "density-wave":
		ip.NI, ip.NJ = ni, 2
		ip.XMin, ip.XMax = 0, 1
		ip.YMin, ip.YMax = 0, 2/float64(ni)
		ip.FinalTime = 1
	case "isentropic-vortex", "ivortex":
		ip.NI, ip.NJ = ni, ni
		ip.XMin, ip.XMax = -5, 5
		ip.YMin, ip.YMax = -5, 5
		ip.FinalTime = 1
	default:
		return nil, fmt.Errorf("no smooth convergence setup named %s, use density-wave or isentropic-vortex", init)
	}
	return
}

type Convergence struct {
	Init      string
	NI        int
	Levels    int
	Order     int
	CFL       float64
	FinalTime float64 // overrides the setup when positive
	Mode      string
}

// RunConvergence solves the setup at Levels resolutions starting from NI zones
func RunConvergence(ctx context.Context, cv *Convergence, log logr.Logger) (cs *ConvergenceStudy, err error) {
	var (
		ip *InputParameters.InputParameters2D
		c  *Euler2D.Euler
		l1 Euler2D.Conserved
	)
	for level, ni := 0, cv.NI; level < cv.Levels; level, ni = level+1, 2*ni {
		if ip, err = convergenceSetup(cv.Init, ni); err != nil {
			return
		}
		ip.PolynomialOrder, ip.CFL, ip.ExecutionMode = cv.Order, cv.CFL, cv.Mode
		ip.Fold = math.MaxInt32
		if cv.FinalTime > 0 {
			ip.FinalTime = cv.FinalTime
		}
		if err = ip.Validate(); err != nil {
			return
		}
		if cs == nil {
			cs = NewConvergenceStudy(ip.Title, ip.PolynomialOrder, ip.CFL)
		}
		if c, err = Euler2D.NewEuler(ip, log); err != nil {
			return
		}
		if err = c.Solve(ctx); err != nil {
			return
		}
		if l1, err = c.L1Error(); err != nil {
			return
		}
		log.V(utils.DEBUG).Info("convergence level", "NI", ni, "rhoL1", l1[0])
		cs.Add(ni, l1)
	}
	return
}

// ConvergenceCmd represents the convergence command
var ConvergenceCmd = &cobra.Command{
	Use:   "convergence",
	Short: "Measure the order of accuracy on a smooth problem",
	Long: `
Solves a smooth problem with a known solution on a sequence of meshes, each
with twice the zones along a side of the last, and reports the L1 error of the
conserved fields with the observed order of convergence between levels.

eulerdg convergence --init isentropic-vortex -n 3 --levels 4 --csv vortex.csv`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			cv  = &Convergence{}
			log logr.Logger
			cs  *ConvergenceStudy
		)
		cv.Init, _ = cmd.Flags().GetString("init")
		cv.NI, _ = cmd.Flags().GetInt("ni")
		cv.Levels, _ = cmd.Flags().GetInt("levels")
		cv.Order, _ = cmd.Flags().GetInt("order")
		cv.CFL, _ = cmd.Flags().GetFloat64("cfl")
		cv.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		cv.Mode = viper.GetString("mode")
		csvFile, _ := cmd.Flags().GetString("csv")
		if cv.NI < 1 || cv.Levels < 1 {
			return fmt.Errorf("ni and levels must be positive, have %d and %d", cv.NI, cv.Levels)
		}
		if log, err = newLogger(); err != nil {
			return
		}
		if cs, err = RunConvergence(cmd.Context(), cv, log); err != nil {
			return
		}
		cs.Print()
		if len(csvFile) == 0 {
			return
		}
		var f *os.File
		if f, err = os.Create(csvFile); err != nil {
			return
		}
		if err = cs.WriteCSV(f); err != nil {
			_ = f.Close()
			return
		}
		return f.Close()
	},
}

func init() {
	rootCmd.AddCommand(ConvergenceCmd)
	ConvergenceCmd.Flags().String("init", "density-wave", "smooth setup: density-wave or isentropic-vortex")
	ConvergenceCmd.Flags().Int("ni", 8, "zones along x on the coarsest mesh")
	ConvergenceCmd.Flags().IntP("levels", "l", 4, "number of meshes")
	ConvergenceCmd.Flags().IntP("order", "n", 2, "polynomial order, 1 to 5")
	ConvergenceCmd.Flags().Float64("cfl", 0.1, "CFL number")
	ConvergenceCmd.Flags().Float64("finalTime", 0, "end time, the setup default when zero")
	ConvergenceCmd.Flags().String("csv", "", "file for the study as CSV")
}
