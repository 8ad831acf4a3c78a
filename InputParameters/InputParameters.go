package InputParameters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters2D struct {
	Title              string            `yaml:"Title"`
	CFL                float64           `yaml:"CFL"`
	FluxType           string            `yaml:"FluxType"`
	InitType           string            `yaml:"InitType"`
	Limiter            string            `yaml:"Limiter"`
	PolynomialOrder    int               `yaml:"PolynomialOrder"`
	RKOrder            int               `yaml:"RKOrder"`
	FinalTime          float64           `yaml:"FinalTime"`
	MaxIterations      int               `yaml:"MaxIterations"`
	NI                 int               `yaml:"NI"`
	NJ                 int               `yaml:"NJ"`
	XMin               float64           `yaml:"XMin"`
	XMax               float64           `yaml:"XMax"`
	YMin               float64           `yaml:"YMin"`
	YMax               float64           `yaml:"YMax"`
	BCs                map[string]string `yaml:"BCs"` // Side name (xmin, xmax, ymin, ymax) to BC name
	ExecutionMode      string            `yaml:"ExecutionMode"`
	ParallelDegree     int               `yaml:"ParallelDegree"`
	Fold               int               `yaml:"Fold"`
	CheckpointInterval float64           `yaml:"CheckpointInterval"`
	OutputDir          string            `yaml:"OutputDir"`
	CheckNaN           bool              `yaml:"CheckNaN"`
}

func (ip *InputParameters2D) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	return ip.Validate()
}

// Validate fills in defaults for unset parameters and rejects out of range ones
func (ip *InputParameters2D) Validate() (err error) {
	if ip.CFL == 0 {
		ip.CFL = 0.1
	}
	if ip.PolynomialOrder == 0 {
		ip.PolynomialOrder = 2
	}
	if ip.RKOrder == 0 {
		ip.RKOrder = 2
	}
	if ip.Fold == 0 {
		ip.Fold = 10
	}
	if ip.XMax == ip.XMin {
		ip.XMin, ip.XMax = 0, 1
	}
	if ip.YMax == ip.YMin {
		ip.YMin, ip.YMax = 0, 1
	}
	if len(ip.ExecutionMode) == 0 {
		ip.ExecutionMode = "sequential"
	}
	if len(ip.OutputDir) == 0 {
		ip.OutputDir = "."
	}
	switch {
	case ip.CFL < 0:
		err = fmt.Errorf("CFL must be positive, have %g", ip.CFL)
	case ip.PolynomialOrder < 1 || ip.PolynomialOrder > 5:
		err = fmt.Errorf("PolynomialOrder must be between 1 and 5, have %d", ip.PolynomialOrder)
	case ip.RKOrder < 1 || ip.RKOrder > 3:
		err = fmt.Errorf("RKOrder must be 1, 2 or 3, have %d", ip.RKOrder)
	case ip.NI < 1 || ip.NJ < 1:
		err = fmt.Errorf("NI and NJ must be positive, have %d x %d", ip.NI, ip.NJ)
	case ip.XMax < ip.XMin || ip.YMax < ip.YMin:
		err = fmt.Errorf("domain extent is inverted")
	case ip.FinalTime <= 0 && ip.MaxIterations <= 0:
		err = fmt.Errorf("one of FinalTime or MaxIterations must be set")
	case ip.Fold < 0 || ip.ParallelDegree < 0 || ip.CheckpointInterval < 0:
		err = fmt.Errorf("Fold, ParallelDegree and CheckpointInterval must not be negative")
	}
	return
}

// BC returns the boundary condition name of a side, periodic when unset
func (ip *InputParameters2D) BC(side string) string {
	for k, v := range ip.BCs {
		if strings.EqualFold(k, side) {
			return v
		}
	}
	return "periodic"
}

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", ip.FluxType)
	fmt.Printf("[%s]\t= InitType\n", ip.InitType)
	fmt.Printf("[%s]\t\t\t= Limiter\n", ip.Limiter)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", ip.PolynomialOrder)
	fmt.Printf("[%d]\t\t\t\t= Runge Kutta Order\n", ip.RKOrder)
	fmt.Printf("[%d x %d]\t\t\t= Zones\n", ip.NI, ip.NJ)
	fmt.Printf("[%g,%g]x[%g,%g]\t= Domain\n", ip.XMin, ip.XMax, ip.YMin, ip.YMax)
	fmt.Printf("[%s]\t\t= Execution Mode\n", ip.ExecutionMode)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
