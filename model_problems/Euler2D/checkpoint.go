package Euler2D

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

// Checkpoint is a snapshot of a run, written as YAML. Weights hold the full
// solution with ghost zones, Primitive the cell average state of each
// interior zone in row major order.
type Checkpoint struct {
	Title     string       `json:"title"`
	Setup     string       `json:"setup"`
	Iteration int          `json:"iteration"`
	Time      float64      `json:"time"`
	Number    int          `json:"number"`
	Order     int          `json:"order"`
	NI        int          `json:"ni"`
	NJ        int          `json:"nj"`
	X0        float64      `json:"x0"`
	Y0        float64      `json:"y0"`
	DX        float64      `json:"dx"`
	DY        float64      `json:"dy"`
	Primitive [][4]float64 `json:"primitive"`
	Weights   []float64    `json:"weights"`
}

// RecurringTask schedules an action every Interval of simulation time
type RecurringTask struct {
	Number   int
	NextTime float64
	Interval float64
}

func (rt *RecurringTask) Due(time float64) bool {
	return rt.Interval > 0 && time >= rt.NextTime
}

func (rt *RecurringTask) Next() {
	rt.Number++
	rt.NextTime += rt.Interval
}

func CheckpointPath(dir string, number int) string {
	return filepath.Join(dir, fmt.Sprintf("chkpt.%04d.yaml", number))
}

func (cp *Checkpoint) Write(path string) (err error) {
	var data []byte
	if data, err = yaml.Marshal(cp); err != nil {
		return
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	return os.WriteFile(path, data, 0o644)
}

func ReadCheckpoint(path string) (cp *Checkpoint, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	cp = &Checkpoint{}
	if err = yaml.Unmarshal(data, cp); err != nil {
		cp = nil
		err = fmt.Errorf("reading checkpoint %s: %w", path, err)
	}
	return
}
