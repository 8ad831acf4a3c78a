package types

import (
	"fmt"
	"strings"
)

// ExecutionMode selects how per-zone work is scheduled
type ExecutionMode uint8

const (
	Sequential ExecutionMode = iota
	Parallel
	Accelerator
)

var (
	ExecutionModeNames = map[string]ExecutionMode{
		"sequential":  Sequential,
		"cpu":         Sequential,
		"parallel":    Parallel,
		"omp":         Parallel,
		"accelerator": Accelerator,
		"gpu":         Accelerator,
	}
	ExecutionModePrintNames = []string{"Sequential", "Parallel", "Accelerator"}
)

func (em ExecutionMode) String() string {
	if int(em) < len(ExecutionModePrintNames) {
		return ExecutionModePrintNames[em]
	}
	return fmt.Sprintf("ExecutionMode(%d)", em)
}

func NewExecutionMode(label string) (em ExecutionMode, err error) {
	var ok bool
	if em, ok = ExecutionModeNames[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown execution mode %q", label)
	}
	return
}
