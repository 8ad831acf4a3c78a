package types

import (
	"fmt"
	"strings"
)

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Periodic
	BC_Out
	BC_Wall
)

var BCNameMap = map[string]BCFLAG{
	"periodic": BC_Periodic,
	"out":      BC_Out,
	"outflow":  BC_Out,
	"wall":     BC_Wall,
	"reflect":  BC_Wall,
}

var bcPrintNames = []string{"None", "Periodic", "Outflow", "Wall"}

func (bc BCFLAG) String() string {
	if int(bc) < len(bcPrintNames) {
		return bcPrintNames[bc]
	}
	return fmt.Sprintf("BCFLAG(%d)", bc)
}

func NewBCFLAG(label string) (bc BCFLAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown boundary condition %q", label)
	}
	return
}

// Side names a face of the rectangular domain
type Side uint8

const (
	SideXMin Side = iota
	SideXMax
	SideYMin
	SideYMax
)

var SideNames = map[string]Side{
	"xmin": SideXMin, "left": SideXMin,
	"xmax": SideXMax, "right": SideXMax,
	"ymin": SideYMin, "bottom": SideYMin,
	"ymax": SideYMax, "top": SideYMax,
}

func (s Side) String() string {
	return [...]string{"xmin", "xmax", "ymin", "ymax"}[s]
}
