package DG2D

import (
	"fmt"
	"unsafe"

	"github.com/notargets/eulerdg/utils"
)

// Patch addresses a caller owned buffer holding NumFields values per zone
// over the zone range [Start, Start+Count). The layout is row major over i,
// then j, then field.
type Patch struct {
	Start, Count, Jumps [2]int
	NumFields           int
	Data                []float64
}

// PatchSize is the buffer length needed for a patch over mesh
func PatchSize(mesh Mesh, numFields, numGuard int) int {
	return (mesh.NI + 2*numGuard) * (mesh.NJ + 2*numGuard) * numFields
}

func NewPatch(mesh Mesh, numFields, numGuard int, data []float64) (p Patch, err error) {
	p = Patch{
		Start:     [2]int{-numGuard, -numGuard},
		Count:     [2]int{mesh.NI + 2*numGuard, mesh.NJ + 2*numGuard},
		NumFields: numFields,
		Data:      data,
	}
	p.Jumps = [2]int{numFields * p.Count[1], numFields}
	if len(data) != p.Len() {
		err = fmt.Errorf("%w: have %d values, want %d (%d x %d zones, %d fields)",
			ErrPatchSize, len(data), p.Len(), p.Count[0], p.Count[1], numFields)
	}
	return
}

func (p Patch) Len() int { return p.Count[0] * p.Count[1] * p.NumFields }

func (p Patch) Offset(i, j int) int {
	return p.Jumps[0]*(i-p.Start[0]) + p.Jumps[1]*(j-p.Start[1])
}

// Get returns the fields of zone (i,j), capped so appends cannot reach the next zone
func (p Patch) Get(i, j int) []float64 {
	o := p.Offset(i, j)
	return p.Data[o : o+p.NumFields : o+p.NumFields]
}

func (p Patch) Contains(i, j int) bool {
	return i >= p.Start[0] && i < p.Start[0]+p.Count[0] &&
		j >= p.Start[1] && j < p.Start[1]+p.Count[1]
}

// InteriorRange is the zone range with numGuard zones trimmed from every side
func (p Patch) InteriorRange(numGuard int) utils.ZoneRange {
	return utils.ZoneRange{
		I0: p.Start[0] + numGuard, I1: p.Start[0] + p.Count[0] - numGuard,
		J0: p.Start[1] + numGuard, J1: p.Start[1] + p.Count[1] - numGuard,
	}
}

// Overlaps reports whether the backing storage of the two patches intersects
func (p Patch) Overlaps(q Patch) bool {
	if len(p.Data) == 0 || len(q.Data) == 0 {
		return false
	}
	var (
		size = unsafe.Sizeof(p.Data[0])
		p0   = uintptr(unsafe.Pointer(unsafe.SliceData(p.Data)))
		q0   = uintptr(unsafe.Pointer(unsafe.SliceData(q.Data)))
		p1   = p0 + uintptr(len(p.Data))*size
		q1   = q0 + uintptr(len(q.Data))*size
	)
	return p0 < q1 && q0 < p1
}

// CopyZones copies every zone present in both patches from src to dst
func CopyZones(dst, src Patch) {
	var (
		i0 = max(dst.Start[0], src.Start[0])
		i1 = min(dst.Start[0]+dst.Count[0], src.Start[0]+src.Count[0])
		j0 = max(dst.Start[1], src.Start[1])
		j1 = min(dst.Start[1]+dst.Count[1], src.Start[1]+src.Count[1])
		nf = min(dst.NumFields, src.NumFields)
	)
	for i := i0; i < i1; i++ {
		for j := j0; j < j1; j++ {
			copy(dst.Get(i, j)[:nf], src.Get(i, j)[:nf])
		}
	}
}

// WeightsPair is a read buffer and a disjoint write buffer for one kernel pass
type WeightsPair struct {
	Read, Write Patch
}

func NewWeightsPair(read, write Patch) (wp WeightsPair, err error) {
	if read.Overlaps(write) {
		err = fmt.Errorf("%w: %d and %d values", ErrAliasedBuffers, len(read.Data), len(write.Data))
		return
	}
	if read.Count != write.Count || read.Start != write.Start || read.NumFields != write.NumFields {
		err = fmt.Errorf("%w: read and write patches differ in shape", ErrPatchSize)
		return
	}
	wp = WeightsPair{Read: read, Write: write}
	return
}
