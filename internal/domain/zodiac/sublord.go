package zodiac

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/kpastro/internal/domain/types"
	"github.com/okian/kpastro/internal/domain/vimshottari"
)

// boundaryTolerance is the drift accepted between the summed table and the super-cycle.
const boundaryTolerance = 1e-9

// boundary closes one sub-sub interval of the 120 degree super-cycle.
type boundary struct {
	end    float64
	sub    vimshottari.Lord
	subSub vimshottari.Lord
}

// subSubTable holds the 729 cumulative sub-sub boundaries of one super-cycle.
var subSubTable = buildSubSubTable()

func buildSubSubTable() []boundary {
	table := make([]boundary, 0, vimshottari.Count*vimshottari.Count*vimshottari.Count)
	for block := 0; block < vimshottari.Count; block++ {
		start := float64(block) * NakshatraArc
		for _, sub := range vimshottari.Partition(NakshatraLord(block), NakshatraArc) {
			for _, ss := range vimshottari.Partition(sub.Lord, sub.Length) {
				table = append(table, boundary{
					end:    start + sub.Offset + ss.End(),
					sub:    sub.Lord,
					subSub: ss.Lord,
				})
			}
		}
	}
	last := &table[len(table)-1]
	if math.Abs(last.end-SuperCycle) > boundaryTolerance {
		panic(fmt.Sprintf("zodiac: sub-lord table closes at %.12f, want %v", last.end, SuperCycle))
	}
	last.end = SuperCycle
	return table
}

// lookupSubLords finds the first boundary reaching r, with r in [0, 120).
func lookupSubLords(r float64) (vimshottari.Lord, vimshottari.Lord, error) {
	i := sort.Search(len(subSubTable), func(i int) bool { return subSubTable[i].end >= r })
	if i == len(subSubTable) {
		return 0, 0, fmt.Errorf("sub-lord scan overran at %v: %w", r, types.ErrAmbiguousClassification)
	}
	return subSubTable[i].sub, subSubTable[i].subSub, nil
}

// Span is a contiguous zodiac arc ruled by one sub-lord.
type Span struct {
	Start float64
	End   float64
	Lord  vimshottari.Lord
}

// SubLordSpans returns the 243 sub-lord spans covering [0, 360) in order.
func SubLordSpans() []Span {
	out := make([]Span, 0, 27*vimshottari.Count)
	for n := 0; n < 27; n++ {
		start := float64(n) * NakshatraArc
		for _, sub := range vimshottari.Partition(NakshatraLord(n), NakshatraArc) {
			out = append(out, Span{Start: start + sub.Offset, End: start + sub.End(), Lord: sub.Lord})
		}
	}
	out[len(out)-1].End = 360
	return out
}
