package phase

import (
	"github.com/hhcho/winphase/panel"
)

// phaser bundles the shared read-only state of a phasing run. Each sample
// is phased independently by one worker; all mutable state lives in the
// worker's stack.
type phaser struct {
	pnl    *panel.Panel
	tgt    *panel.Target
	pools  []*WindowPool
	work   []*windowWork
	params *PhaseParams
}

// typedSeg is a mosaic segment in typed-marker coordinates, converted to
// reference coordinates once the sweep finishes.
type typedSeg struct {
	start int
	end   int
	cands CandidateSet
}

// expandPairs substitutes each unique id of the tied minimizing pairs with
// its full membership list. The union across ties forms the per-copy
// candidate sets: any haplotype appearing in any tied minimizer is a
// legitimate candidate.
func expandPairs(pool *WindowPool, ps PairSet) (CandidateSet, CandidateSet) {
	var c1, c2 CandidateSet
	for _, pr := range ps.Pairs {
		c1 = unionSorted(c1, pool.Members(pr[0]))
		c2 = unionSorted(c2, pool.Members(pr[1]))
	}
	return c1, c2
}

func closeSegment(segs []typedSeg, start, end int, cands CandidateSet) ([]typedSeg, int) {
	if end > start {
		segs = append(segs, typedSeg{start: start, end: end, cands: cands})
	}
	return segs, end
}

// phaseSample sweeps the windows left to right, maintaining the running
// candidate pair (A, B) and resolving orientation per window. Windows
// where every genotype entry is missing carry the running sets forward
// unchanged. A window where no orientation keeps both copies alive
// triggers the breakpoint search.
func (ph *phaser) phaseSample(sample int) (*Mosaic, error) {
	var A, B CandidateSet
	var segs [2][]typedSeg
	openStart := [2]int{0, 0}
	initialized := false

	for w, ww := range ph.work {
		ps, degenerate := ww.selectPairs(sample)
		if degenerate {
			continue
		}
		C1, C2 := expandPairs(ph.pools[w], ps)
		if !initialized {
			A, B = C1, C2
			initialized = true
			continue
		}

		a1, b1 := intersect(A, C1), intersect(B, C2)
		a2, b2 := intersect(A, C2), intersect(B, C1)
		ok1 := len(a1) > 0 && len(b1) > 0
		ok2 := len(a2) > 0 && len(b2) > 0

		switch {
		case ok1 && ok2:
			s1, s2 := len(a1)+len(b1), len(a2)+len(b2)
			if s2 > s1 || (s2 == s1 && ph.params.swapOnTie) {
				A, B = a2, b2
			} else {
				A, B = a1, b1
			}
		case ok1:
			A, B = a1, b1
		case ok2:
			A, B = a2, b2
		default:
			out, ok := ph.searchBreakpoint(sample, w, A, B, C1, C2)
			if !ok {
				return nil, &SampleError{Sample: sample, Window: w, Msg: "no consistent switch point"}
			}
			boundary := ph.pools[w].win.Start + out.offset
			if out.brokeA {
				segs[0], openStart[0] = closeSegment(segs[0], openStart[0], boundary, A)
			}
			if out.brokeB {
				segs[1], openStart[1] = closeSegment(segs[1], openStart[1], boundary, B)
			}
			A, B = out.newA, out.newB
		}
	}

	if !initialized {
		return nil, &SampleError{Sample: sample, Window: 0, Msg: "every window degenerate, no data to phase"}
	}

	segs[0], _ = closeSegment(segs[0], openStart[0], ph.params.numTyped, A)
	segs[1], _ = closeSegment(segs[1], openStart[1], ph.params.numTyped, B)

	return ph.finalize(segs), nil
}

// finalize converts typed-marker segment boundaries to reference-marker
// coordinates. A boundary between typed markers t-1 and t sits at the
// reference index of t; untyped markers in the gap belong to the left
// segment. The outermost segments extend to the panel edges.
func (ph *phaser) finalize(segs [2][]typedSeg) *Mosaic {
	ms := &Mosaic{}
	numMarkers := ph.params.numMarkers
	ttr := ph.tgt.TypedToRef()
	for c := 0; c < 2; c++ {
		out := make([]Segment, len(segs[c]))
		for k, ts := range segs[c] {
			startRef := 0
			if k > 0 {
				startRef = ttr[ts.start]
			}
			endRef := numMarkers
			if k < len(segs[c])-1 {
				endRef = ttr[ts.end]
			}
			out[k] = Segment{
				StartRef:   startRef,
				EndRef:     endRef,
				Rep:        ts.cands.Rep(),
				Candidates: ts.cands,
			}
		}
		ms.Copies[c] = out
	}
	return ms
}
