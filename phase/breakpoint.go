package phase

import (
	"github.com/hhcho/winphase/panel"
)

// breakOutcome is the result of a breakpoint search: the chosen
// orientation, the typed-marker offset within the window where the broken
// copies switch assignment, and the post-breakpoint running sets.
type breakOutcome struct {
	swap   bool
	offset int
	newA   CandidateSet
	newB   CandidateSet
	brokeA bool
	brokeB bool
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// alleleTrack extracts one haplotype's alleles over a window.
func (ph *phaser) alleleTrack(win Window, hap int) []uint8 {
	t := make([]uint8, win.Width())
	for m := range t {
		t[m] = ph.pnl.At(hap, ph.tgt.RefIndex(win.Start+m))
	}
	return t
}

// copyTracks returns the pre-switch and post-switch allele tracks for one
// chromosome copy. A copy whose intersection survives under the chosen
// orientation does not switch: both tracks follow the intersection
// representative.
func (ph *phaser) copyTracks(win Window, inter, running, incoming CandidateSet) (oldT, newT []uint8, cont bool) {
	if len(inter) > 0 {
		t := ph.alleleTrack(win, inter.Rep())
		return t, t, true
	}
	return ph.alleleTrack(win, running.Rep()), ph.alleleTrack(win, incoming.Rep()), false
}

// searchBreakpoint locates the switch point inside window w after both
// orientations of the running intersection collapsed. For each switch
// offset k, markers before k follow the previous windows' assignment and
// markers at or after k follow window w's assignment; the offset
// minimizing the joint genotype mismatch wins, ties preferring the window
// midpoint (or the window start under the break_at_window_start flag).
func (ph *phaser) searchBreakpoint(sample, w int, A, B, C1, C2 CandidateSet) (breakOutcome, bool) {
	win := ph.pools[w].win
	width := win.Width()
	x := ph.tgt.Row(sample)[win.Start:win.End]

	var best breakOutcome
	bestCont, bestMis := -1, 0
	found := false

	for _, swap := range []bool{false, true} {
		c1, c2 := C1, C2
		if swap {
			c1, c2 = C2, C1
		}
		if len(c1) == 0 || len(c2) == 0 {
			continue
		}
		iA, iB := intersect(A, c1), intersect(B, c2)

		oldA, newA, contA := ph.copyTracks(win, iA, A, c1)
		oldB, newB, contB := ph.copyTracks(win, iB, B, c2)
		cont := 0
		if contA {
			cont++
		}
		if contB {
			cont++
		}

		// Mismatch with the switch at the window start, then slide the
		// switch right one marker at a time.
		mis := 0
		for m := 0; m < width; m++ {
			if x[m] == panel.Missing {
				continue
			}
			mis += absInt(int(x[m]) - int(newA[m]) - int(newB[m]))
		}
		bestK, bestKMis := 0, mis
		bestKDist := absInt(-width) // 2*0 - width
		if ph.params.breakAtStart {
			bestKDist = 0
		}
		for k := 1; k < width; k++ {
			m := k - 1
			if x[m] != panel.Missing {
				mis += absInt(int(x[m])-int(oldA[m])-int(oldB[m])) -
					absInt(int(x[m])-int(newA[m])-int(newB[m]))
			}
			dist := absInt(2*k - width)
			if ph.params.breakAtStart {
				dist = k
			}
			if mis < bestKMis || (mis == bestKMis && dist < bestKDist) {
				bestK, bestKMis, bestKDist = k, mis, dist
			}
		}

		better := cont > bestCont ||
			(cont == bestCont && bestKMis < bestMis) ||
			(cont == bestCont && bestKMis == bestMis && ph.params.swapOnTie && swap)
		if !found || better {
			newSetA, newSetB := c1, c2
			if contA {
				newSetA = iA
			}
			if contB {
				newSetB = iB
			}
			best = breakOutcome{
				swap:   swap,
				offset: bestK,
				newA:   newSetA,
				newB:   newSetB,
				brokeA: !contA,
				brokeB: !contB,
			}
			bestCont, bestMis = cont, bestKMis
			found = true
		}
	}

	return best, found
}
