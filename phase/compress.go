package phase

import (
	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/mat"

	"github.com/hhcho/winphase/panel"
)

// WindowPool is the unique-haplotype pool of one window: every reference
// haplotype restricted to the window's typed markers, deduplicated by exact
// sequence equality. Membership lists partition the full panel.
type WindowPool struct {
	win     Window
	seq     *mat.Dense // numUnique x width, entries in {0,1}
	members [][]int    // unique id -> ascending reference-haplotype indices
}

func (wp *WindowPool) Window() Window {
	return wp.win
}

func (wp *WindowPool) NumUnique() int {
	return len(wp.members)
}

// Members returns the reference haplotypes sharing unique sequence id. The
// returned slice is shared and must not be modified.
func (wp *WindowPool) Members(id int) []int {
	return wp.members[id]
}

// Seq returns the unique-sequence matrix, one row per unique id.
func (wp *WindowPool) Seq() *mat.Dense {
	return wp.seq
}

// UniqueAllele returns the allele of unique sequence id at marker offset m
// within the window.
func (wp *WindowPool) UniqueAllele(id, m int) uint8 {
	return uint8(wp.seq.At(id, m))
}

func buildWindowPool(p *panel.Panel, typedToRef []int, win Window) *WindowPool {
	width := win.Width()
	numHaps := p.NumHaps()

	key := make([]byte, width)
	ids := make(map[string]int)
	var members [][]int
	var seqs [][]byte

	for h := 0; h < numHaps; h++ {
		for m := 0; m < width; m++ {
			key[m] = p.At(h, typedToRef[win.Start+m])
		}
		id, ok := ids[string(key)]
		if !ok {
			id = len(members)
			ids[string(key)] = id
			members = append(members, nil)
			seqs = append(seqs, append([]byte(nil), key...))
		}
		members[id] = append(members[id], h)
	}

	seq := mat.NewDense(len(members), width, nil)
	for id := range seqs {
		for m := 0; m < width; m++ {
			seq.Set(id, m, float64(seqs[id][m]))
		}
	}

	return &WindowPool{win: win, seq: seq, members: members}
}

// BuildWindowPools compresses the panel for every window, in parallel
// across windows.
func BuildWindowPools(p *panel.Panel, typedToRef []int, wins []Window, numThreads int) ([]*WindowPool, error) {
	if p.NumHaps() < 2 {
		return nil, &PanelError{Window: 0, Msg: "fewer than 2 reference haplotypes"}
	}
	for w, win := range wins {
		if win.Width() <= 0 {
			return nil, &PanelError{Window: w, Msg: "window has zero markers"}
		}
	}

	pools := make([]*WindowPool, len(wins))
	parallel.Range(0, len(wins), numThreads, func(low, high int) {
		for w := low; w < high; w++ {
			pools[w] = buildWindowPool(p, typedToRef, wins[w])
		}
	})
	return pools, nil
}

// UniqueCounts reports the unique-sequence count of each window pool.
func UniqueCounts(pools []*WindowPool) []int {
	counts := make([]int, len(pools))
	for i, wp := range pools {
		counts[i] = wp.NumUnique()
	}
	return counts
}
