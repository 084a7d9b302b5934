package phase

import (
	"math"

	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/mat"

	"github.com/hhcho/winphase/panel"
)

// PairSet is the outcome of pair selection for one sample in one window:
// the minimal squared error and every unordered unique-id pair achieving
// it. The objective is integer-valued, so ties are exact.
type PairSet struct {
	Err   int
	Pairs [][2]int // i <= j; i == j is a homozygous self-pair
}

// windowWork carries the shared per-window quantities of the selector:
// the unique-sequence Gram matrix G = U*U^T, computed once, and the cross
// products S = U*X^T batched over all samples in a single product. Samples
// with missing entries in the window fall back to a masked Gram.
type windowWork struct {
	pool *WindowPool
	gram *mat.Dense // numUnique x numUnique
	S    *mat.Dense // numUnique x numSamples
	xx   []int      // per sample, sum of squared observed entries
	miss [][]bool   // per sample, nil when the window is fully observed
	vac  []bool     // per sample, true when every entry is missing
}

func prepareWindow(pool *WindowPool, t *panel.Target) *windowWork {
	u := pool.NumUnique()
	width := pool.win.Width()
	n := t.NumSamples()

	gram := mat.NewDense(u, u, nil)
	gram.Mul(pool.seq, pool.seq.T())

	// Missing entries enter X as zeros, which keeps S exact over the
	// observed markers; only the Gram term needs per-sample masking.
	X := mat.NewDense(n, width, nil)
	xx := make([]int, n)
	miss := make([][]bool, n)
	vac := make([]bool, n)
	for i := 0; i < n; i++ {
		row := t.Row(i)[pool.win.Start:pool.win.End]
		observed := 0
		for m, g := range row {
			if g == panel.Missing {
				if miss[i] == nil {
					miss[i] = make([]bool, width)
				}
				miss[i][m] = true
				continue
			}
			observed++
			X.Set(i, m, float64(g))
			xx[i] += int(g) * int(g)
		}
		vac[i] = observed == 0
	}

	S := mat.NewDense(u, n, nil)
	S.Mul(pool.seq, X.T())

	return &windowWork{pool: pool, gram: gram, S: S, xx: xx, miss: miss, vac: vac}
}

// prepareWindows runs the shared selector preprocessing for every window,
// in parallel across windows.
func prepareWindows(pools []*WindowPool, t *panel.Target, numThreads int) []*windowWork {
	work := make([]*windowWork, len(pools))
	parallel.Range(0, len(pools), numThreads, func(low, high int) {
		for w := low; w < high; w++ {
			work[w] = prepareWindow(pools[w], t)
		}
	})
	return work
}

// maskedGram recomputes the Gram matrix over the observed markers only.
func (ww *windowWork) maskedGram(missing []bool) *mat.Dense {
	u := ww.pool.NumUnique()
	width := ww.pool.win.Width()
	Um := mat.DenseCopyOf(ww.pool.seq)
	for m := 0; m < width; m++ {
		if missing[m] {
			for i := 0; i < u; i++ {
				Um.Set(i, m, 0)
			}
		}
	}
	g := mat.NewDense(u, u, nil)
	g.Mul(Um, Um.T())
	return g
}

// selectPairs finds the minimal-error unordered pair set for one sample.
// The second return is true when the window is degenerate for the sample
// (every entry missing); the caller carries the previous candidate sets
// forward in that case.
func (ww *windowWork) selectPairs(sample int) (PairSet, bool) {
	if ww.vac[sample] {
		return PairSet{}, true
	}

	gram := ww.gram
	if ww.miss[sample] != nil {
		gram = ww.maskedGram(ww.miss[sample])
	}

	u := ww.pool.NumUnique()
	xx := float64(ww.xx[sample])
	minErr := math.MaxInt
	var pairs [][2]int
	for i := 0; i < u; i++ {
		si := ww.S.At(i, sample)
		gii := gram.At(i, i)
		for j := i; j < u; j++ {
			e := xx - 2*(si+ww.S.At(j, sample)) + gii + 2*gram.At(i, j) + gram.At(j, j)
			ei := int(math.Round(e))
			if ei < minErr {
				minErr = ei
				pairs = pairs[:0]
				pairs = append(pairs, [2]int{i, j})
			} else if ei == minErr {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return PairSet{Err: minErr, Pairs: pairs}, false
}
