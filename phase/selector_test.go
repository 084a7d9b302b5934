package phase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhcho/winphase/panel"
)

func newTestTarget(rows [][]int8, typedToRef []int) *panel.Target {
	tgt := panel.NewTarget(len(rows), len(rows[0]), typedToRef)
	for i, row := range rows {
		copy(tgt.Row(i), row)
	}
	return tgt
}

// h1..h4 from the exact-recovery scenario: the genotype 111111 is the sum
// of (h1,h2) and of (h3,h4).
func recoveryPanel() *panel.Panel {
	return panel.NewPanelFromRows([][]uint8{
		{0, 1, 0, 1, 0, 1},
		{1, 0, 1, 0, 1, 0},
		{0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1},
	})
}

func selectorWork(t *testing.T, p *panel.Panel, tgt *panel.Target, numWindows int) []*windowWork {
	t.Helper()
	wins, err := PartitionWindows(tgt.NumTyped(), numWindows)
	require.NoError(t, err)
	pools, err := BuildWindowPools(p, tgt.TypedToRef(), wins, 1)
	require.NoError(t, err)
	return prepareWindows(pools, tgt, 1)
}

func TestSelectPairsExactPairHasZeroError(t *testing.T) {
	p := recoveryPanel()
	tgt := newTestTarget([][]int8{{1, 1, 1, 1, 1, 1}}, identityMap(6))
	work := selectorWork(t, p, tgt, 1)

	ps, degenerate := work[0].selectPairs(0)
	require.False(t, degenerate)
	assert.Equal(t, 0, ps.Err)
	assert.Contains(t, ps.Pairs, [2]int{0, 1})
	assert.Contains(t, ps.Pairs, [2]int{2, 3})
	assert.Len(t, ps.Pairs, 2, "all tied minimizers and nothing else")
}

func TestSelectPairsSelfPair(t *testing.T) {
	p := recoveryPanel()
	tgt := newTestTarget([][]int8{{2, 2, 2, 2, 2, 2}}, identityMap(6))
	work := selectorWork(t, p, tgt, 1)

	ps, degenerate := work[0].selectPairs(0)
	require.False(t, degenerate)
	assert.Equal(t, 0, ps.Err)
	assert.Equal(t, [][2]int{{3, 3}}, ps.Pairs)
}

func TestSelectPairsMissingDataNeutrality(t *testing.T) {
	p, tgt, _ := panel.Simulate(panel.SimParams{
		NumHaps:    20,
		NumMarkers: 24,
		NumSamples: 6,
		NumTyped:   24,
		MAF:        0.3,
		Seed:       11,
	})
	workFull := selectorWork(t, p, tgt, 3)

	// Mask one observed entry per sample with its true value removed
	masked := panel.NewTarget(tgt.NumSamples(), tgt.NumTyped(), tgt.TypedToRef())
	for i := 0; i < tgt.NumSamples(); i++ {
		copy(masked.Row(i), tgt.Row(i))
		masked.Set(i, 5, panel.Missing)
	}
	workMasked := selectorWork(t, p, masked, 3)

	// Window 0 holds typed markers [0,8); marker 5 is masked there. The
	// simulated target is an exact sum of panel haplotypes, so the
	// unmasked minimum is zero and masking must preserve every minimizer.
	for i := 0; i < tgt.NumSamples(); i++ {
		full, _ := workFull[0].selectPairs(i)
		m, _ := workMasked[0].selectPairs(i)
		require.Equal(t, 0, full.Err, "sample %d", i)
		assert.Equal(t, 0, m.Err, "sample %d", i)
		assert.Subset(t, m.Pairs, full.Pairs,
			"sample %d: true-value minimizers must survive masking", i)
	}
}

func TestSelectPairsDegenerateWindow(t *testing.T) {
	p := recoveryPanel()
	row := []int8{
		panel.Missing, panel.Missing, panel.Missing,
		panel.Missing, panel.Missing, panel.Missing,
	}
	tgt := newTestTarget([][]int8{row}, identityMap(6))
	work := selectorWork(t, p, tgt, 2)

	for w := range work {
		_, degenerate := work[w].selectPairs(0)
		assert.True(t, degenerate)
	}
}
