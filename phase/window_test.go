package phase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionWindowsCoversAllMarkers(t *testing.T) {
	cases := [][2]int{{10, 3}, {100, 7}, {6, 6}, {17, 1}, {23, 5}}
	for _, c := range cases {
		numTyped, numWindows := c[0], c[1]
		wins, err := PartitionWindows(numTyped, numWindows)
		require.NoError(t, err)
		require.Len(t, wins, numWindows)

		assert.Equal(t, 0, wins[0].Start)
		assert.Equal(t, numTyped, wins[numWindows-1].End)
		for w := 1; w < numWindows; w++ {
			assert.Equal(t, wins[w-1].End, wins[w].Start, "windows must be contiguous")
		}
		for _, win := range wins {
			assert.Greater(t, win.Width(), 0)
		}
	}
}

func TestPartitionWindowsRemainder(t *testing.T) {
	wins, err := PartitionWindows(11, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 5}, WindowWidths(wins))
}

func TestPartitionWindowsConfigErrors(t *testing.T) {
	var cfgErr *ConfigError

	_, err := PartitionWindows(5, 6)
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfgErr))

	_, err = PartitionWindows(5, 0)
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfgErr))

	_, err = PartitionWindows(5, -1)
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfgErr))
}

func TestInitPhaseParamsWindowWidth(t *testing.T) {
	config := &Config{WindowWidth: 4, NumThreads: 2}
	pp, err := InitPhaseParams(config, 10, 100, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, pp.NumWindows())

	var cfgErr *ConfigError
	_, err = InitPhaseParams(&Config{WindowWidth: -1}, 10, 100, 5, 10)
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfgErr))

	_, err = InitPhaseParams(&Config{NumWindows: 11}, 10, 100, 5, 10)
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfgErr))
}
