package phase

// Window is a contiguous half-open range [Start, End) of typed-marker
// indices. Windows partition the typed markers in position order.
type Window struct {
	Start int
	End   int
}

func (w Window) Width() int {
	return w.End - w.Start
}

// PartitionWindows splits numTyped ordered typed markers into numWindows
// near-equal contiguous ranges; the last window absorbs the remainder.
func PartitionWindows(numTyped, numWindows int) ([]Window, error) {
	if numWindows <= 0 {
		return nil, &ConfigError{Msg: "window count must be positive"}
	}
	if numTyped < numWindows {
		return nil, &ConfigError{Msg: "more windows than typed markers"}
	}

	width := numTyped / numWindows
	wins := make([]Window, numWindows)
	for w := 0; w < numWindows; w++ {
		wins[w] = Window{Start: w * width, End: (w + 1) * width}
	}
	wins[numWindows-1].End = numTyped
	return wins, nil
}

// WindowWidths reports the marker count of each window.
func WindowWidths(wins []Window) []int {
	widths := make([]int, len(wins))
	for i, w := range wins {
		widths[i] = w.Width()
	}
	return widths
}
